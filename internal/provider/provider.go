package provider

import "context"

// Package represents a package from any provider. It is the single
// typed record used at every boundary: search results, installed
// listings, cache storage, and UI rendering.
type Package struct {
	// Name is the human-facing package name.
	Name string `json:"name"`
	// Provider is the name of the backend the package came from.
	Provider string `json:"provider"`
	// ID is the identifier used for install/uninstall operations. It may
	// differ from Name (e.g. a Flatpak application ID).
	ID string `json:"id"`
	// Version is the package version, empty when the provider could not
	// determine one.
	Version string `json:"version"`
	// Description is a short summary, possibly empty.
	Description string `json:"description"`
	// Installed reports whether the package is installed locally.
	Installed bool `json:"installed"`
	// Origin carries provider-specific provenance, e.g. a Nix attribute
	// path. Empty when not applicable.
	Origin string `json:"origin,omitempty"`
}

// InstallID returns the identifier to pass to install/uninstall
// commands, falling back to the name when the provider reported no
// separate ID.
func (p Package) InstallID() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

// Provider is one independently-invocable package manager wrapped by
// medley. Implementations must be safe for concurrent use: the
// dispatcher runs one operation per provider in parallel.
//
// Operations that execute interactive commands should take exclusive
// console access via provlock.Exclusive with the passed context.
type Provider interface {
	// Name returns the stable provider identifier, e.g. "nixpkgs".
	Name() string

	// IsAvailable reports whether the underlying package manager is
	// installed and usable on this system.
	IsAvailable() bool

	// Search returns packages matching the query. May be slow or
	// network-bound; callers memoize results in the search cache.
	Search(ctx context.Context, query string) ([]Package, error)

	// Install installs the packages identified by ids.
	Install(ctx context.Context, ids []string) error

	// Uninstall removes the packages identified by ids.
	Uninstall(ctx context.Context, ids []string) error

	// Upgrade upgrades the packages identified by ids, or everything
	// the provider manages when ids is empty.
	Upgrade(ctx context.Context, ids []string) error

	// Clean performs provider-specific garbage collection.
	Clean(ctx context.Context) error

	// ListInstalled returns the packages currently installed via this
	// provider.
	ListInstalled(ctx context.Context) ([]Package, error)
}
