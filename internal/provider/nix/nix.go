// Package nix adapts the Nix package manager. Packages live in the
// user's default profile; search goes against the nixpkgs flake.
package nix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/medley-sh/medley/internal/errors"
	"github.com/medley-sh/medley/internal/logging"
	"github.com/medley-sh/medley/internal/provider"
	"github.com/medley-sh/medley/internal/shell"
)

const providerName = "nixpkgs"

// Provider wraps the nix CLI.
type Provider struct {
	run *shell.Runner
	log *logging.Logger
	out io.Writer
	// confirm asks the user a yes/no question during the lock-file
	// retry on upgrade. nil means always yes.
	confirm func(question string) bool
}

// New creates the nixpkgs provider.
func New(run *shell.Runner, log *logging.Logger, confirm func(string) bool) *Provider {
	return &Provider{
		run:     run,
		log:     log.WithProvider(providerName),
		out:     os.Stdout,
		confirm: confirm,
	}
}

// Name returns "nixpkgs".
func (p *Provider) Name() string { return providerName }

// IsAvailable reports whether the nix binary is on PATH.
func (p *Provider) IsAvailable() bool { return shell.LookPath("nix") }

// Install adds packages to the default profile. Bare names are
// qualified against the nixpkgs flake.
func (p *Provider) Install(ctx context.Context, ids []string) error {
	for _, id := range ids {
		target := id
		if !strings.Contains(id, "#") {
			target = "nixpkgs#" + id
		}
		p.log.Debug("installing", "target", target)
		if err := p.run.Run(ctx, "nix", "profile", "add", "--impure", target); err != nil {
			return errors.NewProviderError(providerName, fmt.Sprintf("install %s", id), err)
		}
	}
	return nil
}

// Uninstall removes packages from the profile, one at a time.
func (p *Provider) Uninstall(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := p.run.Run(ctx, "nix", "profile", "remove", id); err != nil {
			return errors.NewProviderError(providerName, fmt.Sprintf("remove %s", id), err)
		}
	}
	return nil
}

// Upgrade upgrades the named packages, or everything when ids is
// empty. Remote flakes whose lock file cannot be written are retried
// with --no-write-lock-file after confirmation.
func (p *Provider) Upgrade(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return p.upgradeWithLockRetry(ctx, "--all")
	}
	for _, id := range ids {
		if err := p.upgradeWithLockRetry(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// upgradeWithLockRetry runs one profile upgrade. Nix refuses to
// upgrade flakes it cannot write a lock file for; when that is the
// only failure, offer a retry that skips the lock file write.
func (p *Provider) upgradeWithLockRetry(ctx context.Context, target string) error {
	out, err := p.run.Capture(ctx, "nix", "profile", "upgrade", "--impure", target)
	if err != nil {
		return errors.NewProviderError(providerName, fmt.Sprintf("upgrade %s", target), err)
	}
	if out.OK() {
		io.WriteString(p.out, out.Stdout)
		return nil
	}

	if !strings.Contains(out.Stderr, "cannot write modified lock file") {
		io.WriteString(p.out, out.Stdout)
		io.WriteString(p.out, out.Stderr)
		return errors.NewProviderError(providerName,
			fmt.Sprintf("upgrade %s exited %d", target, out.Code), nil)
	}

	p.log.Warn("lock file not writable, offering retry", "target", target)
	if p.confirm != nil && !p.confirm("Nix could not write the lock file for a remote flake. Retry ignoring it?") {
		return errors.NewProviderError(providerName, "upgrade cancelled", nil)
	}

	if err := p.run.Run(ctx, "nix", "profile", "upgrade", "--no-write-lock-file", "--impure", target); err != nil {
		return errors.NewProviderError(providerName, fmt.Sprintf("upgrade %s", target), err)
	}
	return nil
}

// Clean runs nix garbage collection, deleting old profile generations.
func (p *Provider) Clean(ctx context.Context) error {
	if err := p.run.Run(ctx, "nix-collect-garbage", "-d"); err != nil {
		return errors.NewProviderError(providerName, "garbage collection", err)
	}
	return nil
}

// Search queries the nixpkgs flake. Results carry the full attribute
// path as ID so installs can use it directly.
func (p *Provider) Search(ctx context.Context, query string) ([]provider.Package, error) {
	out, err := p.run.Capture(ctx, "nix", "search", "nixpkgs", query, "--json")
	if err != nil {
		return nil, errors.NewProviderError(providerName, "search", err)
	}
	if !out.OK() {
		// nix search exits non-zero when nothing matches
		return []provider.Package{}, nil
	}
	return parseSearch([]byte(out.Stdout))
}

// ListInstalled returns the profile contents.
func (p *Provider) ListInstalled(ctx context.Context) ([]provider.Package, error) {
	out, err := p.run.Capture(ctx, "nix", "profile", "list", "--json")
	if err != nil {
		return nil, errors.NewProviderError(providerName, "list", err)
	}
	if !out.OK() {
		return []provider.Package{}, nil
	}
	return parseProfileList([]byte(out.Stdout))
}

// searchEntry is one value in nix search --json output, keyed by
// attribute path.
type searchEntry struct {
	Version     string `json:"version"`
	Description string `json:"description"`
}

func parseSearch(data []byte) ([]provider.Package, error) {
	var entries map[string]searchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewProviderError(providerName, "unexpected search output", err)
	}

	pkgs := make([]provider.Package, 0, len(entries))
	for attrPath, e := range entries {
		pkgs = append(pkgs, provider.Package{
			Name:        lastSegment(attrPath),
			Provider:    providerName,
			ID:          attrPath,
			Version:     e.Version,
			Description: e.Description,
		})
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].ID < pkgs[j].ID })
	return pkgs, nil
}

// profileElement is one entry in nix profile list --json. Newer nix
// keys elements by name; older versions use a list.
type profileElement struct {
	AttrPath    string   `json:"attrPath"`
	OriginalURL string   `json:"originalUrl"`
	URL         string   `json:"url"`
	StorePaths  []string `json:"storePaths"`
}

func parseProfileList(data []byte) ([]provider.Package, error) {
	var byName struct {
		Elements map[string]profileElement `json:"elements"`
	}
	if err := json.Unmarshal(data, &byName); err == nil && byName.Elements != nil {
		pkgs := make([]provider.Package, 0, len(byName.Elements))
		for name, e := range byName.Elements {
			origin := e.OriginalURL
			if origin == "" {
				origin = e.AttrPath
			}
			pkgs = append(pkgs, provider.Package{
				Name:      name,
				Provider:  providerName,
				ID:        name,
				Version:   versionFromStorePaths(e.StorePaths),
				Origin:    origin,
				Installed: true,
			})
		}
		sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
		return pkgs, nil
	}

	var asList struct {
		Elements []profileElement `json:"elements"`
	}
	if err := json.Unmarshal(data, &asList); err != nil {
		return nil, errors.NewProviderError(providerName, "unexpected profile list output", err)
	}
	pkgs := make([]provider.Package, 0, len(asList.Elements))
	for _, e := range asList.Elements {
		attrPath := e.AttrPath
		if attrPath == "" {
			attrPath = e.URL
		}
		name := lastSegment(attrPath)
		pkgs = append(pkgs, provider.Package{
			Name:      name,
			Provider:  providerName,
			ID:        name,
			Version:   versionFromStorePaths(e.StorePaths),
			Origin:    attrPath,
			Installed: true,
		})
	}
	return pkgs, nil
}

// versionFromStorePaths digs the version out of a store path like
// /nix/store/<32-char hash>-ripgrep-14.1.0: skip the hash, then take
// everything after the first dash followed by a digit.
func versionFromStorePaths(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	base := path.Base(paths[0])
	if len(base) <= 33 {
		return ""
	}
	nameVer := base[33:]
	for i := 0; i+1 < len(nameVer); i++ {
		if nameVer[i] == '-' && nameVer[i+1] >= '0' && nameVer[i+1] <= '9' {
			return nameVer[i+1:]
		}
	}
	return ""
}

func lastSegment(attrPath string) string {
	if i := strings.LastIndex(attrPath, "."); i >= 0 {
		return attrPath[i+1:]
	}
	return attrPath
}
