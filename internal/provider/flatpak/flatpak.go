// Package flatpak adapts the Flatpak package manager. Installs may
// prompt for remote selection, so they escalate to exclusive console
// access for their duration.
package flatpak

import (
	"context"
	"strings"

	"github.com/medley-sh/medley/internal/errors"
	"github.com/medley-sh/medley/internal/logging"
	"github.com/medley-sh/medley/internal/provider"
	"github.com/medley-sh/medley/internal/provlock"
	"github.com/medley-sh/medley/internal/shell"
)

const providerName = "flatpak"

// columns requested from flatpak search and flatpak list. Order
// matters: parsing is positional.
const columns = "--columns=name,application,description,version"

// Provider wraps the flatpak CLI.
type Provider struct {
	run *shell.Runner
	log *logging.Logger
}

// New creates the flatpak provider.
func New(run *shell.Runner, log *logging.Logger) *Provider {
	return &Provider{run: run, log: log.WithProvider(providerName)}
}

// Name returns "flatpak".
func (p *Provider) Name() string { return providerName }

// IsAvailable reports whether the flatpak binary is on PATH.
func (p *Provider) IsAvailable() bool { return shell.LookPath("flatpak") }

// Install installs the given application IDs. Flatpak may prompt the
// user to pick a remote, so the whole install runs with exclusive
// console access when the context carries a shared hold.
func (p *Provider) Install(ctx context.Context, ids []string) error {
	p.log.Debug("installing", "ids", strings.Join(ids, ","))
	return provlock.Exclusive(ctx, func() error {
		args := append([]string{"install", "-y"}, ids...)
		if err := p.run.Run(ctx, "flatpak", args...); err != nil {
			return errors.NewProviderError(providerName, "install", err)
		}
		return nil
	})
}

// Uninstall removes applications one at a time.
func (p *Provider) Uninstall(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := p.run.Run(ctx, "flatpak", "uninstall", "-y", id); err != nil {
			return errors.NewProviderError(providerName, "uninstall "+id, err)
		}
	}
	return nil
}

// Upgrade updates the named applications, or everything when ids is
// empty.
func (p *Provider) Upgrade(ctx context.Context, ids []string) error {
	args := append([]string{"update", "-y"}, ids...)
	if err := p.run.Run(ctx, "flatpak", args...); err != nil {
		return errors.NewProviderError(providerName, "update", err)
	}
	return nil
}

// Clean removes unused runtimes and extensions.
func (p *Provider) Clean(ctx context.Context) error {
	if err := p.run.Run(ctx, "flatpak", "uninstall", "--unused", "-y"); err != nil {
		return errors.NewProviderError(providerName, "remove unused", err)
	}
	return nil
}

// Search queries the configured remotes.
func (p *Provider) Search(ctx context.Context, query string) ([]provider.Package, error) {
	out, err := p.run.Capture(ctx, "flatpak", "search", query, columns)
	if err != nil {
		return nil, errors.NewProviderError(providerName, "search", err)
	}
	if !out.OK() {
		// flatpak search exits non-zero when nothing matches
		return []provider.Package{}, nil
	}
	return parseColumns(out.Stdout, false), nil
}

// ListInstalled returns the installed applications (not runtimes).
func (p *Provider) ListInstalled(ctx context.Context) ([]provider.Package, error) {
	out, err := p.run.Capture(ctx, "flatpak", "list", "--app", columns)
	if err != nil {
		return nil, errors.NewProviderError(providerName, "list", err)
	}
	if !out.OK() {
		return []provider.Package{}, nil
	}
	return parseColumns(out.Stdout, true), nil
}

// parseColumns reads flatpak's columnar output: one package per line,
// tab-separated name, application ID, description, version. Older
// flatpak versions pad with spaces instead, so fall back to a
// whitespace split when no tab is present.
func parseColumns(out string, installed bool) []provider.Package {
	pkgs := []provider.Package{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimRight(line, " \r")
		if line == "" {
			continue
		}
		// A header row sneaks in when stdout is a terminal.
		if strings.Contains(line, "Application ID") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			parts = splitFields(line, 4)
		}
		if len(parts) < 2 {
			continue
		}

		pkg := provider.Package{
			Name:      strings.TrimSpace(parts[0]),
			Provider:  providerName,
			ID:        strings.TrimSpace(parts[1]),
			Installed: installed,
		}
		if len(parts) > 2 {
			pkg.Description = strings.TrimSpace(parts[2])
		}
		if len(parts) > 3 {
			pkg.Version = strings.TrimSpace(parts[3])
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs
}

// splitFields splits on whitespace into at most n fields, keeping the
// remainder intact in the last one.
func splitFields(line string, n int) []string {
	var fields []string
	rest := strings.TrimSpace(line)
	for len(fields) < n-1 {
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			break
		}
		fields = append(fields, rest[:i])
		rest = strings.TrimLeft(rest[i:], " \t")
	}
	if rest != "" {
		fields = append(fields, rest)
	}
	return fields
}
