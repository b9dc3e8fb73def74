// Package homebrew adapts the Homebrew package manager on macOS and
// Linux.
package homebrew

import (
	"context"
	"strings"

	"github.com/medley-sh/medley/internal/errors"
	"github.com/medley-sh/medley/internal/logging"
	"github.com/medley-sh/medley/internal/provider"
	"github.com/medley-sh/medley/internal/shell"
)

const providerName = "homebrew"

// Provider wraps the brew CLI.
type Provider struct {
	run *shell.Runner
	log *logging.Logger
}

// New creates the homebrew provider.
func New(run *shell.Runner, log *logging.Logger) *Provider {
	return &Provider{run: run, log: log.WithProvider(providerName)}
}

// Name returns "homebrew".
func (p *Provider) Name() string { return providerName }

// IsAvailable reports whether the brew binary is on PATH.
func (p *Provider) IsAvailable() bool { return shell.LookPath("brew") }

// Install installs formulae or casks.
func (p *Provider) Install(ctx context.Context, ids []string) error {
	args := append([]string{"install"}, ids...)
	if err := p.run.Run(ctx, "brew", args...); err != nil {
		return errors.NewProviderError(providerName, "install", err)
	}
	return nil
}

// Uninstall removes the named packages.
func (p *Provider) Uninstall(ctx context.Context, ids []string) error {
	args := append([]string{"uninstall"}, ids...)
	if err := p.run.Run(ctx, "brew", args...); err != nil {
		return errors.NewProviderError(providerName, "uninstall", err)
	}
	return nil
}

// Upgrade upgrades the named packages, or everything when ids is
// empty.
func (p *Provider) Upgrade(ctx context.Context, ids []string) error {
	args := append([]string{"upgrade"}, ids...)
	if err := p.run.Run(ctx, "brew", args...); err != nil {
		return errors.NewProviderError(providerName, "upgrade", err)
	}
	return nil
}

// Clean removes outdated downloads and old versions.
func (p *Provider) Clean(ctx context.Context) error {
	if err := p.run.Run(ctx, "brew", "cleanup"); err != nil {
		return errors.NewProviderError(providerName, "cleanup", err)
	}
	return nil
}

// Search queries formulae and casks with descriptions.
func (p *Provider) Search(ctx context.Context, query string) ([]provider.Package, error) {
	out, err := p.run.Capture(ctx, "brew", "search", "--desc", query)
	if err != nil {
		return nil, errors.NewProviderError(providerName, "search", err)
	}
	// brew search exits non-zero when nothing matches but may still
	// print partial results.
	if !out.OK() && out.Stdout == "" {
		return []provider.Package{}, nil
	}
	return parseSearch(out.Stdout), nil
}

// ListInstalled returns packages the user asked for directly,
// excluding dependency-only installs.
func (p *Provider) ListInstalled(ctx context.Context) ([]provider.Package, error) {
	requested, err := p.run.Capture(ctx, "brew", "list", "--installed-on-request")
	if err != nil {
		return nil, errors.NewProviderError(providerName, "list", err)
	}
	if !requested.OK() {
		return []provider.Package{}, nil
	}

	versions, err := p.run.Capture(ctx, "brew", "list", "--versions")
	if err != nil {
		return nil, errors.NewProviderError(providerName, "list versions", err)
	}
	if !versions.OK() {
		return []provider.Package{}, nil
	}

	return parseInstalled(requested.Stdout, versions.Stdout), nil
}

// parseSearch reads brew search --desc output: "name: description"
// lines grouped under "==> Formulae" and "==> Casks" headers.
func parseSearch(out string) []provider.Package {
	pkgs := []provider.Package{}
	kind := "formula"
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "==> Formulae") {
			kind = "formula"
			continue
		}
		if strings.HasPrefix(line, "==> Casks") {
			kind = "cask"
			continue
		}

		name := line
		desc := ""
		if i := strings.Index(line, ": "); i >= 0 {
			name = line[:i]
			desc = line[i+2:]
		}
		pkgs = append(pkgs, provider.Package{
			Name:        name,
			Provider:    providerName,
			ID:          name,
			Description: desc,
			Origin:      kind,
		})
	}
	return pkgs
}

// parseInstalled joins brew list --installed-on-request (names only)
// with brew list --versions ("name version [version...]" lines),
// keeping only packages the user requested.
func parseInstalled(requestedOut, versionsOut string) []provider.Package {
	requested := map[string]bool{}
	for _, line := range strings.Split(requestedOut, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			requested[name] = true
		}
	}

	pkgs := []provider.Package{}
	for _, line := range strings.Split(strings.TrimSpace(versionsOut), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !requested[fields[0]] {
			continue
		}
		pkgs = append(pkgs, provider.Package{
			Name:      fields[0],
			Provider:  providerName,
			ID:        fields[0],
			Version:   fields[1],
			Installed: true,
		})
	}
	return pkgs
}
