package orchestrator

import (
	"context"
	"strings"

	"github.com/medley-sh/medley/internal/errors"
	"github.com/medley-sh/medley/internal/provider"
)

// Search runs each query against one backend (provider#term) or all
// available backends, filters the merged results, and prints them.
func (o *Orchestrator) Search(ctx context.Context, queries []string, showAll bool) error {
	for _, q := range queries {
		spec := provider.ParseSpec(q)
		if spec.Explicit() {
			term := strings.Join(spec.Names, ",")
			p, err := o.registry.Get(spec.Provider)
			if err != nil || !p.IsAvailable() {
				o.console.Warnf("provider %q is not available", spec.Provider)
				continue
			}

			results, err := o.searchProvider(ctx, p, term)
			if err != nil {
				o.console.Errorf("%s: %v", spec.Provider, err)
				continue
			}
			results = filterSmart(results, term, showAll)
			if len(results) == 0 {
				o.console.Warnf("no results for %q in %s", term, spec.Provider)
				continue
			}
			o.console.Taskf("found %d match(es) for %q in %s", len(results), term, spec.Provider)
			o.console.PackageList(results)
			continue
		}

		o.console.Taskf("searching for %q", q)
		results := filterSmart(o.searchAll(ctx, q), q, showAll)
		if len(results) == 0 {
			o.console.Warnf("no results for %q", q)
			continue
		}
		o.console.Taskf("found %d match(es) for %q", len(results), q)
		o.console.PackageList(results)
	}
	return nil
}

// Install resolves the arguments to concrete packages and installs
// them, one parallel task per provider. provider#pkg arguments go
// straight to that provider; bare names are searched across all
// backends and offered for selection.
func (o *Orchestrator) Install(ctx context.Context, args []string, showAll bool) error {
	toInstall := groupExplicit(args)

	for _, arg := range args {
		if provider.ParseSpec(arg).Explicit() {
			continue
		}
		for _, item := range provider.ParseSpec(arg).Names {
			o.console.Taskf("searching for %q across all providers", item)

			selected, err := o.selectPackages(o.searchAll(ctx, item), item, showAll, false)
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				continue
			}

			pkg := selected[0]
			toInstall[pkg.Provider] = append(toInstall[pkg.Provider], pkg.InstallID())
			o.console.Infof("selected %s from %s", pkg.Name, pkg.Provider)
		}
	}

	if len(toInstall) == 0 {
		o.console.Warnf("no packages selected for installation")
		return nil
	}

	o.runGrouped(ctx, toInstall, "installed",
		func(ctx context.Context, p provider.Provider, ids []string) error {
			return p.Install(ctx, ids)
		},
		"installation finished", "installation completed with errors")
	return nil
}

// Remove resolves the arguments against installed packages and
// uninstalls them. Unlike Install this runs sequentially per provider:
// uninstalls are fast and interleaving their output is not worth it.
func (o *Orchestrator) Remove(ctx context.Context, args []string, showAll bool) error {
	toRemove := groupExplicit(args)

	for _, arg := range args {
		if provider.ParseSpec(arg).Explicit() {
			continue
		}
		for _, item := range provider.ParseSpec(arg).Names {
			o.console.Taskf("searching installed packages for %q", item)

			matches := o.searchInstalled(ctx, item)
			matches = excludeSelected(matches, toRemove)
			if len(matches) == 0 {
				o.console.Warnf("no installed packages match %q", item)
				continue
			}

			selected, err := o.selectPackages(matches, item, showAll, true)
			if err != nil {
				return err
			}
			for _, pkg := range selected {
				toRemove[pkg.Provider] = append(toRemove[pkg.Provider], pkg.InstallID())
				o.console.Infof("selected %s from %s for removal", pkg.Name, pkg.Provider)
			}
		}
	}

	if len(toRemove) == 0 {
		o.console.Warnf("no packages selected for removal")
		return nil
	}

	var failures []string
	for name, ids := range toRemove {
		p, err := o.registry.Get(name)
		if err != nil {
			o.console.Warnf("unknown provider %q", name)
			continue
		}
		if !p.IsAvailable() {
			o.console.Warnf("provider %q is not available", name)
			continue
		}

		o.console.Taskf("removing %d package(s) via %s", len(ids), name)
		err = o.withShared(ctx, func(ctx context.Context) error {
			return p.Uninstall(ctx, ids)
		})
		if err != nil {
			o.console.Errorf("%s: %v", name, err)
			failures = append(failures, name)
		}
	}

	if len(failures) > 0 {
		o.console.Warnf("removal completed with %d error(s)", len(failures))
	} else {
		o.console.Successf("removal finished")
	}
	return nil
}

// Upgrade updates packages. No arguments upgrades every available
// backend in full; arguments may be provider names (whole backend) or
// provider#pkg specs.
func (o *Orchestrator) Upgrade(ctx context.Context, args []string) error {
	grouped := map[string][]string{}

	if len(args) == 0 {
		available := o.registry.Available()
		if len(available) == 0 {
			return errors.ErrNoProviders
		}
		for _, p := range available {
			o.console.Infof("will upgrade: %s", p.Name())
			grouped[p.Name()] = nil
		}
	} else {
		for _, arg := range args {
			// A bare provider name upgrades that whole backend.
			if _, err := o.registry.Get(arg); err == nil {
				o.console.Infof("will upgrade all in: %s", arg)
				if _, ok := grouped[arg]; !ok {
					grouped[arg] = nil
				}
				continue
			}
			spec := provider.ParseSpec(arg)
			name := spec.Provider
			if name == "" {
				var err error
				name, err = o.registry.DefaultName()
				if err != nil {
					return err
				}
			}
			grouped[name] = append(grouped[name], spec.Names...)
		}
	}

	o.runUpgrade(ctx, grouped)
	return nil
}

// runUpgrade is runGrouped with upgrade-specific messages, needed
// because an empty id list means "everything" rather than "nothing".
func (o *Orchestrator) runUpgrade(ctx context.Context, grouped map[string][]string) {
	o.runGrouped(ctx, grouped, "upgraded",
		func(ctx context.Context, p provider.Provider, ids []string) error {
			return p.Upgrade(ctx, ids)
		},
		"upgrade complete", "upgrade completed with errors")
}

// Clean runs cleanup on every available backend, or the named subset,
// in parallel.
func (o *Orchestrator) Clean(ctx context.Context, names []string) error {
	grouped := map[string][]string{}
	if len(names) == 0 {
		available := o.registry.Available()
		if len(available) == 0 {
			return errors.ErrNoProviders
		}
		for _, p := range available {
			o.console.Infof("will clean: %s", p.Name())
			grouped[p.Name()] = nil
		}
	} else {
		for _, name := range names {
			grouped[name] = nil
		}
	}

	o.runGrouped(ctx, grouped, "cleaned",
		func(ctx context.Context, p provider.Provider, _ []string) error {
			return p.Clean(ctx)
		},
		"clean complete", "clean completed with errors")
	return nil
}

// List prints installed packages, for one provider or all of them,
// sequentially.
func (o *Orchestrator) List(ctx context.Context, providerName string) error {
	var targets []provider.Provider
	if providerName != "" {
		p, err := o.registry.Get(providerName)
		if err != nil {
			return err
		}
		targets = []provider.Provider{p}
	} else {
		targets = o.registry.All()
	}

	listed := 0
	for _, p := range targets {
		if !p.IsAvailable() {
			continue
		}
		listed++

		o.console.Taskf("fetching packages from %s", p.Name())
		var pkgs []provider.Package
		err := o.withShared(ctx, func(ctx context.Context) error {
			var err error
			pkgs, err = p.ListInstalled(ctx)
			return err
		})
		if err != nil {
			o.console.Errorf("%s: %v", p.Name(), err)
			continue
		}
		o.console.InstalledTable(pkgs)
	}

	if listed == 0 {
		return errors.ErrNoProviders
	}
	return nil
}

// ClearCaches wipes the search caches of the given providers, or all
// registered providers when names is empty. expiredOnly keeps fresh
// entries.
func (o *Orchestrator) ClearCaches(names []string, expiredOnly bool) {
	if len(names) == 0 {
		for _, p := range o.registry.All() {
			names = append(names, p.Name())
		}
	}
	for _, name := range names {
		store := o.store(name)
		if store == nil {
			continue
		}
		if expiredOnly {
			store.ClearExpired()
		} else {
			store.Clear()
		}
		o.console.Infof("cleared %s search cache", name)
	}
}

// searchInstalled collects installed packages whose name contains the
// pattern, case-insensitively, across all available backends.
func (o *Orchestrator) searchInstalled(ctx context.Context, pattern string) []provider.Package {
	var matches []provider.Package
	for _, p := range o.registry.Available() {
		var pkgs []provider.Package
		err := o.withShared(ctx, func(ctx context.Context) error {
			var err error
			pkgs, err = p.ListInstalled(ctx)
			return err
		})
		if err != nil {
			o.console.Warnf("failed to list packages from %s: %v", p.Name(), err)
			continue
		}
		for _, pkg := range pkgs {
			if strings.Contains(strings.ToLower(pkg.Name), strings.ToLower(pattern)) {
				matches = append(matches, pkg)
			}
		}
	}
	return matches
}

// excludeSelected drops packages already queued for removal.
func excludeSelected(pkgs []provider.Package, selected map[string][]string) []provider.Package {
	var out []provider.Package
	for _, pkg := range pkgs {
		queued := false
		for _, id := range selected[pkg.Provider] {
			if id == pkg.InstallID() {
				queued = true
				break
			}
		}
		if !queued {
			out = append(out, pkg)
		}
	}
	return out
}
