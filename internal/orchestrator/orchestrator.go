// Package orchestrator coordinates the command flows across package
// providers: fan-out search with caching, guided install and remove,
// parallel upgrade and clean, sequential listing. All provider work
// runs under a shared console lock so parallel workers can escalate to
// exclusive terminal access for interactive prompts.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gobwas/glob"

	"github.com/medley-sh/medley/internal/cache"
	"github.com/medley-sh/medley/internal/dispatch"
	"github.com/medley-sh/medley/internal/errors"
	"github.com/medley-sh/medley/internal/logging"
	"github.com/medley-sh/medley/internal/provider"
	"github.com/medley-sh/medley/internal/provlock"
	"github.com/medley-sh/medley/internal/ui"
)

// Options configures an Orchestrator.
type Options struct {
	// CacheDir is the directory for per-provider search caches.
	CacheDir string
	// CacheEnabled turns search result caching on.
	CacheEnabled bool
	// AutoConfirm selects sole matches without prompting. Forced on
	// when the terminal is not interactive.
	AutoConfirm bool
}

// Orchestrator runs the user-facing command flows.
type Orchestrator struct {
	registry *provider.Registry
	lock     *provlock.Lock
	log      *logging.Logger
	console  *ui.Console
	opts     Options
	// interactive is swappable in tests
	interactive func() bool
	// pick is swappable in tests; defaults to the console picker
	pick func(pkgs []provider.Package) ([]provider.Package, error)
}

// New creates an Orchestrator over the given registry.
func New(reg *provider.Registry, lock *provlock.Lock, log *logging.Logger, console *ui.Console, opts Options) *Orchestrator {
	return &Orchestrator{
		registry:    reg,
		lock:        lock,
		log:         log,
		console:     console,
		opts:        opts,
		interactive: ui.Interactive,
		pick:        console.PickPackages,
	}
}

// withShared runs fn while holding a shared console lock, with the
// hold attached to the context so providers can escalate.
func (o *Orchestrator) withShared(ctx context.Context, fn func(ctx context.Context) error) error {
	tok := provlock.NewToken()
	o.lock.AcquireShared(tok)
	defer o.lock.ReleaseShared(tok)
	return fn(provlock.NewContext(ctx, o.lock, tok))
}

// store returns the search cache for a provider, or nil when caching
// is off.
func (o *Orchestrator) store(providerName string) *cache.Store {
	if !o.opts.CacheEnabled {
		return nil
	}
	return cache.NewStore(o.opts.CacheDir, providerName)
}

// searchProvider searches one backend, consulting and populating its
// result cache around the actual command.
func (o *Orchestrator) searchProvider(ctx context.Context, p provider.Provider, query string) ([]provider.Package, error) {
	store := o.store(p.Name())
	if store != nil {
		if pkgs, ok := store.Get(query); ok {
			o.log.Debug("search cache hit", "provider", p.Name(), "query", query)
			return pkgs, nil
		}
	}

	var pkgs []provider.Package
	err := o.withShared(ctx, func(ctx context.Context) error {
		var err error
		pkgs, err = p.Search(ctx, query)
		return err
	})
	if err != nil {
		return nil, err
	}

	if store != nil {
		store.Set(query, pkgs)
	}
	return pkgs, nil
}

// searchAll fans a query out over every available backend and merges
// the results. A failing backend contributes nothing; the others are
// unaffected.
func (o *Orchestrator) searchAll(ctx context.Context, query string) []provider.Package {
	available := o.registry.Available()

	var mu sync.Mutex
	var all []provider.Package

	tasks := make([]dispatch.Task, 0, len(available))
	for _, p := range available {
		p := p
		tasks = append(tasks, dispatch.Task{
			Name: p.Name(),
			Run: func() (string, error) {
				pkgs, err := o.searchProvider(ctx, p, query)
				if err != nil {
					return "", err
				}
				mu.Lock()
				all = append(all, pkgs...)
				mu.Unlock()
				return fmt.Sprintf("%d result(s)", len(pkgs)), nil
			},
		})
	}

	for _, r := range dispatch.RunAll(tasks) {
		if !r.OK {
			o.log.Warn("search failed", "provider", r.Name, "error", r.Message)
		}
	}
	return all
}

// filterSmart narrows search results against the query pattern.
// Wildcard patterns filter by glob match; plain patterns prefer exact
// name matches. Either way an empty filter result falls back to the
// full list rather than hiding everything.
func filterSmart(results []provider.Package, pattern string, showAll bool) []provider.Package {
	if showAll || len(results) == 0 {
		return results
	}

	if strings.ContainsAny(pattern, "*?") {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return results
		}
		var filtered []provider.Package
		for _, r := range results {
			if g.Match(strings.ToLower(r.Name)) {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
		return results
	}

	var exact []provider.Package
	for _, r := range results {
		if strings.EqualFold(r.Name, pattern) {
			exact = append(exact, r)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return results
}

// selectPackages narrows results and asks the user which to act on.
// Returns nil (with no error) when the user skips or nothing matched.
func (o *Orchestrator) selectPackages(pkgs []provider.Package, pattern string, showAll, allowAll bool) ([]provider.Package, error) {
	if len(pkgs) == 0 {
		o.console.Warnf("no packages found for %q", pattern)
		return nil, nil
	}

	pkgs = filterSmart(pkgs, pattern, showAll)

	if o.opts.AutoConfirm || !o.interactive() {
		if len(pkgs) == 1 {
			o.console.Infof("auto-selecting the only match for %q", pattern)
		} else {
			o.console.Infof("auto-selecting %s (best match for %q)", pkgs[0].Name, pattern)
		}
		return pkgs[:1], nil
	}

	selected, err := o.pick(pkgs)
	if errors.Is(err, errors.ErrNoSelection) {
		o.console.Infof("skipping %q", pattern)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !allowAll && len(selected) > 1 {
		selected = selected[:1]
	}
	return selected, nil
}

// groupExplicit collects provider#pkg arguments into a per-provider
// map, leaving bare names to the caller.
func groupExplicit(args []string) map[string][]string {
	grouped := map[string][]string{}
	for _, arg := range args {
		spec := provider.ParseSpec(arg)
		if !spec.Explicit() {
			continue
		}
		grouped[spec.Provider] = append(grouped[spec.Provider], spec.Names...)
	}
	return grouped
}

// runGrouped fans one operation per provider out through the
// dispatcher and prints per-provider results plus a summary.
func (o *Orchestrator) runGrouped(ctx context.Context, grouped map[string][]string, verb string,
	op func(ctx context.Context, p provider.Provider, ids []string) error,
	successMsg, partialMsg string) {

	tasks := make([]dispatch.Task, 0, len(grouped))
	for name, ids := range grouped {
		ids := ids
		p, err := o.registry.Get(name)
		if err != nil {
			o.console.Warnf("unknown provider %q", name)
			continue
		}
		if !p.IsAvailable() {
			o.console.Warnf("provider %q is not available", name)
			continue
		}
		if len(ids) > 0 {
			o.console.Infof("%s: %s", name, strings.Join(ids, ", "))
		}

		msg := fmt.Sprintf("%s all packages", verb)
		if len(ids) > 0 {
			msg = fmt.Sprintf("%s %d package(s)", verb, len(ids))
		}
		tasks = append(tasks, dispatch.Task{
			Name: name,
			Run: func() (string, error) {
				err := o.withShared(ctx, func(ctx context.Context) error {
					return op(ctx, p, ids)
				})
				if err != nil {
					return "", err
				}
				return msg, nil
			},
		})
	}

	if len(tasks) == 0 {
		o.console.Warnf("nothing to do")
		return
	}

	o.console.Taskf("running %d task(s) in parallel", len(tasks))
	results := dispatch.RunAll(tasks)
	o.console.Results(results, dispatch.Summarize(results, successMsg, partialMsg))
}
