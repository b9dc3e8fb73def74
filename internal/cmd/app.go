package cmd

import (
	"fmt"

	"github.com/medley-sh/medley/internal/config"
	"github.com/medley-sh/medley/internal/logging"
	"github.com/medley-sh/medley/internal/orchestrator"
	"github.com/medley-sh/medley/internal/provider"
	"github.com/medley-sh/medley/internal/provider/flatpak"
	"github.com/medley-sh/medley/internal/provider/homebrew"
	"github.com/medley-sh/medley/internal/provider/nix"
	"github.com/medley-sh/medley/internal/provlock"
	"github.com/medley-sh/medley/internal/shell"
	"github.com/medley-sh/medley/internal/ui"
)

// app bundles everything a command needs, built once per invocation
// from the loaded configuration.
type app struct {
	cfg     *config.Config
	log     *logging.Logger
	console *ui.Console
	orch    *orchestrator.Orchestrator
}

// newApp loads config and wires the registry, lock, logger and
// orchestrator together.
func newApp(commandName string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.NewLogger(cfg.Logging.File, logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return nil, err
	}
	log = log.WithCommand(commandName)

	console := ui.NewConsole(cfg.UI.Color)
	runner := shell.New(console.Echo)

	reg := provider.NewRegistry()
	for _, p := range []provider.Provider{
		nix.New(runner, log, console.Confirm),
		flatpak.New(runner, log),
		homebrew.New(runner, log),
	} {
		if cfg.Providers.IsDisabled(p.Name()) {
			log.Debug("provider disabled by config", "provider", p.Name())
			continue
		}
		reg.Register(p)
	}
	if cfg.Providers.Default != "" {
		reg.SetDefault(cfg.Providers.Default)
	}

	orch := orchestrator.New(reg, provlock.New(), log, console, orchestrator.Options{
		CacheDir:     cfg.Cache.ResolveDir(),
		CacheEnabled: cfg.Cache.Enabled && !flagNoCache,
		AutoConfirm:  cfg.UI.AutoConfirm || flagYes,
	})

	return &app{cfg: cfg, log: log, console: console, orch: orch}, nil
}

// close flushes the debug log.
func (a *app) close() {
	_ = a.log.Close()
}
