package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Providers.Default != "" {
		t.Errorf("Providers.Default = %q, want empty", cfg.Providers.Default)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should default to true")
	}
	if cfg.UI.AutoConfirm {
		t.Error("UI.AutoConfirm should default to false")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadOverrides(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("providers.default", "homebrew")
	viper.Set("providers.disabled", []string{"flatpak"})
	viper.Set("ui.auto_confirm", true)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Providers.Default != "homebrew" {
		t.Errorf("Providers.Default = %q, want %q", cfg.Providers.Default, "homebrew")
	}
	if !cfg.Providers.IsDisabled("flatpak") {
		t.Error("flatpak should be disabled")
	}
	if cfg.Providers.IsDisabled("nixpkgs") {
		t.Error("nixpkgs should not be disabled")
	}
	if !cfg.UI.AutoConfirm {
		t.Error("UI.AutoConfirm should be true")
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("logging.level", "verbose")

	_, err := Load()
	if err == nil {
		t.Fatal("Load should reject an unknown log level")
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("error %q should name the offending field", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.UI.Color = "sometimes"

	errs := cfg.Validate()
	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2", len(errs))
	}

	msg := ValidationErrors(errs).Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("combined message = %q", msg)
	}
}

func TestIsDisabledCaseInsensitive(t *testing.T) {
	p := ProvidersConfig{Disabled: []string{"Flatpak"}}
	if !p.IsDisabled("flatpak") {
		t.Error("IsDisabled should match case-insensitively")
	}
}

func TestResolveDirExplicit(t *testing.T) {
	c := CacheConfig{Dir: "/tmp/medley-cache"}
	if got := c.ResolveDir(); got != "/tmp/medley-cache" {
		t.Errorf("ResolveDir = %q", got)
	}
}

func TestResolveDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	c := CacheConfig{}
	if got := c.ResolveDir(); got != filepath.Join("/xdg/cache", "medley") {
		t.Errorf("ResolveDir = %q", got)
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	if got := ConfigDir(); got != filepath.Join("/xdg/config", "medley") {
		t.Errorf("ConfigDir = %q", got)
	}
	if got := ConfigFile(); got != filepath.Join("/xdg/config", "medley", "config.yaml") {
		t.Errorf("ConfigFile = %q", got)
	}
}
