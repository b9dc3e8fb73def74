package provider

import (
	"context"
	"testing"

	"github.com/medley-sh/medley/internal/errors"
)

// fakeProvider is a minimal Provider for registry tests.
type fakeProvider struct {
	name      string
	available bool
}

func (f *fakeProvider) Name() string      { return f.name }
func (f *fakeProvider) IsAvailable() bool { return f.available }
func (f *fakeProvider) Search(context.Context, string) ([]Package, error) {
	return nil, nil
}
func (f *fakeProvider) Install(context.Context, []string) error   { return nil }
func (f *fakeProvider) Uninstall(context.Context, []string) error { return nil }
func (f *fakeProvider) Upgrade(context.Context, []string) error   { return nil }
func (f *fakeProvider) Clean(context.Context) error               { return nil }
func (f *fakeProvider) ListInstalled(context.Context) ([]Package, error) {
	return nil, nil
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry()
	nix := &fakeProvider{name: "nixpkgs", available: true}
	reg.Register(nix)

	got, err := reg.Get("nixpkgs")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nix {
		t.Error("Get returned a different provider")
	}

	_, err = reg.Get("pacman")
	if !errors.Is(err, errors.ErrProviderNotFound) {
		t.Errorf("Get(unknown) = %v, want ErrProviderNotFound", err)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeProvider{name: "nixpkgs"})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	reg.Register(&fakeProvider{name: "nixpkgs"})
}

func TestRegistryOrderIsRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	names := []string{"nixpkgs", "flatpak", "homebrew"}
	for _, name := range names {
		reg.Register(&fakeProvider{name: name, available: name != "homebrew"})
	}

	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("len(All()) = %d, want 3", len(all))
	}
	for i, p := range all {
		if p.Name() != names[i] {
			t.Errorf("All()[%d] = %q, want %q", i, p.Name(), names[i])
		}
	}

	avail := reg.Available()
	if len(avail) != 2 {
		t.Fatalf("len(Available()) = %d, want 2", len(avail))
	}
	if avail[0].Name() != "nixpkgs" || avail[1].Name() != "flatpak" {
		t.Errorf("Available() order = %q, %q", avail[0].Name(), avail[1].Name())
	}
}

func TestRegistryDefaultName(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.DefaultName(); !errors.Is(err, errors.ErrNoProviders) {
		t.Errorf("DefaultName() on empty registry = %v, want ErrNoProviders", err)
	}

	reg.Register(&fakeProvider{name: "nixpkgs", available: false})
	reg.Register(&fakeProvider{name: "flatpak", available: true})

	name, err := reg.DefaultName()
	if err != nil {
		t.Fatalf("DefaultName: %v", err)
	}
	if name != "flatpak" {
		t.Errorf("DefaultName() = %q, want first available %q", name, "flatpak")
	}

	reg.SetDefault("nixpkgs")
	name, err = reg.DefaultName()
	if err != nil {
		t.Fatalf("DefaultName: %v", err)
	}
	if name != "nixpkgs" {
		t.Errorf("DefaultName() = %q, want configured %q", name, "nixpkgs")
	}
}

func TestInstallID(t *testing.T) {
	tests := []struct {
		name string
		pkg  Package
		want string
	}{
		{"id preferred", Package{Name: "Spotify", ID: "com.spotify.Client"}, "com.spotify.Client"},
		{"falls back to name", Package{Name: "vim"}, "vim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pkg.InstallID(); got != tt.want {
				t.Errorf("InstallID() = %q, want %q", got, tt.want)
			}
		})
	}
}
