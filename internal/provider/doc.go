// Package provider defines the backend surface medley coordinates over:
// the [Provider] interface each wrapped package manager implements, the
// [Package] record exchanged at every boundary, the [Registry] of known
// backends, and parsing of "provider#package" command-line specs.
//
// Concrete adapters live in the subpackages nix, flatpak, and homebrew.
// They are registered explicitly at startup:
//
//	reg := provider.NewRegistry()
//	reg.Register(nix.New(runner))
//	reg.Register(flatpak.New(runner))
//	reg.Register(homebrew.New(runner))
//
// Registration order determines iteration and display order.
package provider
