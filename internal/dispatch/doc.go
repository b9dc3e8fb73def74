// Package dispatch fans provider operations out to concurrent workers
// and fans their outcomes back in as an order-independent batch.
//
// Each command flow that touches multiple package managers (install,
// upgrade, clean, multi-backend search) builds one [Task] per provider
// and hands the batch to [RunAll]. Workers run independently; a failing
// or panicking provider is reported in its own [Result] without
// disturbing the others.
//
// # Usage
//
//	results := dispatch.RunAll([]dispatch.Task{
//	    {Name: "nixpkgs", Run: func() (string, error) { ... }},
//	    {Name: "flatpak", Run: func() (string, error) { ... }},
//	})
//	summary := dispatch.Summarize(results, "Upgrade complete.", "Upgrade completed with errors.")
//
// Results arrive in completion order, not submission order; the Name
// field disambiguates them.
package dispatch
