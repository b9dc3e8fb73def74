package provider

import "strings"

// Spec is a parsed package argument. Arguments take the forms
//
//	vim                 any provider, resolved interactively
//	nixpkgs#vim         one provider
//	nixpkgs#vim,htop    one provider, several packages
//	vim,htop            any provider, several packages
type Spec struct {
	// Provider is the explicit provider prefix, or "" when the argument
	// had none.
	Provider string
	// Names are the comma-separated package names, trimmed, empties
	// dropped.
	Names []string
}

// Explicit reports whether the argument carried a provider prefix.
func (s Spec) Explicit() bool {
	return s.Provider != ""
}

// ParseSpec parses a single command-line package argument.
func ParseSpec(arg string) Spec {
	var spec Spec

	rest := arg
	if idx := strings.Index(arg, "#"); idx >= 0 {
		spec.Provider = strings.TrimSpace(arg[:idx])
		rest = arg[idx+1:]
	}

	for _, part := range strings.Split(rest, ",") {
		if name := strings.TrimSpace(part); name != "" {
			spec.Names = append(spec.Names, name)
		}
	}
	return spec
}
