package nix

import (
	"testing"
)

const searchJSON = `{
  "legacyPackages.x86_64-linux.ripgrep": {
    "pname": "ripgrep",
    "version": "14.1.0",
    "description": "Utility that combines the usability of The Silver Searcher with the raw speed of grep"
  },
  "legacyPackages.x86_64-linux.ripgrep-all": {
    "pname": "ripgrep-all",
    "version": "0.10.9",
    "description": "Like ripgrep, but also search in PDFs and more"
  }
}`

func TestParseSearch(t *testing.T) {
	pkgs, err := parseSearch([]byte(searchJSON))
	if err != nil {
		t.Fatalf("parseSearch: %v", err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("len(pkgs) = %d, want 2", len(pkgs))
	}

	rg := pkgs[0]
	if rg.Name != "ripgrep" {
		t.Errorf("Name = %q, want %q", rg.Name, "ripgrep")
	}
	if rg.ID != "legacyPackages.x86_64-linux.ripgrep" {
		t.Errorf("ID = %q, want the full attribute path", rg.ID)
	}
	if rg.Version != "14.1.0" {
		t.Errorf("Version = %q", rg.Version)
	}
	if rg.Provider != "nixpkgs" {
		t.Errorf("Provider = %q", rg.Provider)
	}
	if rg.Installed {
		t.Error("search results must not be marked installed")
	}
}

func TestParseSearchGarbage(t *testing.T) {
	if _, err := parseSearch([]byte("warning: not json")); err == nil {
		t.Error("parseSearch should reject non-JSON output")
	}
}

const profileListDict = `{
  "elements": {
    "ripgrep": {
      "attrPath": "legacyPackages.x86_64-linux.ripgrep",
      "originalUrl": "flake:nixpkgs",
      "storePaths": ["/nix/store/8f2hp1sg7ybbcn7a2kpzkhm6v4kzk8x5-ripgrep-14.1.0"]
    },
    "jq": {
      "originalUrl": "flake:nixpkgs",
      "storePaths": ["/nix/store/y7ll3bcgjkfjqbm2ab8y7a9cdw7hq9sr-jq-1.7.1-bin"]
    }
  },
  "version": 3
}`

func TestParseProfileListDict(t *testing.T) {
	pkgs, err := parseProfileList([]byte(profileListDict))
	if err != nil {
		t.Fatalf("parseProfileList: %v", err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("len(pkgs) = %d, want 2", len(pkgs))
	}

	jq := pkgs[0]
	if jq.Name != "jq" || jq.Version != "1.7.1-bin" {
		t.Errorf("jq parsed as %+v", jq)
	}
	if !jq.Installed {
		t.Error("profile entries must be marked installed")
	}
	if jq.Origin != "flake:nixpkgs" {
		t.Errorf("Origin = %q", jq.Origin)
	}

	rg := pkgs[1]
	if rg.Name != "ripgrep" || rg.Version != "14.1.0" {
		t.Errorf("ripgrep parsed as %+v", rg)
	}
}

const profileListArray = `{
  "elements": [
    {
      "attrPath": "legacyPackages.x86_64-linux.ripgrep",
      "storePaths": ["/nix/store/8f2hp1sg7ybbcn7a2kpzkhm6v4kzk8x5-ripgrep-14.1.0"]
    }
  ]
}`

func TestParseProfileListArray(t *testing.T) {
	pkgs, err := parseProfileList([]byte(profileListArray))
	if err != nil {
		t.Fatalf("parseProfileList: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0].Name != "ripgrep" || pkgs[0].Version != "14.1.0" {
		t.Errorf("pkgs = %+v", pkgs)
	}
}

func TestVersionFromStorePaths(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/nix/store/8f2hp1sg7ybbcn7a2kpzkhm6v4kzk8x5-ripgrep-14.1.0", "14.1.0"},
		{"/nix/store/8f2hp1sg7ybbcn7a2kpzkhm6v4kzk8x5-python3-3.12.7", "3.12.7"},
		{"/nix/store/8f2hp1sg7ybbcn7a2kpzkhm6v4kzk8x5-gcc-wrapper-13.3.0", "13.3.0"},
		{"/nix/store/8f2hp1sg7ybbcn7a2kpzkhm6v4kzk8x5-hello", ""},
		{"/nix/store/short", ""},
		{"", ""},
	}
	for _, tt := range tests {
		var paths []string
		if tt.path != "" {
			paths = []string{tt.path}
		}
		if got := versionFromStorePaths(paths); got != tt.want {
			t.Errorf("versionFromStorePaths(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
