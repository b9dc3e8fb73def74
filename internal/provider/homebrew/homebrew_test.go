package homebrew

import "testing"

const searchOutput = `==> Formulae
ripgrep: Search tool like grep and The Silver Searcher
ripgrep-all: Wrapper around ripgrep that adds multiple rich file types

==> Casks
ripcord: Desktop chat client for Slack and Discord
`

func TestParseSearch(t *testing.T) {
	pkgs := parseSearch(searchOutput)
	if len(pkgs) != 3 {
		t.Fatalf("len(pkgs) = %d, want 3", len(pkgs))
	}

	rg := pkgs[0]
	if rg.Name != "ripgrep" {
		t.Errorf("Name = %q", rg.Name)
	}
	if rg.Description != "Search tool like grep and The Silver Searcher" {
		t.Errorf("Description = %q", rg.Description)
	}
	if rg.Origin != "formula" {
		t.Errorf("Origin = %q, want formula", rg.Origin)
	}

	cask := pkgs[2]
	if cask.Name != "ripcord" || cask.Origin != "cask" {
		t.Errorf("cask parsed as %+v", cask)
	}
}

func TestParseSearchBareNames(t *testing.T) {
	pkgs := parseSearch("ripgrep\nugrep\n")
	if len(pkgs) != 2 {
		t.Fatalf("len(pkgs) = %d, want 2", len(pkgs))
	}
	if pkgs[0].Name != "ripgrep" || pkgs[0].Description != "" {
		t.Errorf("parsed %+v", pkgs[0])
	}
}

func TestParseSearchEmpty(t *testing.T) {
	if pkgs := parseSearch(""); len(pkgs) != 0 {
		t.Errorf("pkgs = %v, want none", pkgs)
	}
}

func TestParseInstalled(t *testing.T) {
	requested := "ripgrep\njq\n"
	versions := "ripgrep 14.1.0\njq 1.7.1\noniguruma 6.9.9\npcre2 10.44 10.43\n"

	pkgs := parseInstalled(requested, versions)
	if len(pkgs) != 2 {
		t.Fatalf("len(pkgs) = %d, want 2 (dependencies excluded)", len(pkgs))
	}

	if pkgs[0].Name != "ripgrep" || pkgs[0].Version != "14.1.0" {
		t.Errorf("parsed %+v", pkgs[0])
	}
	if pkgs[1].Name != "jq" || pkgs[1].Version != "1.7.1" {
		t.Errorf("parsed %+v", pkgs[1])
	}
	for _, p := range pkgs {
		if !p.Installed {
			t.Errorf("%s not marked installed", p.Name)
		}
	}
}

func TestParseInstalledKeepsFirstVersion(t *testing.T) {
	pkgs := parseInstalled("pcre2\n", "pcre2 10.44 10.43\n")
	if len(pkgs) != 1 || pkgs[0].Version != "10.44" {
		t.Errorf("pkgs = %+v", pkgs)
	}
}
