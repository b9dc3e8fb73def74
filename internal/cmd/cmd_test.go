package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "medley" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "medley")
	}

	expectedCmds := []string{"search", "install", "remove", "upgrade", "clean", "list", "cache", "version"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, name := range expectedCmds {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"config", "yes", "no-cache"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestCommandAliases(t *testing.T) {
	aliases := map[string]string{
		"add":       "install",
		"uninstall": "remove",
		"update":    "upgrade",
		"ls":        "list",
	}
	for alias, want := range aliases {
		cmd, _, err := rootCmd.Find([]string{alias})
		if err != nil {
			t.Errorf("alias %q not resolvable: %v", alias, err)
			continue
		}
		if cmd.Name() != want {
			t.Errorf("alias %q resolved to %q, want %q", alias, cmd.Name(), want)
		}
	}
}

func TestSearchRequiresArgs(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"search"})
	if err != nil {
		t.Fatalf("find search: %v", err)
	}
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("search should require at least one query")
	}
	if err := cmd.Args(cmd, []string{"vim"}); err != nil {
		t.Errorf("search with one query rejected: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(rootCmd, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "medley") {
		t.Errorf("version output = %q", out)
	}
}
