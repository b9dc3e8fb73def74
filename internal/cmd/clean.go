package cmd

import (
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [provider]...",
	Short: "Reclaim disk space",
	Long: `Run each package manager's cleanup: nix garbage collection, unused
flatpak runtimes, outdated homebrew downloads. All providers clean in
parallel unless specific ones are named.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	a, err := newApp("clean")
	if err != nil {
		return err
	}
	defer a.close()

	return a.orch.Clean(cmd.Context(), args)
}
