package cmd

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <package>...",
	Aliases: []string{"uninstall", "rm"},
	Short:   "Remove installed packages",
	Long: `Remove installed packages.

Arguments of the form provider#package remove directly. Bare names are
matched against the installed packages of every provider; multiple
matches can be selected at once. Removals run sequentially per
provider.

Examples:
  medley remove ripgrep
  medley remove flatpak#com.spotify.Client`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

var removeShowAll bool

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolVarP(&removeShowAll, "all", "a", false, "Show all matches without name filtering")
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp("remove")
	if err != nil {
		return err
	}
	defer a.close()

	return a.orch.Remove(cmd.Context(), args, removeShowAll)
}
