package cmd

import (
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search for packages across all package managers",
	Long: `Search every available package manager in parallel and print the
merged results.

A query of the form provider#term searches only that provider.
Wildcard queries (* and ?) filter results by name; plain queries
prefer exact name matches and fall back to everything found.

Examples:
  # Search everywhere
  medley search ripgrep

  # Search one provider
  medley search nixpkgs#ripgrep

  # Wildcard match
  medley search 'vim*'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var searchShowAll bool

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolVarP(&searchShowAll, "all", "a", false, "Show all results without name filtering")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp("search")
	if err != nil {
		return err
	}
	defer a.close()

	return a.orch.Search(cmd.Context(), args, searchShowAll)
}
