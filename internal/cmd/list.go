package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [provider]",
	Aliases: []string{"ls"},
	Short:   "List installed packages",
	Long: `List installed packages grouped by provider. Homebrew shows only
packages installed on request, not their dependencies; flatpak shows
applications, not runtimes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp("list")
	if err != nil {
		return err
	}
	defer a.close()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return a.orch.List(cmd.Context(), name)
}
