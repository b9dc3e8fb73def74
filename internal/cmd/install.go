package cmd

import (
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:     "install <package>...",
	Aliases: []string{"add"},
	Short:   "Install packages",
	Long: `Install packages, resolving bare names interactively.

Arguments of the form provider#package (or provider#a,b,c) install
directly from that provider. Bare names are searched across all
providers and the matches offered for selection. Installs fan out in
parallel, one task per provider.

Examples:
  # Resolve interactively
  medley install ripgrep

  # Install straight from a provider
  medley install nixpkgs#ripgrep flatpak#com.spotify.Client

  # Several packages from one provider
  medley install homebrew#jq,fzf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

var installShowAll bool

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().BoolVarP(&installShowAll, "all", "a", false, "Show all matches without name filtering")
}

func runInstall(cmd *cobra.Command, args []string) error {
	a, err := newApp("install")
	if err != nil {
		return err
	}
	defer a.close()

	return a.orch.Install(cmd.Context(), args, installShowAll)
}
