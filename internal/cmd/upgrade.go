package cmd

import (
	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:     "upgrade [target]...",
	Aliases: []string{"update"},
	Short:   "Upgrade packages",
	Long: `Upgrade packages across package managers in parallel.

With no arguments every available provider upgrades everything it
manages. Arguments may be provider names (upgrade that whole backend)
or provider#package specs.

Examples:
  # Upgrade everything everywhere
  medley upgrade

  # Upgrade one backend
  medley upgrade homebrew

  # Upgrade specific packages
  medley upgrade nixpkgs#ripgrep`,
	RunE: runUpgrade,
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	a, err := newApp("upgrade")
	if err != nil {
		return err
	}
	defer a.close()

	return a.orch.Upgrade(cmd.Context(), args)
}
