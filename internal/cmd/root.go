package cmd

import (
	"strings"

	"github.com/medley-sh/medley/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "medley",
	Short: "One front door for your package managers",
	Long: `Medley unifies Nix, Flatpak and Homebrew behind a single set of
commands. Searches fan out to every available package manager in
parallel, installs resolve bare names interactively, and upgrade and
clean run across all backends at once.

Packages can be addressed by bare name or as provider#package, e.g.
nixpkgs#ripgrep or flatpak#com.spotify.Client.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var (
	flagYes     bool
	flagNoCache bool
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/medley/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "skip prompts, auto-select sole matches")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "bypass the search result cache")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/medley")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MEDLEY")
	// Replace dots with underscores for nested keys in env vars
	// e.g., MEDLEY_PROVIDERS_DEFAULT for providers.default
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
