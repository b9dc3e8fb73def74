package cmd

import (
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the search result cache",
	Long: `Search results are cached per provider for five minutes under the
cache directory. These commands clear them early.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [provider]...",
	Short: "Drop cached search results",
	RunE:  runCacheClear,
}

var cacheClearExpired bool

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().BoolVar(&cacheClearExpired, "expired", false, "Only drop entries past their TTL")
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	a, err := newApp("cache")
	if err != nil {
		return err
	}
	defer a.close()

	a.orch.ClearCaches(args, cacheClearExpired)
	return nil
}
