// Command advisor runs recommendations against local files and manages the
// provider catalog and scoring weights.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"psp-advisor/internal/config"
	"psp-advisor/internal/utils"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Payment provider recommendation tooling",
	Long:  "Ranks payment service providers for a merchant profile, validates and publishes catalog snapshots, and stores scoring weights.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := utils.InitLogger(cfg.LogLevel); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		utils.Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
