package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	s3service "psp-advisor/internal/services/s3"
	"psp-advisor/internal/utils"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and publish provider catalog snapshots",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog snapshot for structural problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		providers, err := loadCatalog(args[0])
		if err != nil {
			return err
		}

		active := 0
		for _, p := range providers {
			if p.IsActive {
				active++
			}
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d providers (%d active)\n", args[0], len(providers), active)
		return nil
	},
}

var catalogPublishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Upload a validated catalog snapshot to S3",
	Long: `Validate a catalog file and upload it as the snapshot the recommendation
Lambda reads when no database is configured. The target bucket and key come
from S3_BUCKET and CATALOG_SNAPSHOT_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		providers, err := loadCatalog(args[0])
		if err != nil {
			return err
		}

		store, err := s3service.NewService(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		exportedAt := time.Now().UTC()
		if err := store.SaveCatalog(cmd.Context(), providers, exportedAt); err != nil {
			return fmt.Errorf("publish: %w", err)
		}

		utils.GetLogger().Info("catalog published",
			zap.String("bucket", cfg.S3Bucket),
			zap.String("key", cfg.CatalogSnapshotKey),
			zap.Int("providers", len(providers)),
		)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Published %d providers to s3://%s/%s\n",
			len(providers), cfg.S3Bucket, cfg.CatalogSnapshotKey)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd, catalogPublishCmd)
	rootCmd.AddCommand(catalogCmd)
}
