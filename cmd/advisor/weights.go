package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"psp-advisor/internal/models"
	"psp-advisor/internal/services/database"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Inspect and store scoring weights",
}

var weightsShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a weight configuration, or the stored one when no file is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			weights models.WeightConfig
			err     error
		)
		if len(args) == 1 {
			weights, err = loadWeights(args[0])
		} else {
			weights, err = storedWeights(cmd)
		}
		if err != nil {
			return err
		}
		if weights == nil {
			weights = models.DefaultWeights()
		}

		formatWeights(cmd.OutOrStdout(), weights)
		return nil
	},
}

var weightsSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Validate a weight configuration and store it in the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weights, err := loadWeights(args[0])
		if err != nil {
			return err
		}

		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer db.Close()

		if err := database.NewSettingsRepository(db).SaveWeights(cmd.Context(), weights); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored %s weights (total %.0f)\n",
			weights.Kind(), weights.Extended().Sum())
		return nil
	},
}

func storedWeights(cmd *cobra.Command) (models.WeightConfig, error) {
	if !cfg.DatabaseConfigured() {
		return nil, nil
	}
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	return database.NewSettingsRepository(db).GetWeights(cmd.Context())
}

// formatWeights writes each factor with its share of the total.
func formatWeights(out io.Writer, weights models.WeightConfig) {
	ext := weights.Extended()
	total := ext.Sum()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Kind:\t%s\n", weights.Kind())
	rows := []struct {
		name  string
		value float64
	}{
		{"cost", ext.Cost},
		{"fit", ext.Fit},
		{"ops", ext.Ops},
		{"risk", ext.Risk},
		{"onboarding", ext.Onboarding},
		{"settlement", ext.Settlement},
		{"integration", ext.Integration},
		{"payment_match", ext.PaymentMatch},
		{"rating", ext.Rating},
	}
	for _, r := range rows {
		share := 0.0
		if total > 0 {
			share = r.value / total * 100
		}
		_, _ = fmt.Fprintf(w, "%s:\t%g\t(%.1f%%)\n", r.name, r.value, share)
	}
	_, _ = fmt.Fprintf(w, "Total:\t%g\n", total)
	_ = w.Flush()
}
