package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"psp-advisor/internal/models"
	"psp-advisor/internal/services/recommender"
	"psp-advisor/internal/utils"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank providers for a merchant profile",
	Long: `Rank the providers in a catalog snapshot for one merchant profile.

Profiles and catalogs may be JSON or YAML; the format follows the file
extension. Weights default to the built-in configuration.

Examples:
  # Rank with default weights
  advisor recommend --profile merchant.yaml --catalog providers.json

  # Show the top three in Arabic as JSON
  advisor recommend --profile merchant.json --catalog providers.yaml --top 3 --locale ar --format json`,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.String("profile", "", "merchant profile file (JSON or YAML)")
	f.String("catalog", "", "catalog snapshot file (JSON or YAML)")
	f.String("weights", "", "weight configuration file (JSON)")
	f.Int("top", 0, "maximum number of providers to show (0=all)")
	f.String("locale", "", "override the profile locale (ar or en)")
	f.String("format", "table", "output format: table or json")
	_ = recommendCmd.MarkFlagRequired("profile")
	_ = recommendCmd.MarkFlagRequired("catalog")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	profilePath, _ := cmd.Flags().GetString("profile")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	weightsPath, _ := cmd.Flags().GetString("weights")
	top, _ := cmd.Flags().GetInt("top")
	locale, _ := cmd.Flags().GetString("locale")
	format, _ := cmd.Flags().GetString("format")

	if format != "table" && format != "json" {
		return fmt.Errorf("recommend: --format must be table or json (got %q)", format)
	}

	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}
	if locale != "" {
		profile.Locale = models.Locale(locale)
		if !profile.Locale.IsValid() {
			return fmt.Errorf("recommend: %w", models.ErrInvalidLocale)
		}
	}

	catalog, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	weights, err := loadWeights(weightsPath)
	if err != nil {
		return err
	}

	engine := recommender.NewEngine(recommender.SettingsFromConfig(cfg))
	svc := recommender.NewService(engine,
		recommender.StaticCatalog(catalog),
		recommender.StaticWeights{Config: weights},
	)

	run, err := svc.Recommend(cmd.Context(), profile)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if top > 0 && len(run.Recommendations) > top {
		run.Recommendations = run.Recommendations[:top]
	}

	utils.GetLogger().Debug("recommendation complete",
		zap.String("run_id", run.RunID),
		zap.Int("recommended", len(run.Recommendations)),
	)

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	formatRecommendations(out, run)
	return nil
}

func loadProfile(path string) (*models.MerchantProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	profile, err := utils.ParseProfile(path, data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return profile, nil
}

func loadCatalog(path string) ([]*models.Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	providers, err := utils.ParseCatalog(path, data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return providers, nil
}

// loadWeights returns nil when no path is given so the service applies defaults.
func loadWeights(path string) (models.WeightConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	weights, err := models.ParseWeights(data)
	if err != nil {
		return nil, fmt.Errorf("weights %s: %w", path, err)
	}
	return weights, nil
}

// formatRecommendations writes a ranked table followed by the reasons and caveats.
func formatRecommendations(out io.Writer, run *models.RecommendationRun) {
	_, _ = fmt.Fprintf(out, "Run %s: %d candidates, %d disqualified\n\n",
		run.RunID, run.Candidates, run.Disqualified)

	if len(run.Recommendations) == 0 {
		_, _ = fmt.Fprintln(out, "No provider matches this profile.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tPROVIDER\tSCORE\tMONTHLY COST (SAR)\tFRESHNESS")
	_, _ = fmt.Fprintln(w, "-\t--------\t-----\t------------------\t---------")
	for i, rec := range run.Recommendations {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f - %.2f\t%s\n",
			i+1,
			displayName(rec, run.Locale),
			rec.Total,
			rec.Pricing.CostMin,
			rec.Pricing.CostMax,
			rec.Freshness,
		)
	}
	_ = w.Flush()

	for i, rec := range run.Recommendations {
		_, _ = fmt.Fprintf(out, "\n%d. %s\n", i+1, displayName(rec, run.Locale))
		for _, reason := range rec.Reasons {
			_, _ = fmt.Fprintf(out, "   + %s\n", reason)
		}
		for _, caveat := range rec.Caveats {
			_, _ = fmt.Fprintf(out, "   ! %s\n", caveat)
		}
	}
}

func displayName(rec models.Recommendation, locale models.Locale) string {
	name := rec.NameEN
	if locale == models.LocaleArabic && rec.NameAR != "" {
		name = rec.NameAR
	}
	if name == "" {
		name = rec.Slug
	}
	return name
}
