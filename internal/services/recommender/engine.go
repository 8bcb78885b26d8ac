package recommender

import (
	"cmp"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"psp-advisor/internal/models"
	"psp-advisor/internal/utils"
)

// Engine turns a merchant profile and a provider catalog into ranked recommendations.
// It keeps no state between calls and never mutates its inputs.
type Engine struct {
	settings  Settings
	localizer *Localizer
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for the data-freshness check.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLocalizer replaces the default message catalog.
func WithLocalizer(l *Localizer) Option {
	return func(e *Engine) {
		e.localizer = l
	}
}

// NewEngine creates an engine with the given settings.
func NewEngine(settings Settings, opts ...Option) *Engine {
	e := &Engine{
		settings: settings.normalized(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.localizer == nil {
		e.localizer = MustLocalizer()
	}
	return e
}

// candidate is a provider that survived Phase 1.
type candidate struct {
	provider *models.Provider
	pricing  models.PricingResult
}

// assessment is the Phase 2 result for one candidate, before message rendering.
type assessment struct {
	eligibility Eligibility
	card        Scorecard
	explained   explanation
}

// Evaluate prices, filters and scores every provider with an active fee for at
// least one method in the merchant's mix.
// Evaluations come back in catalog order and include disqualified providers.
func (e *Engine) Evaluate(profile *models.MerchantProfile, catalog []*models.Provider, weights models.WeightConfig) []models.Evaluation {
	w := models.DefaultWeights()
	if weights != nil {
		w = weights.Extended()
	}

	// Phase 1: price every provider with a fee matching the mix.
	candidates := e.priceCatalog(profile, catalog)
	if len(candidates) == 0 {
		utils.GetLogger().Debug("No priced candidates",
			zap.Int("catalog_size", len(catalog)),
		)
		return []models.Evaluation{}
	}

	// Barrier: every cost must be known before any cost score is computed.
	minCostOverall := math.Inf(1)
	for _, c := range candidates {
		minCostOverall = math.Min(minCostOverall, c.pricing.Midpoint())
	}

	// Phase 2: eligibility and scoring against the catalog-wide minimum.
	assessments := e.assessCandidates(profile, candidates, minCostOverall, w)

	// Messages are rendered sequentially once all numeric work is done.
	evaluations := make([]models.Evaluation, len(candidates))
	disqualified := 0
	for i, c := range candidates {
		evaluations[i] = e.render(profile, c, assessments[i])
		if evaluations[i].Disqualified {
			disqualified++
		}
	}

	utils.GetLogger().Debug("Evaluated catalog",
		zap.Int("catalog_size", len(catalog)),
		zap.Int("candidates", len(candidates)),
		zap.Int("disqualified", disqualified),
		zap.Float64("min_cost_overall", minCostOverall),
	)

	return evaluations
}

// Recommend returns the eligible providers ordered by total score, highest first.
// An empty slice means no provider was both priced and eligible.
func (e *Engine) Recommend(profile *models.MerchantProfile, catalog []*models.Provider, weights models.WeightConfig) []models.Recommendation {
	return Rank(e.Evaluate(profile, catalog, weights))
}

// Rank drops disqualified evaluations and sorts the rest by total descending.
// Equal totals keep catalog order.
func Rank(evaluations []models.Evaluation) []models.Recommendation {
	ranked := make([]models.Recommendation, 0, len(evaluations))
	for i := range evaluations {
		if evaluations[i].Disqualified {
			continue
		}
		ranked = append(ranked, evaluations[i].ToRecommendation())
	}
	slices.SortStableFunc(ranked, func(a, b models.Recommendation) int {
		return cmp.Compare(b.Total, a.Total)
	})
	return ranked
}

func (e *Engine) priceCatalog(profile *models.MerchantProfile, catalog []*models.Provider) []candidate {
	slots := make([]*candidate, len(catalog))

	// A provider with no fee for any method in the mix cannot be priced.
	methods := profile.PaymentMix.Methods()

	var g errgroup.Group
	g.SetLimit(e.settings.Workers)
	for i, provider := range catalog {
		if provider == nil || !provider.HasFeeFor(methods) {
			continue
		}
		g.Go(func() error {
			slots[i] = &candidate{
				provider: provider,
				pricing:  CalculatePricing(profile, provider, e.settings),
			}
			return nil
		})
	}
	_ = g.Wait()

	candidates := make([]candidate, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates
}

func (e *Engine) assessCandidates(profile *models.MerchantProfile, candidates []candidate, minCostOverall float64, w models.ExtendedWeights) []assessment {
	out := make([]assessment, len(candidates))
	now := e.now()

	var g errgroup.Group
	g.SetLimit(e.settings.Workers)
	for i, c := range candidates {
		g.Go(func() error {
			elig := CheckEligibility(profile, c.provider, e.settings)
			if elig.Disqualified {
				out[i] = assessment{eligibility: elig}
				return nil
			}
			card := ScoreProvider(profile, c.provider, c.pricing, minCostOverall, w, e.settings)
			out[i] = assessment{
				eligibility: elig,
				card:        card,
				explained:   explain(profile, c.provider, card, elig.Caveats, e.settings, now),
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *Engine) render(profile *models.MerchantProfile, c candidate, a assessment) models.Evaluation {
	eval := models.Evaluation{
		Provider: c.provider.ToSummary(),
		Pricing:  c.pricing,
	}

	if a.eligibility.Disqualified {
		eval.Disqualified = true
		if a.eligibility.Reason != nil {
			eval.Reason = e.localizer.RenderOne(profile.Locale, *a.eligibility.Reason)
		}
		return eval
	}

	eval.Scores = a.card.Scores
	eval.Total = a.card.Total
	eval.Reasons = e.localizer.Render(profile.Locale, a.explained.reasons)
	eval.Caveats = e.localizer.Render(profile.Locale, a.explained.caveats)
	eval.Freshness = a.explained.freshness
	return eval
}
