package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"psp-advisor/internal/models"
)

func scoreDefault(profile *models.MerchantProfile, provider *models.Provider) Scorecard {
	pricing := CalculatePricing(profile, provider, DefaultSettings())
	return ScoreProvider(profile, provider, pricing, pricing.Midpoint(), models.DefaultWeights(), DefaultSettings())
}

func TestScoreProvider_FullySuitedProvider(t *testing.T) {
	card := scoreDefault(testProfile(), testProvider(1, "alpha"))

	assert.Equal(t, models.Scores{
		Cost:         100,
		Fit:          100,
		Operations:   90,
		Risk:         100,
		Onboarding:   100,
		Settlement:   80,
		Integration:  100,
		PaymentMatch: 100,
		Rating:       90,
	}, card.Scores)

	// 12190 / 126
	assert.Equal(t, 96.75, card.Total)
	assert.Zero(t, card.Risk)
}

func TestScoreProvider_ScoresStayInRange(t *testing.T) {
	profile := testProfile(func(p *models.MerchantProfile) {
		p.ChargebacksRate = 5
		p.Needs = models.NewNeeds(models.AllNeeds()...)
		p.Platforms = []string{"shopify", "woocommerce", "magento", "opencart", "wix"}
	})
	provider := testProvider(1, "alpha", func(p *models.Provider) {
		p.Fees[0].ChargebackFee = 100
		p.FraudPrevention = false
		p.RollingReservePercent = 10
		p.Ops = &models.OpsMetrics{Onboarding: 150, Support: 150, Documentation: 150}
		p.Reviews = []models.ReviewAggregate{{RatingAvg: 7, RatingMax: 5, RatingCount: 3}}
		p.Wallets = nil
		p.BNPL = nil
		p.ActivationDaysMax = 60
		p.SettlementDaysMin = 10
	})

	card := scoreDefault(profile, provider)

	for name, v := range map[string]float64{
		"cost":          card.Scores.Cost,
		"fit":           card.Scores.Fit,
		"operations":    card.Scores.Operations,
		"risk":          card.Scores.Risk,
		"onboarding":    card.Scores.Onboarding,
		"settlement":    card.Scores.Settlement,
		"integration":   card.Scores.Integration,
		"payment_match": card.Scores.PaymentMatch,
		"rating":        card.Scores.Rating,
		"total":         card.Total,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 100.0, name)
	}
	assert.Equal(t, 55.0, card.Scores.Risk)
	assert.True(t, card.Risk.Has(RiskHighChargebackFee))
	assert.True(t, card.Risk.Has(RiskNoFraudPrevention))
	assert.True(t, card.Risk.Has(RiskRollingReserve))
}

func TestCostScore(t *testing.T) {
	assert.Equal(t, 100.0, costScore(500, 500))
	assert.Equal(t, 50.0, costScore(500, 1000))
	assert.Equal(t, 100.0, costScore(0, 0))
	assert.Equal(t, 0.0, costScore(0, 1000))
	assert.Equal(t, 0.0, costScore(-200, 1000))
	assert.Equal(t, 100.0, costScore(5000, 1000))
}

func TestFitScore(t *testing.T) {
	tests := []struct {
		name     string
		needs    models.Needs
		provider *models.Provider
		want     float64
	}{
		{"no needs", 0, testProvider(1, "a"), 100},
		{
			"apple pay missing",
			models.NewNeeds(models.NeedApplePay),
			testProvider(1, "a", func(p *models.Provider) { p.Wallets = p.Wallets[1:] }),
			88,
		},
		{
			"google pay missing",
			models.NewNeeds(models.NeedGooglePay),
			testProvider(1, "a", func(p *models.Provider) { p.Wallets = p.Wallets[:1] }),
			92,
		},
		{
			"multi currency and tokenization missing",
			models.NewNeeds(models.NeedMultiCurrency, models.NeedTokenization),
			testProvider(1, "a", func(p *models.Provider) {
				p.MultiCurrency = false
				for i := range p.Methods {
					p.Methods[i].SupportsTokenization = false
				}
			}),
			75,
		},
		{
			"recurring and bnpl missing",
			models.NewNeeds(models.NeedRecurring, models.NeedBNPL),
			testProvider(1, "a", func(p *models.Provider) {
				p.Methods = nil
				p.BNPL = nil
			}),
			65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := testProfile(func(p *models.MerchantProfile) { p.Needs = tt.needs })
			assert.Equal(t, tt.want, fitScore(profile, tt.provider))
		})
	}
}

func TestPlatformScoring(t *testing.T) {
	provider := testProvider(1, "alpha") // salla, zid

	t.Run("no platform requested", func(t *testing.T) {
		profile := testProfile(func(p *models.MerchantProfile) { p.Platforms = []string{"shopify"} })
		assert.Equal(t, 100.0, integrationScore(profile, provider))
	})

	t.Run("target platform integrated", func(t *testing.T) {
		profile := testProfile(func(p *models.MerchantProfile) {
			p.TargetPlatform = "Salla"
			p.Platforms = []string{"shopify", "magento"}
		})
		assert.Equal(t, 100.0, integrationScore(profile, provider))
		assert.Equal(t, 100.0, fitScore(profile, provider))
	})

	t.Run("five points per integrated platform", func(t *testing.T) {
		profile := testProfile(func(p *models.MerchantProfile) {
			p.Needs = models.NewNeeds(models.NeedPlatformIntegration)
			p.Platforms = []string{"salla", "shopify"}
		})
		assert.Equal(t, 25.0, integrationScore(profile, provider))
		assert.Equal(t, 85.0, fitScore(profile, provider))
	})

	t.Run("target platform missing", func(t *testing.T) {
		profile := testProfile(func(p *models.MerchantProfile) { p.TargetPlatform = "shopify" })
		assert.Equal(t, 0.0, integrationScore(profile, provider))
	})
}

func TestOpsScore(t *testing.T) {
	assert.Equal(t, 70.0, opsScore(testProvider(1, "a", func(p *models.Provider) { p.Ops = nil })))
	assert.Equal(t, 76.0, opsScore(testProvider(1, "a", func(p *models.Provider) {
		p.Ops = &models.OpsMetrics{Onboarding: 80, Support: 70, Documentation: 80}
	})))
}

func TestOnboardingScore(t *testing.T) {
	for days, want := range map[int]float64{1: 100, 3: 100, 4: 80, 7: 80, 8: 60, 14: 60, 15: 40, 45: 40} {
		provider := testProvider(1, "a", func(p *models.Provider) { p.ActivationDaysMax = days })
		assert.Equal(t, want, onboardingScore(provider), "activation days %d", days)
	}
}

func TestSettlementScore(t *testing.T) {
	fast := testProfile(func(p *models.MerchantProfile) { p.Needs = models.NewNeeds(models.NeedFastSettlement) })
	relaxed := testProfile()

	tests := []struct {
		days        int
		fast, other float64
	}{
		{0, 100, 80},
		{1, 100, 80},
		{2, 70, 80},
		{3, 70, 80},
		{5, 40, 80},
		{7, 40, 60},
	}

	for _, tt := range tests {
		provider := testProvider(1, "a", func(p *models.Provider) { p.SettlementDaysMin = tt.days })
		assert.Equal(t, tt.fast, settlementScore(fast, provider), "fast, %d days", tt.days)
		assert.Equal(t, tt.other, settlementScore(relaxed, provider), "relaxed, %d days", tt.days)
	}
}

func TestPaymentMatchScore(t *testing.T) {
	provider := testProvider(1, "a", func(p *models.Provider) { p.Wallets = nil })

	assert.Equal(t, 85.0, paymentMatchScore(testProfile(), provider))
	assert.Equal(t, 100.0, paymentMatchScore(testProfile(func(p *models.MerchantProfile) { p.PaymentMix = nil }), provider))
}

func TestRatingScore(t *testing.T) {
	t.Run("no reviews", func(t *testing.T) {
		provider := testProvider(1, "a", func(p *models.Provider) { p.Reviews = nil })
		assert.Equal(t, 50.0, ratingScore(provider))
	})

	t.Run("few ratings weigh like ten", func(t *testing.T) {
		provider := testProvider(1, "a", func(p *models.Provider) {
			p.Reviews = []models.ReviewAggregate{
				{Platform: "google", RatingAvg: 4.5, RatingMax: 5, RatingCount: 10},
				{Platform: "maroof", RatingAvg: 3, RatingMax: 5, RatingCount: 2},
			}
		})
		assert.Equal(t, 75.0, ratingScore(provider))
	})

	t.Run("large platforms dominate", func(t *testing.T) {
		provider := testProvider(1, "a", func(p *models.Provider) {
			p.Reviews = []models.ReviewAggregate{
				{Platform: "trustpilot", RatingAvg: 4.5, RatingMax: 5, RatingCount: 1000},
				{Platform: "maroof", RatingAvg: 3, RatingMax: 5, RatingCount: 5},
			}
		})
		// (90*3 + 60*1) / 4
		assert.InDelta(t, 82.5, ratingScore(provider), 0.5)
	})
}

func TestWeightedTotal(t *testing.T) {
	perfect := models.Scores{
		Cost: 100, Fit: 100, Operations: 100, Risk: 100, Onboarding: 100,
		Settlement: 100, Integration: 100, PaymentMatch: 100, Rating: 100,
	}

	assert.Equal(t, 100.0, WeightedTotal(perfect, models.DefaultWeights()))
	assert.Equal(t, 0.0, WeightedTotal(perfect, models.ExtendedWeights{}))

	costOnly := models.ExtendedWeights{Cost: 1}
	assert.Equal(t, 42.0, WeightedTotal(models.Scores{Cost: 42, Fit: 100}, costOnly))
}

func TestScoreProvider_LegacyWeights(t *testing.T) {
	profile := testProfile()
	provider := testProvider(1, "alpha")
	pricing := CalculatePricing(profile, provider, DefaultSettings())

	legacy := models.LegacyWeights{Cost: 30, Fit: 20, Ops: 15, Risk: 15}
	card := ScoreProvider(profile, provider, pricing, pricing.Midpoint(), legacy.Extended(), DefaultSettings())

	// Same factors as the defaults, so the total matches.
	assert.Equal(t, 96.75, card.Total)

	costHeavy := models.LegacyWeights{Cost: 100, Fit: 0, Ops: 0, Risk: 0}
	expensive := ScoreProvider(profile, provider, pricing, pricing.Midpoint()/2, costHeavy.Extended(), DefaultSettings())
	assert.Less(t, expensive.Total, card.Total)
}
