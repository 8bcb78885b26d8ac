package recommender

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psp-advisor/internal/models"
)

func testCatalog() []*models.Provider {
	return []*models.Provider{
		testProvider(1, "alpha"),
		testProvider(2, "beta", func(p *models.Provider) {
			p.Fees[0].Percent = 2.5
			p.Ops = nil
		}),
		testProvider(3, "gamma", func(p *models.Provider) {
			p.SectorRules = []models.SectorRule{{Sector: "retail", Supported: false}}
		}),
		testProvider(4, "delta", func(p *models.Provider) {
			for i := range p.Fees {
				p.Fees[i].Active = false
			}
		}),
		nil,
	}
}

func slugs(recs []models.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Slug)
	}
	return out
}

func TestEngine_Recommend(t *testing.T) {
	engine := testEngine()

	recs := engine.Recommend(testProfile(), testCatalog(), nil)

	require.Equal(t, []string{"alpha", "beta"}, slugs(recs))
	assert.Equal(t, 100.0, recs[0].Scores.Cost)
	assert.Less(t, recs[1].Scores.Cost, 100.0)
	assert.Greater(t, recs[0].Total, recs[1].Total)
	assert.Equal(t, models.FreshnessCurrent, recs[0].Freshness)
	assert.Equal(t, "Provider alpha", recs[0].NameEN)
}

func TestEngine_EvaluateKeepsDisqualified(t *testing.T) {
	evaluations := testEngine().Evaluate(testProfile(), testCatalog(), nil)

	// delta has no active fee record and the nil entry is skipped.
	require.Len(t, evaluations, 3)

	gamma := evaluations[2]
	assert.Equal(t, "gamma", gamma.Provider.Slug)
	assert.True(t, gamma.Disqualified)
	assert.Equal(t, "Does not serve the retail sector", gamma.Reason)
	assert.Equal(t, models.Scores{}, gamma.Scores)
	assert.Zero(t, gamma.Total)
	assert.Empty(t, gamma.Reasons)
}

func TestEngine_DisqualifiedProvidersSetCostFloor(t *testing.T) {
	catalog := []*models.Provider{
		testProvider(1, "alpha"),
		testProvider(2, "cheap-but-excluded", func(p *models.Provider) {
			p.Fees[0].Percent = 0.5
			p.SectorRules = []models.SectorRule{{Sector: "retail", Supported: false}}
		}),
	}

	recs := testEngine().Recommend(testProfile(), catalog, nil)

	require.Len(t, recs, 1)
	assert.Less(t, recs[0].Scores.Cost, 100.0)
}

func TestEngine_EmptyResults(t *testing.T) {
	engine := testEngine()

	assert.Empty(t, engine.Recommend(testProfile(), nil, nil))

	onlyExcluded := []*models.Provider{
		testProvider(1, "alpha", func(p *models.Provider) {
			p.SectorRules = []models.SectorRule{{Sector: "retail", Supported: false}}
		}),
	}
	recs := engine.Recommend(testProfile(), onlyExcluded, nil)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestEngine_MandatoryNeedsExclude(t *testing.T) {
	profile := testProfile(func(p *models.MerchantProfile) {
		p.Needs = models.NewNeeds(models.NeedRecurring, models.NeedBNPL)
	})
	catalog := []*models.Provider{
		testProvider(1, "no-recurring", func(p *models.Provider) {
			for i := range p.Methods {
				p.Methods[i].SupportsRecurring = false
			}
		}),
		testProvider(2, "no-bnpl", func(p *models.Provider) { p.BNPL = nil }),
		testProvider(3, "complete", func(p *models.Provider) { p.Fees[0].Percent = 2 }),
	}

	recs := testEngine().Recommend(profile, catalog, nil)

	assert.Equal(t, []string{"complete"}, slugs(recs))
}

func TestEngine_FullySuitedCheapestRanksFirst(t *testing.T) {
	profile := testProfile(func(p *models.MerchantProfile) {
		p.Needs = models.NewNeeds(models.NeedRecurring, models.NeedApplePay, models.NeedTokenization)
	})
	catalog := []*models.Provider{
		testProvider(1, "patchy", func(p *models.Provider) {
			p.Wallets = p.Wallets[1:]
			p.Reviews = []models.ReviewAggregate{{RatingAvg: 5, RatingMax: 5, RatingCount: 50000}}
		}),
		testProvider(2, "slow", func(p *models.Provider) {
			p.ActivationDaysMax = 30
			p.SettlementDaysMin = 7
		}),
		testProvider(3, "best"),
	}

	recs := testEngine().Recommend(profile, catalog, nil)

	require.NotEmpty(t, recs)
	assert.Equal(t, "best", recs[0].Slug)
	assert.Equal(t, 100.0, recs[0].Scores.Cost)
}

func TestEngine_RollingReserveLowersRiskAndTotal(t *testing.T) {
	catalog := []*models.Provider{
		testProvider(1, "plain"),
		testProvider(2, "reserve", func(p *models.Provider) { p.RollingReservePercent = 5 }),
	}

	recs := testEngine().Recommend(testProfile(), catalog, nil)

	require.Len(t, recs, 2)
	plain, reserve := recs[0], recs[1]
	assert.Equal(t, "plain", plain.Slug)
	assert.Less(t, reserve.Scores.Risk, plain.Scores.Risk)
	assert.Less(t, reserve.Total, plain.Total)
	assert.Contains(t, reserve.Caveats, "Holds a rolling reserve of 5.0%")
}

func TestEngine_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultSettings(), WithClock(func() time.Time { return testNow }))
	profile := testProfile(func(p *models.MerchantProfile) { p.RefundsRate = 3 })

	var outputs [][]byte
	for range 5 {
		recs := engine.Recommend(profile, testCatalog(), models.DefaultWeights())
		data, err := json.Marshal(recs)
		require.NoError(t, err)
		outputs = append(outputs, data)
	}

	for _, out := range outputs[1:] {
		assert.Equal(t, outputs[0], out)
	}
}

func TestEngine_DoesNotMutateInputs(t *testing.T) {
	profile := testProfile()
	catalog := testCatalog()[:3]

	before, err := json.Marshal(struct {
		Profile *models.MerchantProfile
		Catalog []*models.Provider
	}{profile, catalog})
	require.NoError(t, err)

	testEngine().Recommend(profile, catalog, nil)

	after, err := json.Marshal(struct {
		Profile *models.MerchantProfile
		Catalog []*models.Provider
	}{profile, catalog})
	require.NoError(t, err)

	assert.JSONEq(t, string(before), string(after))
}

func TestEngine_TiesKeepCatalogOrder(t *testing.T) {
	catalog := []*models.Provider{
		testProvider(1, "first"),
		testProvider(2, "second"),
		testProvider(3, "third"),
	}

	recs := testEngine().Recommend(testProfile(), catalog, nil)

	assert.Equal(t, []string{"first", "second", "third"}, slugs(recs))
}

func TestEngine_LegacyWeights(t *testing.T) {
	recs := testEngine().Recommend(testProfile(), testCatalog(),
		models.LegacyWeights{Cost: 30, Fit: 20, Ops: 15, Risk: 15})

	defaults := testEngine().Recommend(testProfile(), testCatalog(), nil)

	require.Len(t, recs, len(defaults))
	for i := range recs {
		assert.Equal(t, defaults[i].Total, recs[i].Total)
	}
}

func TestEngine_Freshness(t *testing.T) {
	catalog := []*models.Provider{
		testProvider(1, "current"),
		testProvider(2, "stale", func(p *models.Provider) {
			p.LastVerifiedAt = timePtr(testNow.Add(-120 * 24 * time.Hour))
		}),
		testProvider(3, "unverified", func(p *models.Provider) { p.LastVerifiedAt = nil }),
	}

	evaluations := testEngine().Evaluate(testProfile(), catalog, nil)
	require.Len(t, evaluations, 3)

	assert.Equal(t, models.FreshnessCurrent, evaluations[0].Freshness)
	assert.NotContains(t, evaluations[0].Caveats, "Provider data has not been verified")

	assert.Equal(t, models.FreshnessStale, evaluations[1].Freshness)
	assert.Contains(t, evaluations[1].Caveats, "Provider data was last verified 120 days ago")

	assert.Equal(t, models.FreshnessUnknown, evaluations[2].Freshness)
	assert.Contains(t, evaluations[2].Caveats, "Provider data has not been verified")
}

func TestEngine_Messages(t *testing.T) {
	profile := testProfile(func(p *models.MerchantProfile) {
		p.PaymentMix = models.PaymentMix{
			models.PaymentMethodMada:   90,
			models.PaymentMethodSTCPay: 10,
		}
	})

	recs := testEngine().Recommend(profile, []*models.Provider{testProvider(1, "alpha")}, nil)
	require.Len(t, recs, 1)

	assert.Equal(t, []string{
		"Among the lowest estimated monthly costs",
		"Covers your operational needs",
		"Strong onboarding, support and documentation",
		"Low risk profile with no reserve holds",
		"Activation within 3 days",
		"Settlement from 1 day(s)",
		"Highly rated by merchants",
	}, recs[0].Reasons)

	assert.Equal(t, []string{
		"Does not support stc_pay (10% of your sales)",
		"Pricing is an estimate; confirm final rates with the provider",
	}, recs[0].Caveats)

	profile.Locale = models.LocaleArabic
	arabic := testEngine().Recommend(profile, []*models.Provider{testProvider(1, "alpha")}, nil)
	require.Len(t, arabic, 1)
	assert.Len(t, arabic[0].Reasons, len(recs[0].Reasons))
	assert.Equal(t, "من أقل التكاليف الشهرية المقدرة", arabic[0].Reasons[0])
}

func TestEngine_UnmatchedFeesAreNotCandidates(t *testing.T) {
	catalog := []*models.Provider{
		testProvider(1, "alpha"),
		testProvider(2, "amex-only", func(p *models.Provider) {
			p.Fees = []models.FeeRecord{{Method: models.PaymentMethodAmex, Active: true, Percent: 3}}
		}),
	}

	evaluations := testEngine().Evaluate(testProfile(), catalog, nil)
	require.Len(t, evaluations, 1)
	assert.Equal(t, "alpha", evaluations[0].Provider.Slug)
	assert.NotEmpty(t, evaluations[0].Pricing.Breakdown)
	assert.Equal(t, 100.0, evaluations[0].Scores.Cost, "the only priced provider sets the cost floor")

	recs := testEngine().Recommend(testProfile(), catalog, nil)
	assert.Equal(t, []string{"alpha"}, slugs(recs))
}
