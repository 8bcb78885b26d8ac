package recommender

import (
	"time"

	"psp-advisor/internal/models"
)

const (
	goodScore      = 80
	goodCostScore  = 90
	cautionScore   = 50
	lowRiskScore   = 90
	fastOnboarding = 100
	slowOnboarding = 40
	slowSettlement = 40
)

type explanation struct {
	reasons   []Note
	caveats   []Note
	freshness models.Freshness
}

// explain maps a scorecard to reason and caveat notes. It runs after the numeric
// scoring and never changes a score.
func explain(
	profile *models.MerchantProfile,
	provider *models.Provider,
	card Scorecard,
	eligibilityCaveats []Note,
	s Settings,
	now time.Time,
) explanation {
	sc := card.Scores
	var reasons []Note
	caveats := append([]Note(nil), eligibilityCaveats...)

	switch {
	case sc.Cost >= goodCostScore:
		reasons = append(reasons, note(MsgCostCompetitive))
	case sc.Cost < cautionScore:
		caveats = append(caveats, note(MsgCostHigh))
	}

	switch {
	case sc.Fit >= goodScore:
		reasons = append(reasons, note(MsgFitStrong))
	case sc.Fit < cautionScore:
		caveats = append(caveats, note(MsgFitWeak))
	}

	switch {
	case sc.Operations >= goodScore:
		reasons = append(reasons, note(MsgOpsStrong))
	case sc.Operations < cautionScore:
		caveats = append(caveats, note(MsgOpsWeak))
	}

	if sc.Risk >= lowRiskScore {
		reasons = append(reasons, note(MsgLowRisk))
	}
	if card.Risk.Has(RiskHighChargebackFee) {
		caveats = append(caveats, note(MsgHighChargebackFee, s.HighChargebackFee))
	}
	if card.Risk.Has(RiskNoFraudPrevention) {
		caveats = append(caveats, note(MsgNoFraudPrevention, profile.ChargebacksRate))
	}
	if card.Risk.Has(RiskRollingReserve) {
		caveats = append(caveats, note(MsgRollingReserve, provider.RollingReservePercent))
	}

	switch sc.Onboarding {
	case fastOnboarding:
		reasons = append(reasons, note(MsgFastOnboarding, provider.ActivationDaysMax))
	case slowOnboarding:
		caveats = append(caveats, note(MsgSlowOnboarding, provider.ActivationDaysMax))
	}

	switch {
	case sc.Settlement >= goodScore:
		reasons = append(reasons, note(MsgFastSettlement, provider.SettlementDaysMin))
	case sc.Settlement == slowSettlement:
		caveats = append(caveats, note(MsgSlowSettlement, provider.SettlementDaysMin))
	}

	if profile.WantsPlatformIntegration() {
		switch {
		case sc.Integration >= 100:
			reasons = append(reasons, note(MsgPlatformIntegrated))
		case sc.Integration < cautionScore:
			caveats = append(caveats, note(MsgPlatformMissing))
		}
	}

	if sc.PaymentMatch >= 100 && len(profile.PaymentMix.Methods()) > 0 {
		reasons = append(reasons, note(MsgAllMethodsSupported))
	}

	switch {
	case sc.Rating >= goodScore:
		reasons = append(reasons, note(MsgHighlyRated))
	case sc.Rating < cautionScore:
		caveats = append(caveats, note(MsgLowRating))
	}

	caveats = append(caveats, note(MsgEstimateOnly))

	freshness, freshnessNote := checkFreshness(provider, s.StaleAfter, now)
	if freshnessNote != nil {
		caveats = append(caveats, *freshnessNote)
	}

	return explanation{
		reasons:   reasons,
		caveats:   caveats,
		freshness: freshness,
	}
}

// checkFreshness labels the provider's data by its last verification time.
func checkFreshness(provider *models.Provider, staleAfter time.Duration, now time.Time) (models.Freshness, *Note) {
	if provider.LastVerifiedAt == nil {
		n := note(MsgDataUnverified)
		return models.FreshnessUnknown, &n
	}
	age := now.Sub(*provider.LastVerifiedAt)
	if age > staleAfter {
		n := note(MsgDataStale, int(age/(24*time.Hour)))
		return models.FreshnessStale, &n
	}
	return models.FreshnessCurrent, nil
}
