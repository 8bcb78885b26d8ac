package recommender

import (
	"math"
	"strings"

	"psp-advisor/internal/models"
)

// Fit budget, in points out of 100.
const (
	fitRecurringPoints     = 20
	fitApplePayPoints      = 12
	fitGooglePayPoints     = 8
	fitPlatformPoints      = 20
	fitMultiCurrencyPoints = 15
	fitTokenizationPoints  = 10
	fitBNPLPoints          = 15

	platformPointsEach = 5
)

const (
	defaultOpsScore    = 70
	defaultRatingScore = 50

	riskHighChargebackFeePenalty = 15
	riskNoFraudPreventionPenalty = 20
	riskRollingReservePenalty    = 10
)

// RiskFlags records which risk deductions applied.
type RiskFlags uint8

const (
	RiskHighChargebackFee RiskFlags = 1 << iota
	RiskNoFraudPrevention
	RiskRollingReserve
)

// Has reports whether the flag is set.
func (f RiskFlags) Has(flag RiskFlags) bool {
	return f&flag != 0
}

// Scorecard is the numeric scoring result for one eligible provider.
type Scorecard struct {
	Scores models.Scores
	Total  float64
	Risk   RiskFlags
}

// ScoreProvider computes the nine sub-scores and the weighted total.
// minCostOverall is the lowest cost midpoint across all candidates.
func ScoreProvider(
	profile *models.MerchantProfile,
	provider *models.Provider,
	pricing models.PricingResult,
	minCostOverall float64,
	weights models.ExtendedWeights,
	s Settings,
) Scorecard {
	risk, flags := riskScore(profile, provider, s)

	scores := models.Scores{
		Cost:         costScore(minCostOverall, pricing.Midpoint()),
		Fit:          fitScore(profile, provider),
		Operations:   opsScore(provider),
		Risk:         risk,
		Onboarding:   onboardingScore(provider),
		Settlement:   settlementScore(profile, provider),
		Integration:  integrationScore(profile, provider),
		PaymentMatch: paymentMatchScore(profile, provider),
		Rating:       ratingScore(provider),
	}

	return Scorecard{
		Scores: scores,
		Total:  WeightedTotal(scores, weights),
		Risk:   flags,
	}
}

// WeightedTotal divides the weighted sum by the sum of the weights actually used.
func WeightedTotal(sc models.Scores, w models.ExtendedWeights) float64 {
	sum := w.Sum()
	if sum <= 0 {
		return 0
	}
	total := sc.Cost*w.Cost +
		sc.Fit*w.Fit +
		sc.Operations*w.Ops +
		sc.Risk*w.Risk +
		sc.Onboarding*w.Onboarding +
		sc.Settlement*w.Settlement +
		sc.Integration*w.Integration +
		sc.PaymentMatch*w.PaymentMatch +
		sc.Rating*w.Rating
	return math.Round(clampScore(total/sum)*100) / 100
}

func costScore(minCostOverall, cost float64) float64 {
	if cost <= 0 {
		return 100
	}
	return math.Round(clampScore(minCostOverall / cost * 100))
}

// fitScore distributes a 100-point budget over the merchant's needs. Needs the
// merchant did not ask for earn full credit.
func fitScore(profile *models.MerchantProfile, provider *models.Provider) float64 {
	points := 0.0

	if !profile.Requires(models.NeedRecurring) || provider.SupportsRecurring() {
		points += fitRecurringPoints
	}
	if !profile.Requires(models.NeedApplePay) || provider.SupportsMethod(models.PaymentMethodApplePay) {
		points += fitApplePayPoints
	}
	if !profile.Requires(models.NeedGooglePay) || provider.SupportsMethod(models.PaymentMethodGooglePay) {
		points += fitGooglePayPoints
	}

	points += platformPoints(profile, provider)

	if !profile.Requires(models.NeedMultiCurrency) || provider.MultiCurrency {
		points += fitMultiCurrencyPoints
	}
	if !profile.Requires(models.NeedTokenization) || provider.SupportsTokenization() {
		points += fitTokenizationPoints
	}
	if !profile.Requires(models.NeedBNPL) || provider.HasBNPL() {
		points += fitBNPLPoints
	}

	return clampScore(points)
}

// platformPoints scores shopping-platform coverage out of fitPlatformPoints: 5 per
// integrated platform, or full marks when the single target platform is integrated.
func platformPoints(profile *models.MerchantProfile, provider *models.Provider) float64 {
	if !profile.WantsPlatformIntegration() {
		return fitPlatformPoints
	}
	if target := strings.TrimSpace(profile.TargetPlatform); target != "" && provider.IntegratesWith(target) {
		return fitPlatformPoints
	}

	matched := 0
	for _, platform := range profile.RequestedPlatforms() {
		if provider.IntegratesWith(platform) {
			matched++
		}
	}
	return math.Min(fitPlatformPoints, float64(matched*platformPointsEach))
}

func integrationScore(profile *models.MerchantProfile, provider *models.Provider) float64 {
	return math.Round(platformPoints(profile, provider) / fitPlatformPoints * 100)
}

func opsScore(provider *models.Provider) float64 {
	if provider.Ops == nil {
		return defaultOpsScore
	}
	m := provider.Ops
	return math.Round(clampScore(m.Onboarding*0.4 + m.Support*0.4 + m.Documentation*0.2))
}

func onboardingScore(provider *models.Provider) float64 {
	switch days := provider.ActivationDaysMax; {
	case days <= 3:
		return 100
	case days <= 7:
		return 80
	case days <= 14:
		return 60
	default:
		return 40
	}
}

func settlementScore(profile *models.MerchantProfile, provider *models.Provider) float64 {
	days := provider.SettlementDaysMin
	if profile.Requires(models.NeedFastSettlement) {
		switch {
		case days <= 1:
			return 100
		case days <= 3:
			return 70
		default:
			return 40
		}
	}
	if days <= 5 {
		return 80
	}
	return 60
}

// paymentMatchScore is the share of the merchant's mix the provider supports.
func paymentMatchScore(profile *models.MerchantProfile, provider *models.Provider) float64 {
	total := 0.0
	supported := 0.0
	for _, method := range profile.PaymentMix.Methods() {
		share := profile.PaymentMix[method]
		total += share
		if provider.SupportsMethod(method) {
			supported += share
		}
	}
	if total <= 0 {
		return 100
	}
	return math.Round(clampScore(supported / total * 100))
}

// ratingScore is the mean of normalized ratings, each weighted by
// log10(max(10, count)) so platforms with few ratings count less.
func ratingScore(provider *models.Provider) float64 {
	var weighted, weightSum float64
	for _, r := range provider.Reviews {
		if r.RatingMax <= 0 {
			continue
		}
		normalized := clampScore(r.RatingAvg / r.RatingMax * 100)
		w := math.Log10(math.Max(10, float64(r.RatingCount)))
		weighted += normalized * w
		weightSum += w
	}
	if weightSum == 0 {
		return defaultRatingScore
	}
	return math.Round(weighted / weightSum)
}

func riskScore(profile *models.MerchantProfile, provider *models.Provider, s Settings) (float64, RiskFlags) {
	score := 100.0
	var flags RiskFlags

	for _, fee := range provider.ActiveFees() {
		if fee.ChargebackFee > s.HighChargebackFee {
			score -= riskHighChargebackFeePenalty
			flags |= RiskHighChargebackFee
			break
		}
	}

	if profile.ChargebacksRate > s.HighChargebackRate && !provider.FraudPrevention {
		score -= riskNoFraudPreventionPenalty
		flags |= RiskNoFraudPrevention
	}

	if provider.RollingReservePercent > 0 {
		score -= riskRollingReservePenalty
		flags |= RiskRollingReserve
	}

	return clampScore(score), flags
}
