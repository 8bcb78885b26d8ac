package recommender

import (
	"psp-advisor/internal/models"
)

// fixedFees are the per-provider charges that apply once regardless of method.
type fixedFees struct {
	monthly            float64
	setup              float64
	refund             float64
	chargeback         float64
	crossBorderPercent float64
	conversionPercent  float64
}

// collectFixedFees takes the largest declared value of each fixed charge across
// the active fee records for the merchant's methods; only one of each logically applies.
func collectFixedFees(provider *models.Provider, methods []models.PaymentMethod) fixedFees {
	var f fixedFees
	for _, fee := range provider.MatchingFees(methods) {
		f.monthly = max(f.monthly, fee.MonthlyFee)
		f.setup = max(f.setup, fee.SetupFee)
		f.refund = max(f.refund, fee.RefundFee)
		f.chargeback = max(f.chargeback, fee.ChargebackFee)
		if fee.CrossBorderPercent != nil {
			f.crossBorderPercent = max(f.crossBorderPercent, *fee.CrossBorderPercent)
		}
		if fee.CurrencyConversionPercent != nil {
			f.conversionPercent = max(f.conversionPercent, *fee.CurrencyConversionPercent)
		}
	}
	return f
}

// CalculatePricing estimates the provider's monthly cost for the merchant.
func CalculatePricing(profile *models.MerchantProfile, provider *models.Provider, s Settings) models.PricingResult {
	result := models.PricingResult{
		Breakdown: make([]models.MethodCost, 0, len(profile.PaymentMix)),
	}

	methods := profile.PaymentMix.Methods()
	methodTotal := 0.0
	for _, method := range methods {
		fee, ok := provider.FeeFor(method)
		if !ok {
			continue
		}

		share := profile.PaymentMix[method]
		txCount := roundCount(profile.TxCount, share)
		volume := profile.MonthlyGMV * share / 100

		avgTicket := 0.0
		if txCount > 0 {
			avgTicket = volume / float64(txCount)
		}

		perTx := ClampFee(avgTicket*fee.Percent/100+fee.Fixed, fee.MinPerTx, fee.MaxPerTx)
		cost := perTx * float64(txCount)
		methodTotal += cost

		result.Breakdown = append(result.Breakdown, models.MethodCost{
			Method:     method,
			TxCount:    txCount,
			Volume:     roundMoney(volume),
			FeeAmount:  roundMoney(cost),
			FeePercent: fee.Percent,
			FeeFixed:   fee.Fixed,
		})
	}

	fixed := collectFixedFees(provider, methods)

	refundCount := float64(roundCount(profile.TxCount, profile.RefundsRate))
	chargebackCount := float64(roundCount(profile.TxCount, profile.ChargebacksRate))

	refundCost := refundCount * fixed.refund
	chargebackCost := chargebackCount * fixed.chargeback
	disputes := refundCost + chargebackCost

	var crossBorderCost, conversionCost float64
	if profile.Requires(models.NeedMultiCurrency) || profile.Requires(models.NeedInternational) {
		internationalVolume := profile.MonthlyGMV * s.InternationalShare / 100
		crossBorderCost = internationalVolume * fixed.crossBorderPercent / 100
		conversionCost = internationalVolume * fixed.conversionPercent / 100
	}

	common := methodTotal + fixed.monthly + crossBorderCost + conversionCost
	base := common + disputes
	vat := base * s.VATPercent / 100

	result.CostMin = roundMoney(common + disputes*s.VarianceLow)
	result.CostMax = roundMoney(common + disputes*s.VarianceHigh)
	result.MonthlyFee = roundMoney(fixed.monthly)
	result.SetupFee = roundMoney(fixed.setup)
	result.RefundCost = roundMoney(refundCost)
	result.ChargebackCost = roundMoney(chargebackCost)
	result.CrossBorderCost = roundMoney(crossBorderCost)
	result.CurrencyConversionCost = roundMoney(conversionCost)
	result.VATAmount = roundMoney(vat)
	result.CostWithVAT = roundMoney(base + vat)

	return result
}
