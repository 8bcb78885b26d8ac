package recommender

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundMoney rounds a currency amount to 2 decimal places, half away from zero.
func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ClampFee bounds a per-transaction fee by the provider's optional caps.
// A nil cap is not applied; when both caps are set and min exceeds max, max wins.
func ClampFee(fee float64, min, max *float64) float64 {
	if min != nil && fee < *min {
		fee = *min
	}
	if max != nil && fee > *max {
		fee = *max
	}
	return fee
}

// roundCount allocates a share of a transaction count to the nearest whole transaction.
func roundCount(total int, percent float64) int {
	return int(math.Round(float64(total) * percent / 100))
}

// clampScore bounds a score to [0,100].
func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
