// Package models defines the data structures for the payment provider advisor.
package models

import (
	"time"
)

// Freshness describes how recently the provider's catalog data was verified.
type Freshness string

const (
	FreshnessCurrent Freshness = "current"
	FreshnessStale   Freshness = "stale"
	FreshnessUnknown Freshness = "unknown"
)

// MethodCost is the cost line for one payment method.
type MethodCost struct {
	Method     PaymentMethod `json:"method"`
	TxCount    int           `json:"tx_count"`
	Volume     float64       `json:"volume"`
	FeeAmount  float64       `json:"fee_amount"`
	FeePercent float64       `json:"fee_percent"`
	FeeFixed   float64       `json:"fee_fixed"`
}

// PricingResult is the monthly cost estimate for one provider.
type PricingResult struct {
	CostMin                float64      `json:"cost_min"`
	CostMax                float64      `json:"cost_max"`
	Breakdown              []MethodCost `json:"breakdown"`
	MonthlyFee             float64      `json:"monthly_fee"`
	SetupFee               float64      `json:"setup_fee"`
	RefundCost             float64      `json:"refund_cost"`
	ChargebackCost         float64      `json:"chargeback_cost"`
	CrossBorderCost        float64      `json:"cross_border_cost"`
	CurrencyConversionCost float64      `json:"currency_conversion_cost"`
	VATAmount              float64      `json:"vat_amount"`
	CostWithVAT            float64      `json:"cost_with_vat"`
}

// Midpoint returns the centre of the cost range.
func (r PricingResult) Midpoint() float64 {
	return (r.CostMin + r.CostMax) / 2
}

// Scores holds the nine component scores, each 0-100.
type Scores struct {
	Cost         float64 `json:"cost"`
	Fit          float64 `json:"fit"`
	Operations   float64 `json:"operations"`
	Risk         float64 `json:"risk"`
	Onboarding   float64 `json:"onboarding"`
	Settlement   float64 `json:"settlement"`
	Integration  float64 `json:"integration"`
	PaymentMatch float64 `json:"payment_match"`
	Rating       float64 `json:"rating"`
}

// Recommendation is one ranked provider in the engine output.
type Recommendation struct {
	ProviderID int64         `json:"provider_id"`
	Slug       string        `json:"slug"`
	NameAR     string        `json:"name_ar"`
	NameEN     string        `json:"name_en"`
	Pricing    PricingResult `json:"pricing"`
	Scores     Scores        `json:"scores"`
	Total      float64       `json:"total"`
	Reasons    []string      `json:"reasons"`
	Caveats    []string      `json:"caveats"`
	Freshness  Freshness     `json:"freshness"`
}

// Evaluation is the outcome for one candidate provider, including disqualified ones.
type Evaluation struct {
	Provider     ProviderSummary `json:"provider"`
	Pricing      PricingResult   `json:"pricing"`
	Disqualified bool            `json:"disqualified"`
	Reason       string          `json:"reason,omitempty"`
	Scores       Scores          `json:"scores"`
	Total        float64         `json:"total"`
	Reasons      []string        `json:"reasons,omitempty"`
	Caveats      []string        `json:"caveats,omitempty"`
	Freshness    Freshness       `json:"freshness,omitempty"`
}

// ToRecommendation converts a scored evaluation into an output record.
func (e *Evaluation) ToRecommendation() Recommendation {
	return Recommendation{
		ProviderID: e.Provider.ID,
		Slug:       e.Provider.Slug,
		NameAR:     e.Provider.NameAR,
		NameEN:     e.Provider.NameEN,
		Pricing:    e.Pricing,
		Scores:     e.Scores,
		Total:      e.Total,
		Reasons:    e.Reasons,
		Caveats:    e.Caveats,
		Freshness:  e.Freshness,
	}
}

// RecommendationRun summarises one invocation of the recommendation service.
type RecommendationRun struct {
	RunID           string           `json:"run_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Locale          Locale           `json:"locale"`
	CatalogSize     int              `json:"catalog_size"`
	Candidates      int              `json:"candidates"`
	Disqualified    int              `json:"disqualified"`
	Recommendations []Recommendation `json:"recommendations"`
	ReportURL       string           `json:"report_url,omitempty"`
}
