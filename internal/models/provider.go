// Package models defines the data structures for the payment provider advisor.
package models

import (
	"strings"
	"time"
)

// FeeRecord is one entry of a provider's fee schedule, keyed by payment method.
type FeeRecord struct {
	ID            int64         `json:"id" db:"id" yaml:"id"`
	Method        PaymentMethod `json:"method" db:"method" yaml:"method"`
	Active        bool          `json:"active" db:"is_active" yaml:"active"`
	Percent       float64       `json:"fee_percent" db:"fee_percent" yaml:"fee_percent"`
	Fixed         float64       `json:"fee_fixed" db:"fee_fixed" yaml:"fee_fixed"`
	MonthlyFee    float64       `json:"monthly_fee" db:"monthly_fee" yaml:"monthly_fee"`
	SetupFee      float64       `json:"setup_fee" db:"setup_fee" yaml:"setup_fee"`
	RefundFee     float64       `json:"refund_fee" db:"refund_fee" yaml:"refund_fee"`
	ChargebackFee float64       `json:"chargeback_fee" db:"chargeback_fee" yaml:"chargeback_fee"`

	// Per-transaction caps; nil means the provider declared no cap.
	MinPerTx *float64 `json:"min_fee_per_tx,omitempty" db:"min_fee_per_tx" yaml:"min_fee_per_tx,omitempty"`
	MaxPerTx *float64 `json:"max_fee_per_tx,omitempty" db:"max_fee_per_tx" yaml:"max_fee_per_tx,omitempty"`

	CrossBorderPercent        *float64 `json:"cross_border_fee_percent,omitempty" db:"cross_border_fee_percent" yaml:"cross_border_fee_percent,omitempty"`
	CurrencyConversionPercent *float64 `json:"currency_conversion_fee_percent,omitempty" db:"currency_conversion_fee_percent" yaml:"currency_conversion_fee_percent,omitempty"`
}

// MethodCapability states whether a provider accepts a method and what it can do with it.
type MethodCapability struct {
	Method               PaymentMethod `json:"method" db:"method" yaml:"method"`
	Enabled              bool          `json:"enabled" db:"is_enabled" yaml:"enabled"`
	SupportsRecurring    bool          `json:"supports_recurring" db:"supports_recurring" yaml:"supports_recurring"`
	SupportsTokenization bool          `json:"supports_tokenization" db:"supports_tokenization" yaml:"supports_tokenization"`
}

// SectorRule records whether a provider serves a merchant sector.
type SectorRule struct {
	Sector    string `json:"sector" db:"sector" yaml:"sector"`
	Supported bool   `json:"supported" db:"is_supported" yaml:"supported"`
	Notes     string `json:"notes,omitempty" db:"notes" yaml:"notes,omitempty"`
}

// PlatformIntegration is a shopping-platform plugin or connector.
type PlatformIntegration struct {
	Platform string `json:"platform" db:"platform" yaml:"platform"`
	Active   bool   `json:"active" db:"is_active" yaml:"active"`
}

// WalletSupport is a wallet the provider can process.
type WalletSupport struct {
	Wallet PaymentMethod `json:"wallet" db:"wallet" yaml:"wallet"`
	Active bool          `json:"active" db:"is_active" yaml:"active"`
}

// BNPLIntegration is a buy-now-pay-later partner.
type BNPLIntegration struct {
	Partner string `json:"partner" db:"partner" yaml:"partner"`
	Active  bool   `json:"active" db:"is_active" yaml:"active"`
}

// ReviewAggregate is the rating summary from one review platform.
type ReviewAggregate struct {
	Platform    string  `json:"platform" db:"platform" yaml:"platform"`
	RatingAvg   float64 `json:"rating_avg" db:"rating_avg" yaml:"rating_avg"`
	RatingMax   float64 `json:"rating_max" db:"rating_max" yaml:"rating_max"`
	RatingCount int     `json:"rating_count" db:"rating_count" yaml:"rating_count"`
}

// OpsMetrics are editorial quality scores, each 0-100.
type OpsMetrics struct {
	Onboarding    float64 `json:"onboarding" db:"onboarding_score" yaml:"onboarding"`
	Support       float64 `json:"support" db:"support_score" yaml:"support"`
	Documentation float64 `json:"documentation" db:"documentation_score" yaml:"documentation"`
}

// Provider is a payment-service provider from the catalog.
type Provider struct {
	ID     int64  `json:"id" db:"id" yaml:"id"`
	NameAR string `json:"name_ar" db:"name_ar" yaml:"name_ar"`
	NameEN string `json:"name_en" db:"name_en" yaml:"name_en"`
	Slug   string `json:"slug" db:"slug" yaml:"slug"`

	ActivationDaysMin     int     `json:"activation_days_min" db:"activation_days_min" yaml:"activation_days_min"`
	ActivationDaysMax     int     `json:"activation_days_max" db:"activation_days_max" yaml:"activation_days_max"`
	SettlementDaysMin     int     `json:"settlement_days_min" db:"settlement_days_min" yaml:"settlement_days_min"`
	SettlementDaysMax     int     `json:"settlement_days_max" db:"settlement_days_max" yaml:"settlement_days_max"`
	RollingReservePercent float64 `json:"rolling_reserve_percent" db:"rolling_reserve_percent" yaml:"rolling_reserve_percent"`

	MultiCurrency   bool `json:"multi_currency" db:"multi_currency" yaml:"multi_currency"`
	FraudPrevention bool `json:"fraud_prevention" db:"fraud_prevention" yaml:"fraud_prevention"`

	Fees         []FeeRecord           `json:"fees" yaml:"fees"`
	Methods      []MethodCapability    `json:"methods" yaml:"methods"`
	SectorRules  []SectorRule          `json:"sector_rules,omitempty" yaml:"sector_rules,omitempty"`
	Integrations []PlatformIntegration `json:"integrations,omitempty" yaml:"integrations,omitempty"`
	Wallets      []WalletSupport       `json:"wallets,omitempty" yaml:"wallets,omitempty"`
	BNPL         []BNPLIntegration     `json:"bnpl,omitempty" yaml:"bnpl,omitempty"`
	Reviews      []ReviewAggregate     `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	Ops          *OpsMetrics           `json:"ops,omitempty" yaml:"ops,omitempty"`

	IsActive       bool       `json:"is_active" db:"is_active" yaml:"is_active"`
	LastVerifiedAt *time.Time `json:"last_verified_at,omitempty" db:"last_verified_at" yaml:"last_verified_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at" yaml:"-"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at" yaml:"-"`
}

// ProviderSummary is a lightweight view for display purposes.
type ProviderSummary struct {
	ID     int64  `json:"id"`
	NameAR string `json:"name_ar"`
	NameEN string `json:"name_en"`
	Slug   string `json:"slug"`
}

// ToSummary converts a Provider to ProviderSummary.
func (p *Provider) ToSummary() ProviderSummary {
	return ProviderSummary{
		ID:     p.ID,
		NameAR: p.NameAR,
		NameEN: p.NameEN,
		Slug:   p.Slug,
	}
}

// DisplayName returns the provider name for the locale, falling back to the other language.
func (p *Provider) DisplayName(locale Locale) string {
	if locale == LocaleArabic && strings.TrimSpace(p.NameAR) != "" {
		return p.NameAR
	}
	if strings.TrimSpace(p.NameEN) != "" {
		return p.NameEN
	}
	if strings.TrimSpace(p.NameAR) != "" {
		return p.NameAR
	}
	return p.Slug
}

// CatalogSnapshot is the exported form of the catalog, stored in S3 and read by the CLI.
type CatalogSnapshot struct {
	ExportedAt *time.Time  `json:"exported_at,omitempty" yaml:"exported_at,omitempty"`
	Providers  []*Provider `json:"providers" yaml:"providers"`
}
