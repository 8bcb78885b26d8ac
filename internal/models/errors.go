// Package models defines the data structures for the payment provider advisor.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrUnknownNeed       = errors.New("unknown merchant need")
	ErrUnknownWeightKind = errors.New("unknown weight configuration kind")
	ErrNegativeWeight    = errors.New("weight cannot be negative")
	ErrZeroWeights       = errors.New("weights must sum to a positive number")
	ErrEmptySector       = errors.New("sector cannot be empty")
	ErrInvalidLocale     = errors.New("locale must be ar or en")
	ErrInvalidVolume     = errors.New("monthly volume cannot be negative")
	ErrInvalidTxCount    = errors.New("transaction count cannot be negative")
	ErrInvalidRate       = errors.New("refund and chargeback rates must be between 0 and 100")
	ErrInvalidMixShare   = errors.New("payment mix shares must be between 0 and 100")
	ErrEmptyProviderSlug = errors.New("provider slug cannot be empty")
	ErrNegativeFee       = errors.New("fee values cannot be negative")
)

// NormalizeSector converts sector identifiers to the catalog's canonical form.
func NormalizeSector(sector string) string {
	normalized := strings.ToLower(strings.TrimSpace(sector))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	return normalized
}

// ValidateMerchantProfile validates intake data at the API boundary.
// The engine itself trusts its input and never calls this.
func ValidateMerchantProfile(p *MerchantProfile) error {
	if strings.TrimSpace(p.Sector) == "" {
		return ErrEmptySector
	}

	if p.Locale != "" && !p.Locale.IsValid() {
		return ErrInvalidLocale
	}

	if p.MonthlyGMV < 0 {
		return ErrInvalidVolume
	}

	if p.TxCount < 0 {
		return ErrInvalidTxCount
	}

	if p.RefundsRate < 0 || p.RefundsRate > 100 || p.ChargebacksRate < 0 || p.ChargebacksRate > 100 {
		return ErrInvalidRate
	}

	for _, share := range p.PaymentMix {
		if share < 0 || share > 100 {
			return ErrInvalidMixShare
		}
	}

	return nil
}

// ValidateProvider checks the catalog fields the admin tooling must always fill.
func ValidateProvider(p *Provider) error {
	if strings.TrimSpace(p.Slug) == "" {
		return ErrEmptyProviderSlug
	}
	for _, f := range p.Fees {
		if f.Percent < 0 || f.Fixed < 0 || f.MonthlyFee < 0 || f.SetupFee < 0 ||
			f.RefundFee < 0 || f.ChargebackFee < 0 {
			return fmt.Errorf("%w: %s %s", ErrNegativeFee, p.Slug, f.Method)
		}
		for _, v := range []*float64{f.MinPerTx, f.MaxPerTx, f.CrossBorderPercent, f.CurrencyConversionPercent} {
			if v != nil && *v < 0 {
				return fmt.Errorf("%w: %s %s", ErrNegativeFee, p.Slug, f.Method)
			}
		}
	}
	return nil
}
