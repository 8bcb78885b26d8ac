// Package models defines the data structures for the payment provider advisor.
package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// PaymentMethod is a payment-method key shared by merchant mixes and provider fee schedules.
type PaymentMethod string

const (
	PaymentMethodMada      PaymentMethod = "mada"
	PaymentMethodVisaMC    PaymentMethod = "visa_mc"
	PaymentMethodAmex      PaymentMethod = "amex"
	PaymentMethodApplePay  PaymentMethod = "apple_pay"
	PaymentMethodGooglePay PaymentMethod = "google_pay"
	PaymentMethodSTCPay    PaymentMethod = "stc_pay"
	PaymentMethodBNPL      PaymentMethod = "bnpl"
	PaymentMethodOther     PaymentMethod = "other"
)

// PaymentMix maps a payment method to its percentage share of volume.
// Shares are expected to sum to 100; the engine does not re-check that.
type PaymentMix map[PaymentMethod]float64

// Methods returns the methods with a non-zero share in sorted order.
func (m PaymentMix) Methods() []PaymentMethod {
	methods := make([]PaymentMethod, 0, len(m))
	for method, share := range m {
		if share > 0 {
			methods = append(methods, method)
		}
	}
	slices.Sort(methods)
	return methods
}

// TotalShare sums the non-zero shares.
func (m PaymentMix) TotalShare() float64 {
	total := 0.0
	for _, share := range m {
		if share > 0 {
			total += share
		}
	}
	return total
}

// Locale selects the language of reason and caveat strings.
type Locale string

const (
	LocaleArabic  Locale = "ar"
	LocaleEnglish Locale = "en"

	// DefaultLocale applies when a profile names none.
	DefaultLocale = LocaleArabic
)

// IsValid checks if the locale is supported.
func (l Locale) IsValid() bool {
	return l == LocaleArabic || l == LocaleEnglish
}

// Need is one operational requirement a merchant can declare.
type Need uint8

const (
	NeedRecurring Need = iota
	NeedTokenization
	NeedMultiCurrency
	NeedFastSettlement
	NeedApplePay
	NeedGooglePay
	NeedPlatformIntegration
	NeedBNPL
	NeedInternational

	needCount
)

// AllNeeds returns every known need in declaration order.
func AllNeeds() []Need {
	needs := make([]Need, 0, needCount)
	for n := Need(0); n < needCount; n++ {
		needs = append(needs, n)
	}
	return needs
}

// String returns the wire name of the need.
func (n Need) String() string {
	switch n {
	case NeedRecurring:
		return "recurring"
	case NeedTokenization:
		return "tokenization"
	case NeedMultiCurrency:
		return "multi_currency"
	case NeedFastSettlement:
		return "fast_settlement"
	case NeedApplePay:
		return "apple_pay"
	case NeedGooglePay:
		return "google_pay"
	case NeedPlatformIntegration:
		return "platform_integration"
	case NeedBNPL:
		return "bnpl"
	case NeedInternational:
		return "international"
	}
	return fmt.Sprintf("need(%d)", uint8(n))
}

// ParseNeed converts a wire name into a Need.
func ParseNeed(name string) (Need, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, n := range AllNeeds() {
		if n.String() == normalized {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNeed, name)
}

// Needs is the set of needs a merchant declared.
type Needs uint16

// NewNeeds builds a set from the given needs.
func NewNeeds(needs ...Need) Needs {
	var set Needs
	for _, n := range needs {
		set = set.With(n)
	}
	return set
}

// Has reports whether the need is in the set.
func (s Needs) Has(n Need) bool {
	return s&(1<<n) != 0
}

// With returns a copy of the set including n.
func (s Needs) With(n Need) Needs {
	return s | (1 << n)
}

// List returns the needs in declaration order.
func (s Needs) List() []Need {
	var needs []Need
	for _, n := range AllNeeds() {
		if s.Has(n) {
			needs = append(needs, n)
		}
	}
	return needs
}

// MarshalJSON encodes the set as an array of need names.
func (s Needs) MarshalJSON() ([]byte, error) {
	names := make([]string, 0)
	for _, n := range s.List() {
		names = append(names, n.String())
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes an array of need names.
func (s *Needs) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var set Needs
	for _, name := range names {
		n, err := ParseNeed(name)
		if err != nil {
			return err
		}
		set = set.With(n)
	}
	*s = set
	return nil
}

// UnmarshalYAML decodes a YAML sequence of need names.
func (s *Needs) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var names []string
	if err := unmarshal(&names); err != nil {
		return err
	}
	var set Needs
	for _, name := range names {
		n, err := ParseNeed(name)
		if err != nil {
			return err
		}
		set = set.With(n)
	}
	*s = set
	return nil
}

// MerchantProfile describes the merchant asking for a recommendation.
type MerchantProfile struct {
	Sector          string     `json:"sector" yaml:"sector"`
	BusinessType    string     `json:"business_type" yaml:"business_type"`
	MonthlyGMV      float64    `json:"monthly_gmv" yaml:"monthly_gmv"`
	TxCount         int        `json:"tx_count" yaml:"tx_count"`
	AvgTicket       float64    `json:"avg_ticket" yaml:"avg_ticket"`
	PaymentMix      PaymentMix `json:"payment_mix" yaml:"payment_mix"`
	RefundsRate     float64    `json:"refunds_rate" yaml:"refunds_rate"`
	ChargebacksRate float64    `json:"chargebacks_rate" yaml:"chargebacks_rate"`
	Needs           Needs      `json:"needs" yaml:"needs"`
	Platforms       []string   `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	TargetPlatform  string     `json:"target_platform,omitempty" yaml:"target_platform,omitempty"`
	Locale          Locale     `json:"locale" yaml:"locale"`
}

// Requires reports whether the merchant declared the need.
func (p *MerchantProfile) Requires(n Need) bool {
	return p.Needs.Has(n)
}

// RequestedPlatforms returns the platform list plus the target platform, deduplicated.
func (p *MerchantProfile) RequestedPlatforms() []string {
	seen := make(map[string]bool)
	var platforms []string
	add := func(name string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		platforms = append(platforms, key)
	}
	for _, name := range p.Platforms {
		add(name)
	}
	add(p.TargetPlatform)
	return platforms
}

// WantsPlatformIntegration reports whether any shopping-platform integration was requested.
func (p *MerchantProfile) WantsPlatformIntegration() bool {
	if strings.TrimSpace(p.TargetPlatform) != "" {
		return true
	}
	return p.Requires(NeedPlatformIntegration) && len(p.RequestedPlatforms()) > 0
}
