package models

import (
	"slices"
	"strings"
)

// ActiveFees returns the fee records the provider currently applies.
func (p *Provider) ActiveFees() []FeeRecord {
	fees := make([]FeeRecord, 0, len(p.Fees))
	for _, f := range p.Fees {
		if f.Active {
			fees = append(fees, f)
		}
	}
	return fees
}

// HasFeeFor reports whether any active fee record covers one of the methods.
func (p *Provider) HasFeeFor(methods []PaymentMethod) bool {
	for _, m := range methods {
		if _, ok := p.FeeFor(m); ok {
			return true
		}
	}
	return false
}

// MatchingFees returns the active fee records for the given methods.
func (p *Provider) MatchingFees(methods []PaymentMethod) []FeeRecord {
	fees := make([]FeeRecord, 0, len(methods))
	for _, f := range p.Fees {
		if f.Active && slices.Contains(methods, f.Method) {
			fees = append(fees, f)
		}
	}
	return fees
}

// FeeFor returns the first active fee record for the method.
func (p *Provider) FeeFor(method PaymentMethod) (FeeRecord, bool) {
	for _, f := range p.Fees {
		if f.Active && f.Method == method {
			return f, true
		}
	}
	return FeeRecord{}, false
}

// MethodEnabled reports whether the method is in the provider's enabled list.
func (p *Provider) MethodEnabled(method PaymentMethod) bool {
	for _, m := range p.Methods {
		if m.Enabled && m.Method == method {
			return true
		}
	}
	return false
}

// WalletActive reports whether the provider supports the wallet.
func (p *Provider) WalletActive(wallet PaymentMethod) bool {
	for _, w := range p.Wallets {
		if w.Active && w.Wallet == wallet {
			return true
		}
	}
	return false
}

// SupportsMethod reports whether the provider accepts the method, either as an
// enabled payment method or through wallet support.
func (p *Provider) SupportsMethod(method PaymentMethod) bool {
	return p.MethodEnabled(method) || p.WalletActive(method)
}

// SupportsRecurring reports whether any enabled method supports recurring billing.
func (p *Provider) SupportsRecurring() bool {
	for _, m := range p.Methods {
		if m.Enabled && m.SupportsRecurring {
			return true
		}
	}
	return false
}

// SupportsTokenization reports whether any enabled method supports card tokenization.
func (p *Provider) SupportsTokenization() bool {
	for _, m := range p.Methods {
		if m.Enabled && m.SupportsTokenization {
			return true
		}
	}
	return false
}

// HasBNPL reports whether the provider has an active buy-now-pay-later integration.
func (p *Provider) HasBNPL() bool {
	for _, b := range p.BNPL {
		if b.Active {
			return true
		}
	}
	return false
}

// IntegratesWith reports whether the provider has an active integration for the platform.
func (p *Provider) IntegratesWith(platform string) bool {
	name := strings.ToLower(strings.TrimSpace(platform))
	if name == "" {
		return false
	}
	for _, i := range p.Integrations {
		if i.Active && strings.ToLower(strings.TrimSpace(i.Platform)) == name {
			return true
		}
	}
	return false
}

// SectorRuleFor returns the explicit rule for the sector, if one exists.
func (p *Provider) SectorRuleFor(sector string) (SectorRule, bool) {
	name := NormalizeSector(sector)
	for _, r := range p.SectorRules {
		if NormalizeSector(r.Sector) == name {
			return r, true
		}
	}
	return SectorRule{}, false
}
