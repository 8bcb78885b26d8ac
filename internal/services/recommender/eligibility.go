package recommender

import (
	"psp-advisor/internal/models"
)

// Eligibility is the outcome of the hard-requirement checks for one provider.
type Eligibility struct {
	Disqualified bool
	Reason       *Note
	Caveats      []Note
}

func disqualify(n Note, caveats []Note) Eligibility {
	return Eligibility{Disqualified: true, Reason: &n, Caveats: caveats}
}

// CheckEligibility runs the disqualification checks in order and stops at the
// first failure:
//  1. an explicit "not supported" rule for the merchant's sector
//  2. an unsupported payment method holding at least DisqualifyShare of the mix
//     (smaller unsupported methods only add a caveat)
//  3. recurring billing required but no enabled method supports it
//  4. buy-now-pay-later required but no BNPL integration
func CheckEligibility(profile *models.MerchantProfile, provider *models.Provider, s Settings) Eligibility {
	if rule, ok := provider.SectorRuleFor(profile.Sector); ok && !rule.Supported {
		return disqualify(note(MsgSectorUnsupported, profile.Sector), nil)
	}

	var caveats []Note
	for _, method := range profile.PaymentMix.Methods() {
		if provider.SupportsMethod(method) {
			continue
		}
		share := profile.PaymentMix[method]
		if share >= s.DisqualifyShare {
			return disqualify(note(MsgMethodUnsupported, string(method), share), caveats)
		}
		caveats = append(caveats, note(MsgMinorMethodUnsupported, string(method), share))
	}

	if profile.Requires(models.NeedRecurring) && !provider.SupportsRecurring() {
		return disqualify(note(MsgRecurringUnsupported), caveats)
	}

	if profile.Requires(models.NeedBNPL) && !provider.HasBNPL() {
		return disqualify(note(MsgBNPLUnsupported), caveats)
	}

	return Eligibility{Caveats: caveats}
}
