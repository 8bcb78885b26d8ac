package recommender

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"psp-advisor/internal/models"
)

// MessageKey identifies a localized reason, caveat, or disqualification message.
type MessageKey string

// Disqualification reasons.
const (
	MsgSectorUnsupported    MessageKey = "disqualify.sector_unsupported"
	MsgMethodUnsupported    MessageKey = "disqualify.method_unsupported"
	MsgRecurringUnsupported MessageKey = "disqualify.recurring_unsupported"
	MsgBNPLUnsupported      MessageKey = "disqualify.bnpl_unsupported"
)

// Positive reasons.
const (
	MsgCostCompetitive     MessageKey = "reason.cost_competitive"
	MsgFitStrong           MessageKey = "reason.fit_strong"
	MsgOpsStrong           MessageKey = "reason.ops_strong"
	MsgLowRisk             MessageKey = "reason.low_risk"
	MsgFastOnboarding      MessageKey = "reason.fast_onboarding"
	MsgFastSettlement      MessageKey = "reason.fast_settlement"
	MsgPlatformIntegrated  MessageKey = "reason.platform_integrated"
	MsgAllMethodsSupported MessageKey = "reason.all_methods_supported"
	MsgHighlyRated         MessageKey = "reason.highly_rated"
)

// Caveats.
const (
	MsgMinorMethodUnsupported MessageKey = "caveat.minor_method_unsupported"
	MsgCostHigh               MessageKey = "caveat.cost_high"
	MsgFitWeak                MessageKey = "caveat.fit_weak"
	MsgOpsWeak                MessageKey = "caveat.ops_weak"
	MsgHighChargebackFee      MessageKey = "caveat.high_chargeback_fee"
	MsgNoFraudPrevention      MessageKey = "caveat.no_fraud_prevention"
	MsgRollingReserve         MessageKey = "caveat.rolling_reserve"
	MsgSlowOnboarding         MessageKey = "caveat.slow_onboarding"
	MsgSlowSettlement         MessageKey = "caveat.slow_settlement"
	MsgPlatformMissing        MessageKey = "caveat.platform_missing"
	MsgLowRating              MessageKey = "caveat.low_rating"
	MsgEstimateOnly           MessageKey = "caveat.estimate_only"
	MsgDataStale              MessageKey = "caveat.data_stale"
	MsgDataUnverified         MessageKey = "caveat.data_unverified"
)

// Note is an unrendered message: a key plus its format arguments.
type Note struct {
	Key  MessageKey
	Args []any
}

func note(key MessageKey, args ...any) Note {
	return Note{Key: key, Args: args}
}

type translation struct {
	en string
	ar string
}

var translations = map[MessageKey]translation{
	MsgSectorUnsupported: {
		en: "Does not serve the %s sector",
		ar: "لا يخدم قطاع %s",
	},
	MsgMethodUnsupported: {
		en: "Does not support %s, which is %.0f%% of your sales",
		ar: "لا يدعم %s الذي يمثل %.0f%% من مبيعاتك",
	},
	MsgRecurringUnsupported: {
		en: "Does not support recurring billing",
		ar: "لا يدعم الدفع المتكرر",
	},
	MsgBNPLUnsupported: {
		en: "Has no buy-now-pay-later integration",
		ar: "لا يتكامل مع خدمات اشتر الآن وادفع لاحقاً",
	},

	MsgCostCompetitive: {
		en: "Among the lowest estimated monthly costs",
		ar: "من أقل التكاليف الشهرية المقدرة",
	},
	MsgFitStrong: {
		en: "Covers your operational needs",
		ar: "يلبي احتياجاتك التشغيلية",
	},
	MsgOpsStrong: {
		en: "Strong onboarding, support and documentation",
		ar: "تسجيل ودعم وتوثيق بجودة عالية",
	},
	MsgLowRisk: {
		en: "Low risk profile with no reserve holds",
		ar: "مستوى مخاطر منخفض دون احتجاز أموال",
	},
	MsgFastOnboarding: {
		en: "Activation within %d days",
		ar: "التفعيل خلال %d أيام",
	},
	MsgFastSettlement: {
		en: "Settlement from %d day(s)",
		ar: "تسوية خلال %d يوم",
	},
	MsgPlatformIntegrated: {
		en: "Integrates with your e-commerce platform",
		ar: "يتكامل مع منصة متجرك الإلكتروني",
	},
	MsgAllMethodsSupported: {
		en: "Supports all of your payment methods",
		ar: "يدعم جميع وسائل الدفع لديك",
	},
	MsgHighlyRated: {
		en: "Highly rated by merchants",
		ar: "تقييمات عالية من التجار",
	},

	MsgMinorMethodUnsupported: {
		en: "Does not support %s (%.0f%% of your sales)",
		ar: "لا يدعم %s (%.0f%% من مبيعاتك)",
	},
	MsgCostHigh: {
		en: "Estimated cost is well above the cheapest option",
		ar: "التكلفة المقدرة أعلى بكثير من أرخص خيار",
	},
	MsgFitWeak: {
		en: "Misses several of your operational needs",
		ar: "لا يلبي عدداً من احتياجاتك التشغيلية",
	},
	MsgOpsWeak: {
		en: "Onboarding and support quality is below average",
		ar: "جودة التسجيل والدعم أقل من المتوسط",
	},
	MsgHighChargebackFee: {
		en: "Chargeback fee is above %.0f",
		ar: "رسوم الاعتراض على العمليات أعلى من %.0f",
	},
	MsgNoFraudPrevention: {
		en: "No fraud prevention tools for a %.1f%% chargeback rate",
		ar: "لا توجد أدوات لمكافحة الاحتيال مع نسبة اعتراضات %.1f%%",
	},
	MsgRollingReserve: {
		en: "Holds a rolling reserve of %.1f%%",
		ar: "يحتجز احتياطياً دواراً بنسبة %.1f%%",
	},
	MsgSlowOnboarding: {
		en: "Activation can take up to %d days",
		ar: "قد يستغرق التفعيل حتى %d يوماً",
	},
	MsgSlowSettlement: {
		en: "Settlement takes at least %d days",
		ar: "تستغرق التسوية %d أيام على الأقل",
	},
	MsgPlatformMissing: {
		en: "Limited integration with your e-commerce platform",
		ar: "تكامل محدود مع منصة متجرك الإلكتروني",
	},
	MsgLowRating: {
		en: "Below-average merchant ratings",
		ar: "تقييمات التجار أقل من المتوسط",
	},
	MsgEstimateOnly: {
		en: "Pricing is an estimate; confirm final rates with the provider",
		ar: "الأسعار تقديرية؛ يرجى تأكيد الرسوم النهائية مع المزود",
	},
	MsgDataStale: {
		en: "Provider data was last verified %d days ago",
		ar: "آخر تحقق من بيانات المزود قبل %d يوماً",
	},
	MsgDataUnverified: {
		en: "Provider data has not been verified",
		ar: "لم يتم التحقق من بيانات المزود",
	},
}

// Localizer renders notes in Arabic or English.
type Localizer struct {
	catalog *catalog.Builder
}

// NewLocalizer builds the message catalog.
func NewLocalizer() (*Localizer, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, tr := range translations {
		if err := builder.SetString(language.English, string(key), tr.en); err != nil {
			return nil, fmt.Errorf("failed to register %s (en): %w", key, err)
		}
		if err := builder.SetString(language.Arabic, string(key), tr.ar); err != nil {
			return nil, fmt.Errorf("failed to register %s (ar): %w", key, err)
		}
	}
	return &Localizer{catalog: builder}, nil
}

// MustLocalizer is NewLocalizer for package-level construction.
func MustLocalizer() *Localizer {
	l, err := NewLocalizer()
	if err != nil {
		panic(err)
	}
	return l
}

func languageFor(locale models.Locale) language.Tag {
	if locale == models.LocaleArabic {
		return language.Arabic
	}
	return language.English
}

// Render formats the notes for the locale.
func (l *Localizer) Render(locale models.Locale, notes []Note) []string {
	printer := message.NewPrinter(languageFor(locale), message.Catalog(l.catalog))
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, printer.Sprintf(string(n.Key), n.Args...))
	}
	return out
}

// RenderOne formats a single note.
func (l *Localizer) RenderOne(locale models.Locale, n Note) string {
	return l.Render(locale, []Note{n})[0]
}
