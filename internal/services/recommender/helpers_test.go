package recommender

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"psp-advisor/internal/models"
	"psp-advisor/internal/utils"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	utils.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

func floatPtr(v float64) *float64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// testProfile creates a merchant profile with default values.
func testProfile(mods ...func(*models.MerchantProfile)) *models.MerchantProfile {
	profile := &models.MerchantProfile{
		Sector:       "retail",
		BusinessType: "online_store",
		MonthlyGMV:   50000,
		TxCount:      500,
		AvgTicket:    100,
		PaymentMix: models.PaymentMix{
			models.PaymentMethodMada:      60,
			models.PaymentMethodVisaMC:    25,
			models.PaymentMethodApplePay:  10,
			models.PaymentMethodGooglePay: 5,
			models.PaymentMethodOther:     0,
		},
		Locale: models.LocaleEnglish,
	}
	for _, mod := range mods {
		mod(profile)
	}
	return profile
}

// testProvider creates a provider that supports the default mix and every need.
func testProvider(id int64, slug string, mods ...func(*models.Provider)) *models.Provider {
	verified := testNow.Add(-10 * 24 * time.Hour)
	provider := &models.Provider{
		ID:                id,
		NameAR:            "مزود " + slug,
		NameEN:            "Provider " + slug,
		Slug:              slug,
		ActivationDaysMin: 1,
		ActivationDaysMax: 3,
		SettlementDaysMin: 1,
		SettlementDaysMax: 2,
		MultiCurrency:     true,
		FraudPrevention:   true,
		Fees: []models.FeeRecord{
			{Method: models.PaymentMethodMada, Active: true, Percent: 1.5},
			{Method: models.PaymentMethodVisaMC, Active: true, Percent: 2.75, Fixed: 1},
		},
		Methods: []models.MethodCapability{
			{Method: models.PaymentMethodMada, Enabled: true, SupportsRecurring: true, SupportsTokenization: true},
			{Method: models.PaymentMethodVisaMC, Enabled: true, SupportsRecurring: true, SupportsTokenization: true},
		},
		Wallets: []models.WalletSupport{
			{Wallet: models.PaymentMethodApplePay, Active: true},
			{Wallet: models.PaymentMethodGooglePay, Active: true},
		},
		Integrations: []models.PlatformIntegration{
			{Platform: "salla", Active: true},
			{Platform: "zid", Active: true},
		},
		BNPL: []models.BNPLIntegration{
			{Partner: "tabby", Active: true},
		},
		Reviews: []models.ReviewAggregate{
			{Platform: "trustpilot", RatingAvg: 4.5, RatingMax: 5, RatingCount: 1000},
		},
		Ops:            &models.OpsMetrics{Onboarding: 90, Support: 90, Documentation: 90},
		IsActive:       true,
		LastVerifiedAt: &verified,
	}
	for _, mod := range mods {
		mod(provider)
	}
	return provider
}

func testEngine() *Engine {
	return NewEngine(DefaultSettings(), WithClock(func() time.Time { return testNow }))
}
