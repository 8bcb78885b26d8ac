package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psp-advisor/internal/models"
)

const catalogYAML = `
exported_at: 2026-02-01T00:00:00Z
providers:
  - id: 1
    slug: moyasar
    name_en: Moyasar
    is_active: true
    fees:
      - method: mada
        active: true
        fee_percent: 1.5
        min_fee_per_tx: 0.5
    methods:
      - method: mada
        enabled: true
        supports_recurring: true
    ops:
      onboarding: 80
      support: 70
      documentation: 90
  - id: 2
    slug: tap
    name_en: Tap
    is_active: true
`

func TestDecode(t *testing.T) {
	var out map[string]int

	require.NoError(t, Decode("doc.json", []byte(`{"a": 1}`), &out))
	assert.Equal(t, 1, out["a"])

	require.NoError(t, Decode("doc.YML", []byte("b: 2\n"), &out))
	assert.Equal(t, 2, out["b"])

	require.NoError(t, Decode("doc", []byte(`{"c": 3}`), &out), "unknown extensions are JSON")
	assert.Equal(t, 3, out["c"])

	assert.ErrorIs(t, Decode("doc.json", []byte("  \n"), &out), ErrEmptyDocument)
	assert.ErrorContains(t, Decode("doc.yaml", []byte("a: [1"), &out), "failed to parse YAML doc.yaml")
	assert.ErrorContains(t, Decode("doc.json", []byte("{"), &out), "failed to parse JSON doc.json")
}

func TestParseCatalog_YAML(t *testing.T) {
	providers, err := ParseCatalog("providers.yaml", []byte(catalogYAML))
	require.NoError(t, err)
	require.Len(t, providers, 2)

	moyasar := providers[0]
	assert.Equal(t, "moyasar", moyasar.Slug)
	require.Len(t, moyasar.Fees, 1)
	assert.Equal(t, models.PaymentMethodMada, moyasar.Fees[0].Method)
	require.NotNil(t, moyasar.Fees[0].MinPerTx)
	assert.Equal(t, 0.5, *moyasar.Fees[0].MinPerTx)
	assert.Nil(t, moyasar.Fees[0].MaxPerTx)
	require.NotNil(t, moyasar.Ops)
	assert.Equal(t, 70.0, moyasar.Ops.Support)
	assert.Nil(t, providers[1].Ops)
}

func TestParseCatalog_JSON(t *testing.T) {
	providers, err := ParseCatalog("providers.json", []byte(`{"providers":[{"slug":"hyperpay","fees":[{"method":"visa_mc","active":true,"fee_percent":2.6,"fee_fixed":1}]}]}`))
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, 2.6, providers[0].Fees[0].Percent)
	assert.Equal(t, 1.0, providers[0].Fees[0].Fixed)
}

func TestValidateCatalog(t *testing.T) {
	tests := []struct {
		name      string
		providers []*models.Provider
		err       error
	}{
		{"empty", nil, ErrEmptyCatalog},
		{"nil entry", []*models.Provider{{Slug: "a"}, nil}, ErrInvalidProvider},
		{"missing slug", []*models.Provider{{Slug: ""}}, models.ErrEmptyProviderSlug},
		{"duplicate slug", []*models.Provider{{Slug: "a"}, {Slug: "b"}, {Slug: "a"}}, ErrDuplicateSlug},
		{"negative fee", []*models.Provider{{Slug: "a", Fees: []models.FeeRecord{{Method: models.PaymentMethodMada, Percent: -1}}}}, models.ErrNegativeFee},
		{"valid", []*models.Provider{{Slug: "a"}, {Slug: "b"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.providers)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}

	err := ValidateCatalog([]*models.Provider{{Slug: "a"}, {Slug: "b"}, {Slug: "a"}})
	assert.ErrorContains(t, err, `"a" at entries 1 and 3`)
}

func TestParseProfile(t *testing.T) {
	t.Run("defaults locale", func(t *testing.T) {
		profile, err := ParseProfile("merchant.json", []byte(`{"sector":"retail","monthly_gmv":1000,"needs":["bnpl"]}`))
		require.NoError(t, err)

		assert.Equal(t, models.LocaleArabic, profile.Locale)
		assert.True(t, profile.Requires(models.NeedBNPL))
	})

	t.Run("yaml keeps locale", func(t *testing.T) {
		profile, err := ParseProfile("merchant.yaml", []byte("sector: services\nlocale: en\npayment_mix:\n  mada: 100\n"))
		require.NoError(t, err)

		assert.Equal(t, models.LocaleEnglish, profile.Locale)
		assert.Equal(t, 100.0, profile.PaymentMix[models.PaymentMethodMada])
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseProfile("merchant.json", []byte(`{"sector":"retail","tx_count":-1}`))
		assert.ErrorIs(t, err, models.ErrInvalidTxCount)

		_, err = ParseProfile("merchant.json", []byte(`{"sector":"retail","locale":"fr"}`))
		assert.ErrorIs(t, err, models.ErrInvalidLocale)
	})
}
