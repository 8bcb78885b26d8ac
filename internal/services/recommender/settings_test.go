package recommender

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"psp-advisor/internal/config"
)

func TestSettingsFromConfig(t *testing.T) {
	cfg := &config.Config{
		DisqualifyMixShare: 25,
		RefundVarianceLow:  0.8,
		RefundVarianceHigh: 1.2,
		VATPercent:         5,
		InternationalShare: 10,
		HighChargebackFee:  40,
		StaleAfterDays:     30,
		EngineWorkers:      2,
	}

	s := SettingsFromConfig(cfg)

	assert.Equal(t, 25.0, s.DisqualifyShare)
	assert.Equal(t, 0.8, s.VarianceLow)
	assert.Equal(t, 1.2, s.VarianceHigh)
	assert.Equal(t, 5.0, s.VATPercent)
	assert.Equal(t, 10.0, s.InternationalShare)
	assert.Equal(t, 40.0, s.HighChargebackFee)
	assert.Equal(t, 1.0, s.HighChargebackRate)
	assert.Equal(t, 30*24*time.Hour, s.StaleAfter)
	assert.Equal(t, 2, s.Workers)
}

func TestSettingsFromConfig_Fallbacks(t *testing.T) {
	assert.Equal(t, DefaultSettings(), SettingsFromConfig(nil))

	s := SettingsFromConfig(&config.Config{RefundVarianceLow: 1.5, RefundVarianceHigh: 0.5})
	assert.Equal(t, 0.5, s.VarianceLow, "an inverted band is swapped")
	assert.Equal(t, 1.5, s.VarianceHigh)
	assert.Equal(t, 90*24*time.Hour, s.StaleAfter)
	assert.Equal(t, DefaultSettings().Workers, s.Workers)
}

func TestSettingsNormalized(t *testing.T) {
	s := Settings{VarianceLow: -1, VarianceHigh: 2, Workers: 0}.normalized()

	assert.Equal(t, 0.0, s.VarianceLow)
	assert.Equal(t, 2.0, s.VarianceHigh)
	assert.Equal(t, 1, s.Workers)
}
