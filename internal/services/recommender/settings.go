// Package recommender ranks payment-service providers for a merchant profile.
//
// The engine is a pure computation over an in-memory catalog: pricing every
// provider, taking the catalog-wide minimum cost, then filtering and scoring each
// candidate against that minimum. Loading the catalog and delivering results are
// the job of Service and its sources.
package recommender

import (
	"runtime"
	"time"

	"psp-advisor/internal/config"
)

// Settings holds the engine's tunable constants.
type Settings struct {
	// DisqualifyShare is the mix share (percent) at or above which an unsupported
	// payment method disqualifies a provider.
	DisqualifyShare float64

	// VarianceLow and VarianceHigh scale refund and chargeback counts for the
	// best-case and worst-case cost.
	VarianceLow  float64
	VarianceHigh float64

	VATPercent         float64
	InternationalShare float64

	HighChargebackFee  float64
	HighChargebackRate float64

	StaleAfter time.Duration
	Workers    int
}

// DefaultSettings returns the production constants.
func DefaultSettings() Settings {
	return Settings{
		DisqualifyShare:    20,
		VarianceLow:        0.5,
		VarianceHigh:       1.5,
		VATPercent:         15,
		InternationalShare: 20,
		HighChargebackFee:  60,
		HighChargebackRate: 1,
		StaleAfter:         90 * 24 * time.Hour,
		Workers:            runtime.NumCPU(),
	}
}

// SettingsFromConfig builds engine settings from application configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	s := DefaultSettings()
	if cfg == nil {
		return s
	}
	s.DisqualifyShare = cfg.DisqualifyMixShare
	s.VarianceLow = cfg.RefundVarianceLow
	s.VarianceHigh = cfg.RefundVarianceHigh
	s.VATPercent = cfg.VATPercent
	s.InternationalShare = cfg.InternationalShare
	s.HighChargebackFee = cfg.HighChargebackFee
	if cfg.StaleAfterDays > 0 {
		s.StaleAfter = cfg.StaleAfter()
	}
	if cfg.EngineWorkers > 0 {
		s.Workers = cfg.EngineWorkers
	}
	return s.normalized()
}

// normalized keeps the variance band ordered so CostMin never exceeds CostMax.
func (s Settings) normalized() Settings {
	if s.VarianceLow < 0 {
		s.VarianceLow = 0
	}
	if s.VarianceHigh < s.VarianceLow {
		s.VarianceLow, s.VarianceHigh = s.VarianceHigh, s.VarianceLow
		if s.VarianceLow < 0 {
			s.VarianceLow = 0
		}
	}
	if s.Workers <= 0 {
		s.Workers = 1
	}
	return s
}
