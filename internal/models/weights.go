// Package models defines the data structures for the payment provider advisor.
package models

import (
	"encoding/json"
	"fmt"
)

// WeightKind tags the stored form of a weight configuration.
type WeightKind string

const (
	WeightKindLegacy   WeightKind = "legacy"
	WeightKindExtended WeightKind = "extended"
)

// WeightConfig is either LegacyWeights or ExtendedWeights.
type WeightConfig interface {
	Kind() WeightKind
	Extended() ExtendedWeights
}

// LegacyWeights is the original four-factor weight vector.
type LegacyWeights struct {
	Cost float64 `json:"cost"`
	Fit  float64 `json:"fit"`
	Ops  float64 `json:"ops"`
	Risk float64 `json:"risk"`
}

// Kind implements WeightConfig.
func (LegacyWeights) Kind() WeightKind { return WeightKindLegacy }

// Extended converts the legacy vector, taking the five newer factors from DefaultWeights.
func (w LegacyWeights) Extended() ExtendedWeights {
	ext := DefaultWeights()
	ext.Cost = w.Cost
	ext.Fit = w.Fit
	ext.Ops = w.Ops
	ext.Risk = w.Risk
	return ext
}

// ExtendedWeights is the nine-factor weight vector.
type ExtendedWeights struct {
	Cost         float64 `json:"cost"`
	Fit          float64 `json:"fit"`
	Ops          float64 `json:"ops"`
	Risk         float64 `json:"risk"`
	Onboarding   float64 `json:"onboarding"`
	Settlement   float64 `json:"settlement"`
	Integration  float64 `json:"integration"`
	PaymentMatch float64 `json:"payment_match"`
	Rating       float64 `json:"rating"`
}

// Kind implements WeightConfig.
func (ExtendedWeights) Kind() WeightKind { return WeightKindExtended }

// Extended implements WeightConfig.
func (w ExtendedWeights) Extended() ExtendedWeights { return w }

// DefaultWeights returns the default nine-factor vector. It sums to 126, so totals
// are normalised by the actual sum rather than by 100.
func DefaultWeights() ExtendedWeights {
	return ExtendedWeights{
		Cost:         30,
		Fit:          20,
		Ops:          15,
		Risk:         15,
		Onboarding:   8,
		Settlement:   8,
		Integration:  10,
		PaymentMatch: 10,
		Rating:       10,
	}
}

// Sum returns the total of all weights.
func (w ExtendedWeights) Sum() float64 {
	return w.Cost + w.Fit + w.Ops + w.Risk + w.Onboarding +
		w.Settlement + w.Integration + w.PaymentMatch + w.Rating
}

// Validate checks that no weight is negative and that the vector is not all zero.
func (w ExtendedWeights) Validate() error {
	weights := map[string]float64{
		"cost":          w.Cost,
		"fit":           w.Fit,
		"ops":           w.Ops,
		"risk":          w.Risk,
		"onboarding":    w.Onboarding,
		"settlement":    w.Settlement,
		"integration":   w.Integration,
		"payment_match": w.PaymentMatch,
		"rating":        w.Rating,
	}
	for name, v := range weights {
		if v < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeWeight, name, v)
		}
	}
	if w.Sum() <= 0 {
		return ErrZeroWeights
	}
	return nil
}

// weightEnvelope is the persisted form written by the settings screen.
type weightEnvelope struct {
	Kind    WeightKind      `json:"kind"`
	Weights json.RawMessage `json:"weights"`
}

// ParseWeights decodes a stored weight configuration.
func ParseWeights(data []byte) (WeightConfig, error) {
	var env weightEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode weight envelope: %w", err)
	}

	var cfg WeightConfig
	switch env.Kind {
	case WeightKindLegacy:
		var w LegacyWeights
		if err := json.Unmarshal(env.Weights, &w); err != nil {
			return nil, fmt.Errorf("failed to decode legacy weights: %w", err)
		}
		cfg = w
	case WeightKindExtended:
		var w ExtendedWeights
		if err := json.Unmarshal(env.Weights, &w); err != nil {
			return nil, fmt.Errorf("failed to decode extended weights: %w", err)
		}
		cfg = w
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWeightKind, env.Kind)
	}

	if err := cfg.Extended().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MarshalWeights encodes a configuration into its stored envelope.
func MarshalWeights(cfg WeightConfig) ([]byte, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weights: %w", err)
	}
	return json.Marshal(weightEnvelope{Kind: cfg.Kind(), Weights: raw})
}
