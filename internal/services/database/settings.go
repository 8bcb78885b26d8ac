package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"psp-advisor/internal/models"
)

// SettingsRepository reads and writes the administrator's scoring weights.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetWeights returns the stored weight configuration, or nil when none is stored.
// It implements recommender.WeightsSource.
func (r *SettingsRepository) GetWeights(ctx context.Context) (models.WeightConfig, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, "SELECT weights FROM scoring_settings WHERE id = 1").Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scoring weights: %w", err)
	}

	cfg, err := models.ParseWeights(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scoring weights: %w", err)
	}
	return cfg, nil
}

// SaveWeights validates and stores a weight configuration.
func (r *SettingsRepository) SaveWeights(ctx context.Context, cfg models.WeightConfig) error {
	if err := cfg.Extended().Validate(); err != nil {
		return err
	}

	raw, err := models.MarshalWeights(cfg)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO scoring_settings (id, weights, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET weights = EXCLUDED.weights, updated_at = NOW()`,
		raw)
	if err != nil {
		return fmt.Errorf("failed to save scoring weights: %w", err)
	}
	return nil
}
