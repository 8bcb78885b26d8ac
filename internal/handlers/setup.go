package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"psp-advisor/internal/config"
	"psp-advisor/internal/services/database"
	"psp-advisor/internal/services/recommender"
	s3service "psp-advisor/internal/services/s3"
	"psp-advisor/internal/services/ses"
	"psp-advisor/internal/utils"
)

// Dependencies are the collaborators shared by the Lambda handlers and the local server.
type Dependencies struct {
	DB      *database.DB
	Service *recommender.Service
}

// Close releases the database pool, if any.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

// NewDependencies wires the recommendation service from configuration. The catalog
// and weights come from PostgreSQL when it is configured, otherwise from the S3
// snapshot with default weights. Reports and lead emails are enabled when their
// settings are present.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	logger := utils.GetLogger()
	deps := &Dependencies{}

	var (
		catalog recommender.CatalogSource
		weights recommender.WeightsSource
		opts    []recommender.ServiceOption
	)

	if cfg.DatabaseConfigured() {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		deps.DB = db
		catalog = database.NewProviderRepository(db)
		weights = database.NewSettingsRepository(db)
		logger.Info("Serving catalog from database", zap.String("host", cfg.DBHost))
	}

	var store *s3service.Service
	if cfg.S3Bucket != "" {
		svc, err := s3service.NewService(ctx, cfg)
		if err != nil {
			deps.Close()
			return nil, err
		}
		store = svc
		opts = append(opts, recommender.WithReportSink(store))
	}

	if catalog == nil {
		if store == nil {
			return nil, fmt.Errorf("no catalog source: configure a database or S3_BUCKET")
		}
		catalog = store
		logger.Info("Serving catalog from snapshot",
			zap.String("bucket", cfg.S3Bucket),
			zap.String("key", cfg.CatalogSnapshotKey),
		)
	}

	if cfg.SESSenderEmail != "" && cfg.LeadInboxEmail != "" {
		mailer, err := ses.NewService(ctx, cfg)
		if err != nil {
			deps.Close()
			return nil, err
		}
		opts = append(opts, recommender.WithLeadNotifier(mailer))
	}

	engine := recommender.NewEngine(recommender.SettingsFromConfig(cfg))
	deps.Service = recommender.NewService(engine, catalog, weights, opts...)

	return deps, nil
}
