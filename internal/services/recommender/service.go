package recommender

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"psp-advisor/internal/models"
	"psp-advisor/internal/utils"
)

// Service errors
var (
	ErrCatalogUnavailable = errors.New("provider catalog unavailable")
	ErrWeightsUnavailable = errors.New("scoring weights unavailable")
)

// CatalogSource supplies the provider catalog.
type CatalogSource interface {
	GetCatalog(ctx context.Context) ([]*models.Provider, error)
}

// WeightsSource supplies the administrator's weight configuration.
// A nil config with a nil error means none is stored.
type WeightsSource interface {
	GetWeights(ctx context.Context) (models.WeightConfig, error)
}

// ReportSink stores a finished run and returns a link to it.
type ReportSink interface {
	SaveReport(ctx context.Context, run *models.RecommendationRun) (string, error)
}

// LeadNotifier hands a finished run to the sales team.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, profile *models.MerchantProfile, run *models.RecommendationRun) error
}

// Service loads the catalog and weights, runs the engine, and hands the result to
// the optional report and lead collaborators.
type Service struct {
	engine   *Engine
	catalog  CatalogSource
	weights  WeightsSource
	reports  ReportSink
	notifier LeadNotifier
	now      func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithReportSink stores every run through sink.
func WithReportSink(sink ReportSink) ServiceOption {
	return func(s *Service) {
		s.reports = sink
	}
}

// WithLeadNotifier notifies the lead inbox after every run.
func WithLeadNotifier(n LeadNotifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithServiceClock sets the time stamped on runs.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a recommendation service.
func NewService(engine *Engine, catalog CatalogSource, weights WeightsSource, opts ...ServiceOption) *Service {
	s := &Service{
		engine:  engine,
		catalog: catalog,
		weights: weights,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend runs the engine for one merchant.
func (s *Service) Recommend(ctx context.Context, profile *models.MerchantProfile) (*models.RecommendationRun, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	logger := utils.ForRun(runID)

	catalog, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	weights, err := s.loadWeights(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeightsUnavailable, err)
	}

	logger.Info("Starting recommendation run",
		zap.String("sector", profile.Sector),
		zap.Int("catalog_size", len(catalog)),
		zap.String("weights", string(weights.Kind())),
	)

	evaluations := s.engine.Evaluate(profile, catalog, weights)
	ranked := Rank(evaluations)

	run := &models.RecommendationRun{
		RunID:           runID,
		GeneratedAt:     s.now().UTC(),
		Locale:          profile.Locale,
		CatalogSize:     len(catalog),
		Candidates:      len(evaluations),
		Disqualified:    len(evaluations) - len(ranked),
		Recommendations: ranked,
	}

	for _, ev := range evaluations {
		if ev.Disqualified {
			logger.Debug("Provider disqualified",
				zap.String("provider", ev.Provider.Slug),
				zap.String("reason", ev.Reason),
			)
		}
	}

	if s.reports != nil {
		url, err := s.reports.SaveReport(ctx, run)
		if err != nil {
			logger.Warn("Failed to save recommendation report", zap.Error(err))
		} else {
			run.ReportURL = url
		}
	}

	if s.notifier != nil && len(ranked) > 0 {
		if err := s.notifier.NotifyLead(ctx, profile, run); err != nil {
			logger.Warn("Failed to notify lead inbox", zap.Error(err))
		}
	}

	logger.Info("Recommendation run complete",
		zap.Int("candidates", run.Candidates),
		zap.Int("disqualified", run.Disqualified),
		zap.Int("recommended", len(ranked)),
		zap.Duration("processing_time", time.Since(startTime)),
	)

	return run, nil
}

// Weights returns the effective weight configuration.
func (s *Service) Weights(ctx context.Context) (models.WeightConfig, error) {
	return s.loadWeights(ctx)
}

// Catalog returns the provider catalog as the engine would see it.
func (s *Service) Catalog(ctx context.Context) ([]*models.Provider, error) {
	catalog, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return catalog, nil
}

func (s *Service) loadWeights(ctx context.Context) (models.WeightConfig, error) {
	if s.weights == nil {
		return models.DefaultWeights(), nil
	}
	cfg, err := s.weights.GetWeights(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return models.DefaultWeights(), nil
	}
	return cfg, nil
}

// StaticCatalog serves a fixed, already-loaded catalog.
type StaticCatalog []*models.Provider

// GetCatalog implements CatalogSource.
func (c StaticCatalog) GetCatalog(context.Context) ([]*models.Provider, error) {
	return c, nil
}

// StaticWeights serves a fixed weight configuration.
type StaticWeights struct {
	Config models.WeightConfig
}

// GetWeights implements WeightsSource.
func (w StaticWeights) GetWeights(context.Context) (models.WeightConfig, error) {
	return w.Config, nil
}
