package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"psp-advisor/internal/models"
)

// ProviderRepository reads the provider catalog.
type ProviderRepository struct {
	db *DB
}

// NewProviderRepository creates a new provider repository.
func NewProviderRepository(db *DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

const selectActiveProviders = `
	SELECT id, name_ar, name_en, slug,
		activation_days_min, activation_days_max, settlement_days_min, settlement_days_max,
		rolling_reserve_percent, multi_currency, fraud_prevention,
		is_active, last_verified_at, created_at, updated_at
	FROM providers
	WHERE is_active = true
	ORDER BY id`

// childQuery loads one kind of sub-record for a set of providers.
type childQuery struct {
	name string
	sql  string
	scan func(rows pgx.Rows, byID map[int64]*models.Provider) error
}

var childQueries = []childQuery{
	{
		name: "fees",
		sql: `
	SELECT provider_id, id, method, is_active, fee_percent, fee_fixed,
		monthly_fee, setup_fee, refund_fee, chargeback_fee,
		min_fee_per_tx, max_fee_per_tx, cross_border_fee_percent, currency_conversion_fee_percent
	FROM provider_fees
	WHERE provider_id = ANY($1)
	ORDER BY provider_id, id`,
		scan: scanFee,
	},
	{
		name: "methods",
		sql: `
	SELECT provider_id, method, is_enabled, supports_recurring, supports_tokenization
	FROM provider_methods
	WHERE provider_id = ANY($1)
	ORDER BY provider_id, method`,
		scan: scanMethod,
	},
	{
		name: "sector rules",
		sql: `
	SELECT provider_id, sector, is_supported, notes
	FROM provider_sector_rules
	WHERE provider_id = ANY($1)
	ORDER BY provider_id, sector`,
		scan: scanSectorRule,
	},
	{
		name: "integrations",
		sql: `
	SELECT provider_id, platform, is_active
	FROM provider_integrations
	WHERE provider_id = ANY($1)
	ORDER BY provider_id, platform`,
		scan: scanIntegration,
	},
	{
		name: "wallets",
		sql: `
	SELECT provider_id, wallet, is_active
	FROM provider_wallets
	WHERE provider_id = ANY($1)
	ORDER BY provider_id, wallet`,
		scan: scanWallet,
	},
	{
		name: "bnpl",
		sql: `
	SELECT provider_id, partner, is_active
	FROM provider_bnpl
	WHERE provider_id = ANY($1)
	ORDER BY provider_id, partner`,
		scan: scanBNPL,
	},
	{
		name: "reviews",
		sql: `
	SELECT provider_id, platform, rating_avg, rating_max, rating_count
	FROM provider_reviews
	WHERE provider_id = ANY($1)
	ORDER BY provider_id, platform`,
		scan: scanReview,
	},
	{
		name: "ops",
		sql: `
	SELECT provider_id, onboarding_score, support_score, documentation_score
	FROM provider_ops
	WHERE provider_id = ANY($1)`,
		scan: scanOps,
	},
}

// GetCatalog loads every active provider with its fee schedule, capabilities,
// integrations and reviews. It implements recommender.CatalogSource.
func (r *ProviderRepository) GetCatalog(ctx context.Context) ([]*models.Provider, error) {
	rows, err := r.db.QueryContext(ctx, selectActiveProviders)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}

	providers := make([]*models.Provider, 0)
	byID := make(map[int64]*models.Provider)
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providers = append(providers, provider)
		byID[provider.ID] = provider
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read providers: %w", err)
	}

	if len(providers) == 0 {
		return providers, nil
	}

	ids := make([]int64, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}

	for _, q := range childQueries {
		if err := r.loadChildren(ctx, q, ids, byID); err != nil {
			return nil, err
		}
	}

	return providers, nil
}

func (r *ProviderRepository) loadChildren(ctx context.Context, q childQuery, ids []int64, byID map[int64]*models.Provider) error {
	rows, err := r.db.QueryContext(ctx, q.sql, ids)
	if err != nil {
		return fmt.Errorf("failed to query provider %s: %w", q.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := q.scan(rows, byID); err != nil {
			return fmt.Errorf("failed to scan provider %s: %w", q.name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read provider %s: %w", q.name, err)
	}
	return nil
}

// scanProvider scans a providers row.
func scanProvider(rows pgx.Rows) (*models.Provider, error) {
	var p models.Provider
	err := rows.Scan(
		&p.ID,
		&p.NameAR,
		&p.NameEN,
		&p.Slug,
		&p.ActivationDaysMin,
		&p.ActivationDaysMax,
		&p.SettlementDaysMin,
		&p.SettlementDaysMax,
		&p.RollingReservePercent,
		&p.MultiCurrency,
		&p.FraudPrevention,
		&p.IsActive,
		&p.LastVerifiedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanFee(rows pgx.Rows, byID map[int64]*models.Provider) error {
	var providerID int64
	var method string
	var fee models.FeeRecord
	err := rows.Scan(
		&providerID,
		&fee.ID,
		&method,
		&fee.Active,
		&fee.Percent,
		&fee.Fixed,
		&fee.MonthlyFee,
		&fee.SetupFee,
		&fee.RefundFee,
		&fee.ChargebackFee,
		&fee.MinPerTx,
		&fee.MaxPerTx,
		&fee.CrossBorderPercent,
		&fee.CurrencyConversionPercent,
	)
	if err != nil {
		return err
	}
	fee.Method = models.PaymentMethod(method)
	if p, ok := byID[providerID]; ok {
		p.Fees = append(p.Fees, fee)
	}
	return nil
}

func scanMethod(rows pgx.Rows, byID map[int64]*models.Provider) error {
	var providerID int64
	var method string
	var m models.MethodCapability
	if err := rows.Scan(&providerID, &method, &m.Enabled, &m.SupportsRecurring, &m.SupportsTokenization); err != nil {
		return err
	}
	m.Method = models.PaymentMethod(method)
	if p, ok := byID[providerID]; ok {
		p.Methods = append(p.Methods, m)
	}
	return nil
}

func scanSectorRule(rows pgx.Rows, byID map[int64]*models.Provider) error {
	var providerID int64
	var rule models.SectorRule
	if err := rows.Scan(&providerID, &rule.Sector, &rule.Supported, &rule.Notes); err != nil {
		return err
	}
	if p, ok := byID[providerID]; ok {
		p.SectorRules = append(p.SectorRules, rule)
	}
	return nil
}

func scanIntegration(rows pgx.Rows, byID map[int64]*models.Provider) error {
	var providerID int64
	var integration models.PlatformIntegration
	if err := rows.Scan(&providerID, &integration.Platform, &integration.Active); err != nil {
		return err
	}
	if p, ok := byID[providerID]; ok {
		p.Integrations = append(p.Integrations, integration)
	}
	return nil
}

func scanWallet(rows pgx.Rows, byID map[int64]*models.Provider) error {
	var providerID int64
	var wallet string
	var active bool
	if err := rows.Scan(&providerID, &wallet, &active); err != nil {
		return err
	}
	if p, ok := byID[providerID]; ok {
		p.Wallets = append(p.Wallets, models.WalletSupport{Wallet: models.PaymentMethod(wallet), Active: active})
	}
	return nil
}

func scanBNPL(rows pgx.Rows, byID map[int64]*models.Provider) error {
	var providerID int64
	var bnpl models.BNPLIntegration
	if err := rows.Scan(&providerID, &bnpl.Partner, &bnpl.Active); err != nil {
		return err
	}
	if p, ok := byID[providerID]; ok {
		p.BNPL = append(p.BNPL, bnpl)
	}
	return nil
}

func scanReview(rows pgx.Rows, byID map[int64]*models.Provider) error {
	var providerID int64
	var review models.ReviewAggregate
	if err := rows.Scan(&providerID, &review.Platform, &review.RatingAvg, &review.RatingMax, &review.RatingCount); err != nil {
		return err
	}
	if p, ok := byID[providerID]; ok {
		p.Reviews = append(p.Reviews, review)
	}
	return nil
}

func scanOps(rows pgx.Rows, byID map[int64]*models.Provider) error {
	var providerID int64
	var ops models.OpsMetrics
	if err := rows.Scan(&providerID, &ops.Onboarding, &ops.Support, &ops.Documentation); err != nil {
		return err
	}
	if p, ok := byID[providerID]; ok {
		p.Ops = &ops
	}
	return nil
}
