package postgres

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/domain/kpi"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
)

type kpiRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewKPIRepository(db *postgres.DB, logger *logger.Logger) kpi.Repository {
	return &kpiRepository{db: db, logger: logger}
}

const kpiColumns = `id, tenant_id, company_id, category, period, date, value,
	previous_value, target_value, details, status,
	created_at, updated_at, created_by, updated_by`

const kpiInsertValues = `(
	:id, :tenant_id, :company_id, :category, :period, :date, :value,
	:previous_value, :target_value, :details, :status,
	:created_at, :updated_at, :created_by, :updated_by
)`

func (r *kpiRepository) Upsert(ctx context.Context, k *kpi.KPI) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}

	span := StartRepositorySpan(ctx, "kpi", "upsert", map[string]interface{}{
		"company_id": k.CompanyID,
		"category":   k.Category,
		"period":     k.Period,
	})
	defer FinishSpan(span)

	k.TenantID = types.GetTenantID(ctx)
	k.Date = types.StartOfDay(k.Date)

	query := `
	INSERT INTO kpis (` + kpiColumns + `)
	VALUES ` + kpiInsertValues + `
	ON CONFLICT (tenant_id, company_id, category, period, date) DO UPDATE SET
		value = EXCLUDED.value,
		previous_value = EXCLUDED.previous_value,
		target_value = COALESCE(EXCLUDED.target_value, kpis.target_value),
		details = EXCLUDED.details,
		updated_at = EXCLUDED.updated_at,
		updated_by = EXCLUDED.updated_by
	RETURNING id, target_value, created_at, created_by`

	querier := r.db.GetQuerier(ctx)
	bound, args, err := querier.BindNamed(query, k)
	if err != nil {
		SetSpanError(span, err)
		return wrapError(err, "KPI", "Failed to prepare KPI upsert", nil)
	}

	var stored struct {
		ID          string              `db:"id"`
		TargetValue decimal.NullDecimal `db:"target_value"`
		CreatedAt   time.Time           `db:"created_at"`
		CreatedBy   string              `db:"created_by"`
	}
	if err := querier.GetContext(ctx, &stored, bound, args...); err != nil {
		SetSpanError(span, err)
		return wrapError(err, "KPI", "Failed to save KPI", map[string]interface{}{
			"company_id": k.CompanyID,
			"category":   k.Category,
			"period":     k.Period,
			"date":       types.FormatDate(k.Date),
		})
	}

	k.ID = stored.ID
	k.TargetValue = stored.TargetValue
	k.CreatedAt = stored.CreatedAt
	k.CreatedBy = stored.CreatedBy

	SetSpanSuccess(span)
	return nil
}

func (r *kpiRepository) CreateMany(ctx context.Context, kpis []*kpi.KPI) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}
	if len(kpis) == 0 {
		return nil
	}

	tenantID := types.GetTenantID(ctx)
	for _, k := range kpis {
		k.TenantID = tenantID
		k.Date = types.StartOfDay(k.Date)
	}

	query := `INSERT INTO kpis (` + kpiColumns + `) VALUES ` + kpiInsertValues

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, kpis); err != nil {
		return wrapError(err, "KPI", "Failed to insert KPIs", map[string]interface{}{
			"company_id": kpis[0].CompanyID,
			"period":     kpis[0].Period,
			"count":      len(kpis),
		})
	}
	return nil
}

func (r *kpiRepository) Get(ctx context.Context, key kpi.Key) (*kpi.KPI, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	query := `
	SELECT ` + kpiColumns + ` FROM kpis
	WHERE tenant_id = $1 AND company_id = $2 AND category = $3 AND period = $4 AND date = $5`

	var k kpi.KPI
	err := r.db.GetQuerier(ctx).GetContext(ctx, &k, query,
		types.GetTenantID(ctx),
		key.CompanyID,
		key.Category,
		key.Period,
		types.StartOfDay(key.Date),
	)
	if err != nil {
		return nil, wrapError(err, "KPI", "Failed to retrieve KPI", map[string]interface{}{
			"company_id": key.CompanyID,
			"category":   key.Category,
			"period":     key.Period,
			"date":       types.FormatDate(key.Date),
		})
	}
	return &k, nil
}

func (r *kpiRepository) GetLatestInWindow(ctx context.Context, companyID string, category types.KPICategory, period types.KPIPeriod, window types.TimeWindow) (*kpi.KPI, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	query := `
	SELECT ` + kpiColumns + ` FROM kpis
	WHERE tenant_id = $1 AND company_id = $2 AND category = $3 AND period = $4 AND date >= $5 AND date < $6
	ORDER BY date DESC, updated_at DESC
	LIMIT 1`

	var k kpi.KPI
	err := r.db.GetQuerier(ctx).GetContext(ctx, &k, query,
		types.GetTenantID(ctx),
		companyID,
		category,
		period,
		window.Start,
		window.Until(),
	)
	if err != nil {
		return nil, wrapError(err, "KPI", "Failed to retrieve KPI", map[string]interface{}{
			"company_id": companyID,
			"category":   category,
			"period":     period,
			"window":     window.String(),
		})
	}
	return &k, nil
}

func (r *kpiRepository) DeleteInWindow(ctx context.Context, companyID string, period types.KPIPeriod, window types.TimeWindow) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}

	query := `
	DELETE FROM kpis
	WHERE tenant_id = $1 AND company_id = $2 AND period = $3 AND date >= $4 AND date < $5`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		types.GetTenantID(ctx),
		companyID,
		period,
		window.Start,
		window.Until(),
	)
	if err != nil {
		return 0, wrapError(err, "KPI", "Failed to clear KPI window", map[string]interface{}{
			"company_id": companyID,
			"period":     period,
			"window":     window.String(),
		})
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, wrapError(err, "KPI", "Failed to clear KPI window", nil)
	}
	return int(deleted), nil
}

func (r *kpiRepository) ListByDate(ctx context.Context, companyID string, period types.KPIPeriod, date time.Time) ([]*kpi.KPI, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	query := `
	SELECT ` + kpiColumns + ` FROM kpis
	WHERE tenant_id = $1 AND company_id = $2 AND period = $3 AND date = $4
	ORDER BY category`

	var kpis []*kpi.KPI
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &kpis, query,
		types.GetTenantID(ctx),
		companyID,
		period,
		types.StartOfDay(date),
	)
	if err != nil {
		return nil, wrapError(err, "KPI", "Failed to list KPIs", map[string]interface{}{
			"company_id": companyID,
			"period":     period,
		})
	}
	return kpis, nil
}

func (r *kpiRepository) Stats(ctx context.Context, companyID string) ([]*kpi.PopulationStat, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	query := `
	SELECT category, period, COUNT(*) AS count, MAX(updated_at) AS last_populated_at
	FROM kpis
	WHERE tenant_id = $1 AND company_id = $2
	GROUP BY category, period
	ORDER BY period, category`

	var stats []*kpi.PopulationStat
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &stats, query, types.GetTenantID(ctx), companyID); err != nil {
		return nil, wrapError(err, "KPI", "Failed to read KPI population stats", map[string]interface{}{
			"company_id": companyID,
		})
	}
	return stats, nil
}
