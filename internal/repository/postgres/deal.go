package postgres

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/domain/deal"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

type dealRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewDealRepository(db *postgres.DB, logger *logger.Logger) deal.Repository {
	return &dealRepository{db: db, logger: logger}
}

func (r *dealRepository) Create(ctx context.Context, d *deal.Deal) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}
	d.TenantID = types.GetTenantID(ctx)

	query := `
	INSERT INTO deals (
		id, tenant_id, company_id, title, amount, deal_status,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :tenant_id, :company_id, :title, :amount, :deal_status,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, d); err != nil {
		return wrapError(err, "Deal", "Failed to create deal", map[string]interface{}{
			"company_id": d.CompanyID,
		})
	}
	return nil
}

func (r *dealRepository) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}

	query, args := countQuery(ctx, "deals", "deal_status", "", filter)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, wrapError(err, "Deal", "Failed to count deals", map[string]interface{}{
			"company_id": filter.CompanyID,
		})
	}
	return count, nil
}
