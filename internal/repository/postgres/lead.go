package postgres

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/domain/lead"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

type leadRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewLeadRepository(db *postgres.DB, logger *logger.Logger) lead.Repository {
	return &leadRepository{db: db, logger: logger}
}

func (r *leadRepository) Create(ctx context.Context, l *lead.Lead) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}
	l.TenantID = types.GetTenantID(ctx)

	query := `
	INSERT INTO leads (
		id, tenant_id, company_id, title, source, lead_status,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :tenant_id, :company_id, :title, :source, :lead_status,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, l); err != nil {
		return wrapError(err, "Lead", "Failed to create lead", map[string]interface{}{
			"company_id": l.CompanyID,
		})
	}
	return nil
}

func (r *leadRepository) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}

	query, args := countQuery(ctx, "leads", "lead_status", "", filter)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, wrapError(err, "Lead", "Failed to count leads", map[string]interface{}{
			"company_id": filter.CompanyID,
		})
	}
	return count, nil
}
