package postgres

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/domain/contact"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

type contactRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewContactRepository(db *postgres.DB, logger *logger.Logger) contact.Repository {
	return &contactRepository{db: db, logger: logger}
}

func (r *contactRepository) Create(ctx context.Context, c *contact.Contact) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}
	c.TenantID = types.GetTenantID(ctx)

	query := `
	INSERT INTO contacts (
		id, tenant_id, company_id, name, email, phone,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :tenant_id, :company_id, :name, :email, :phone,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c); err != nil {
		return wrapError(err, "Contact", "Failed to create contact", map[string]interface{}{
			"company_id": c.CompanyID,
		})
	}
	return nil
}

func (r *contactRepository) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}

	query, args := countQuery(ctx, "contacts", "", "", filter)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, wrapError(err, "Contact", "Failed to count contacts", map[string]interface{}{
			"company_id": filter.CompanyID,
		})
	}
	return count, nil
}
