package postgres

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/domain/company"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

type companyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCompanyRepository(db *postgres.DB, logger *logger.Logger) company.Repository {
	return &companyRepository{db: db, logger: logger}
}

const companyColumns = `id, tenant_id, name, tax_id, is_active, created_at, updated_at`

func (r *companyRepository) Create(ctx context.Context, c *company.Company) error {
	query := `
	INSERT INTO companies (` + companyColumns + `)
	VALUES (:id, :tenant_id, :name, :tax_id, :is_active, :created_at, :updated_at)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c); err != nil {
		return wrapError(err, "Company", "Failed to create company", map[string]interface{}{
			"company_id": c.ID,
		})
	}
	return nil
}

func (r *companyRepository) Get(ctx context.Context, id string) (*company.Company, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1 AND tenant_id = $2`

	var c company.Company
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id, types.GetTenantID(ctx)); err != nil {
		return nil, wrapError(err, "Company", "Failed to retrieve company", map[string]interface{}{
			"company_id": id,
		})
	}
	return &c, nil
}

func (r *companyRepository) GetForPrincipal(ctx context.Context, id string) (*company.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	var c company.Company
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id); err != nil {
		return nil, wrapError(err, "Company", "Failed to retrieve company", map[string]interface{}{
			"company_id": id,
		})
	}
	return &c, nil
}
