package postgres

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/domain/invoice"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}
	inv.TenantID = types.GetTenantID(ctx)

	query := `
	INSERT INTO invoices (
		id, tenant_id, company_id, contact_id, invoice_number, invoice_status, issue_date, due_date, total_amount,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :tenant_id, :company_id, :contact_id, :invoice_number, :invoice_status, :issue_date, :due_date, :total_amount,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, inv); err != nil {
		return wrapError(err, "Invoice", "Failed to create invoice", map[string]interface{}{
			"company_id": inv.CompanyID,
		})
	}
	return nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}

	query, args := countQuery(ctx, "invoices", "invoice_status", "due_date", filter)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, wrapError(err, "Invoice", "Failed to count invoices", map[string]interface{}{
			"company_id": filter.CompanyID,
		})
	}
	return count, nil
}
