package postgres

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/domain/transaction"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
)

type transactionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTransactionRepository(db *postgres.DB, logger *logger.Logger) transaction.Repository {
	return &transactionRepository{db: db, logger: logger}
}

func (r *transactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}
	txn.TenantID = types.GetTenantID(ctx)

	query := `
	INSERT INTO transactions (
		id, tenant_id, company_id, type, category, amount, description, date,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :tenant_id, :company_id, :type, :category, :amount, :description, :date,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, txn); err != nil {
		return wrapError(err, "Transaction", "Failed to create transaction", map[string]interface{}{
			"company_id": txn.CompanyID,
		})
	}
	return nil
}

func (r *transactionRepository) Sum(ctx context.Context, companyID string, txnType types.TransactionType, window types.TimeWindow) (decimal.Decimal, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return decimal.Zero, err
	}

	span := StartRepositorySpan(ctx, "transaction", "sum", map[string]interface{}{
		"company_id": companyID,
		"type":       txnType,
		"window":     window.String(),
	})
	defer FinishSpan(span)

	query := `
	SELECT COALESCE(SUM(amount), 0) FROM transactions
	WHERE tenant_id = $1 AND company_id = $2 AND type = $3 AND status <> $4
		AND date >= $5 AND date < $6`

	var total decimal.Decimal
	err := r.db.GetQuerier(ctx).GetContext(ctx, &total, query,
		types.GetTenantID(ctx),
		companyID,
		txnType,
		types.StatusDeleted,
		window.Start,
		window.Until(),
	)
	if err != nil {
		SetSpanError(span, err)
		return decimal.Zero, wrapError(err, "Transaction", "Failed to sum transactions", map[string]interface{}{
			"company_id": companyID,
			"type":       txnType,
		})
	}

	SetSpanSuccess(span)
	return total, nil
}

func (r *transactionRepository) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}

	query, args := countQuery(ctx, "transactions", "", "", filter)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, wrapError(err, "Transaction", "Failed to count transactions", map[string]interface{}{
			"company_id": filter.CompanyID,
		})
	}
	return count, nil
}
