package transaction

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, txn *Transaction) error
	// Sum adds up amounts of one type whose transaction date falls in the window
	Sum(ctx context.Context, companyID string, txnType types.TransactionType, window types.TimeWindow) (decimal.Decimal, error)
	// Count counts transactions created in the filter window
	Count(ctx context.Context, filter *types.CountFilter) (int, error)
}
