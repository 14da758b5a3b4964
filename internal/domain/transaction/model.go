package transaction

import (
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense booked by a company
type Transaction struct {
	ID          string                `db:"id" json:"id"`
	CompanyID   string                `db:"company_id" json:"company_id"`
	Type        types.TransactionType `db:"type" json:"type"`
	Category    string                `db:"category" json:"category"`
	Amount      decimal.Decimal       `db:"amount" json:"amount"`
	Description string                `db:"description" json:"description,omitempty"`
	Date        time.Time             `db:"date" json:"date"`
	types.BaseModel
}
