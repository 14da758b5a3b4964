package deal

import (
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
)

type Deal struct {
	ID         string           `db:"id" json:"id"`
	CompanyID  string           `db:"company_id" json:"company_id"`
	Title      string           `db:"title" json:"title"`
	Amount     decimal.Decimal  `db:"amount" json:"amount"`
	DealStatus types.DealStatus `db:"deal_status" json:"deal_status"`
	types.BaseModel
}
