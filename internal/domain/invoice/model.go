package invoice

import (
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID            string              `db:"id" json:"id"`
	CompanyID     string              `db:"company_id" json:"company_id"`
	ContactID     *string             `db:"contact_id" json:"contact_id,omitempty"`
	InvoiceNumber string              `db:"invoice_number" json:"invoice_number"`
	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	IssueDate     time.Time           `db:"issue_date" json:"issue_date"`
	DueDate       time.Time           `db:"due_date" json:"due_date"`
	TotalAmount   decimal.Decimal     `db:"total_amount" json:"total_amount"`
	types.BaseModel
}
