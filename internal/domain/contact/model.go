package contact

import (
	"github.com/biznesassistant/biznesassistant/internal/types"
)

// Contact is a customer or counterparty of a company
type Contact struct {
	ID        string `db:"id" json:"id"`
	CompanyID string `db:"company_id" json:"company_id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email,omitempty"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	types.BaseModel
}
