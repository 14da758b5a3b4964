package lead

import (
	"github.com/biznesassistant/biznesassistant/internal/types"
)

type Lead struct {
	ID         string           `db:"id" json:"id"`
	CompanyID  string           `db:"company_id" json:"company_id"`
	Title      string           `db:"title" json:"title"`
	Source     string           `db:"source" json:"source,omitempty"`
	LeadStatus types.LeadStatus `db:"lead_status" json:"lead_status"`
	types.BaseModel
}
