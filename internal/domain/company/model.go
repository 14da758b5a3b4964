package company

import (
	"time"
)

// Company is a legal entity operated by a tenant
type Company struct {
	ID string `db:"id" json:"id"`
	// TenantID is only nil on rows created before tenants existed
	TenantID  *string   `db:"tenant_id" json:"tenant_id,omitempty"`
	Name      string    `db:"name" json:"name"`
	TaxID     string    `db:"tax_id" json:"tax_id"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (c *Company) GetTenantID() string {
	if c.TenantID == nil {
		return ""
	}
	return *c.TenantID
}
