package tenant

import (
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

// Tenant is a subscribing organisation. Every other record hangs off one.
type Tenant struct {
	ID                 string                   `db:"id" json:"id"`
	Name               string                   `db:"name" json:"name"`
	TaxID              string                   `db:"tax_id" json:"tax_id"`
	SubscriptionTier   types.SubscriptionTier   `db:"subscription_tier" json:"subscription_tier"`
	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	IsActive           bool                     `db:"is_active" json:"is_active"`
	TrialEndsAt        *time.Time               `db:"trial_ends_at" json:"trial_ends_at,omitempty"`
	CreatedAt          time.Time                `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time                `db:"updated_at" json:"updated_at"`
}

// GetTenantID makes a tenant scoped to itself
func (t *Tenant) GetTenantID() string {
	return t.ID
}

// Limits returns the monthly caps of the tenant's tier
func (t *Tenant) Limits() types.UsageLimits {
	return types.GetTierLimits(t.SubscriptionTier)
}
