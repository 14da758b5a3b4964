package dto

import (
	"time"

	"github.com/biznesassistant/biznesassistant/internal/domain/company"
	"github.com/biznesassistant/biznesassistant/internal/domain/tenant"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/biznesassistant/biznesassistant/internal/validator"
	"github.com/samber/lo"
)

type TenantResponse struct {
	ID                 string                   `json:"id"`
	Name               string                   `json:"name"`
	TaxID              string                   `json:"tax_id"`
	SubscriptionTier   types.SubscriptionTier   `json:"subscription_tier"`
	SubscriptionStatus types.SubscriptionStatus `json:"subscription_status"`
	IsActive           bool                     `json:"is_active"`
	CompanyID          string                   `json:"company_id,omitempty"`
	CreatedAt          string                   `json:"created_at"`
	UpdatedAt          string                   `json:"updated_at"`
}

// CreateTenantRequest registers a tenant together with its first company
type CreateTenantRequest struct {
	Name             string                 `json:"name" validate:"required,max=255"`
	TaxID            string                 `json:"tax_id" validate:"required,numeric,len=9"`
	SubscriptionTier types.SubscriptionTier `json:"subscription_tier,omitempty"`
	CompanyName      string                 `json:"company_name,omitempty"`
}

func (r *CreateTenantRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToTenant builds an active tenant; new tenants start on a freemium trial unless a tier is given
func (r *CreateTenantRequest) ToTenant(now time.Time, trialDays int) *tenant.Tenant {
	t := &tenant.Tenant{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:               r.Name,
		TaxID:              r.TaxID,
		SubscriptionTier:   r.SubscriptionTier,
		SubscriptionStatus: types.SubscriptionStatusActive,
		IsActive:           true,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}
	if t.SubscriptionTier == "" {
		t.SubscriptionTier = types.SubscriptionTierFreemium
		t.SubscriptionStatus = types.SubscriptionStatusTrial
		t.TrialEndsAt = lo.ToPtr(now.UTC().AddDate(0, 0, trialDays))
	}
	return t
}

func (r *CreateTenantRequest) ToCompany(t *tenant.Tenant) *company.Company {
	return &company.Company{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMPANY),
		TenantID:  lo.ToPtr(t.ID),
		Name:      lo.Ternary(r.CompanyName != "", r.CompanyName, r.Name),
		TaxID:     r.TaxID,
		IsActive:  true,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.CreatedAt,
	}
}

// NewTenantResponse converts a Tenant domain object into a TenantResponse DTO.
func NewTenantResponse(t *tenant.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:                 t.ID,
		Name:               t.Name,
		TaxID:              t.TaxID,
		SubscriptionTier:   t.SubscriptionTier,
		SubscriptionStatus: t.SubscriptionStatus,
		IsActive:           t.IsActive,
		CreatedAt:          t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          t.UpdatedAt.Format(time.RFC3339),
	}
}
