package dto

import (
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

// UsageStatus is the outcome of a quota check over the current calendar month
type UsageStatus struct {
	CanCreateTransaction bool              `json:"can_create_transaction"`
	CanCreateInvoice     bool              `json:"can_create_invoice"`
	CanCreateTask        bool              `json:"can_create_task"`
	Usage                types.UsageCounts `json:"usage"`
	Limits               types.UsageLimits `json:"limits"`
	NeedsUpgrade         bool              `json:"needs_upgrade"`
}

// CanCreate reports the flag of a single resource
func (u *UsageStatus) CanCreate(resource types.UsageResource) bool {
	switch resource {
	case types.UsageResourceTransactions:
		return u.CanCreateTransaction
	case types.UsageResourceInvoices:
		return u.CanCreateInvoice
	case types.UsageResourceTasks:
		return u.CanCreateTask
	default:
		return false
	}
}

type CurrentUsageResponse struct {
	UsageStatus
	SubscriptionTier   types.SubscriptionTier   `json:"subscription_tier"`
	SubscriptionStatus types.SubscriptionStatus `json:"subscription_status"`
}

// UsagePercentages is usage relative to the limit per resource; 0 for unlimited resources
type UsagePercentages struct {
	Transactions float64 `json:"transactions"`
	Invoices     float64 `json:"invoices"`
	Tasks        float64 `json:"tasks"`
}

type SubscriptionInfo struct {
	Tier        types.SubscriptionTier   `json:"tier"`
	Status      types.SubscriptionStatus `json:"status"`
	IsActive    bool                     `json:"is_active"`
	TrialEndsAt *time.Time               `json:"trial_ends_at,omitempty"`
}

type UsageStatsResponse struct {
	CompanyID        string            `json:"company_id"`
	PeriodStart      string            `json:"period_start"`
	PeriodEnd        string            `json:"period_end"`
	Usage            types.UsageCounts `json:"usage"`
	Limits           types.UsageLimits `json:"limits"`
	UsagePercentages UsagePercentages  `json:"usage_percentages"`
	NeedsUpgrade     bool              `json:"needs_upgrade"`
	Subscription     SubscriptionInfo  `json:"subscription"`
}
