package types

import (
	"strings"
)

type SubscriptionTier string

const (
	SubscriptionTierFreemium     SubscriptionTier = "freemium"
	SubscriptionTierBasic        SubscriptionTier = "basic"
	SubscriptionTierProfessional SubscriptionTier = "professional"
	SubscriptionTierEnterprise   SubscriptionTier = "enterprise"
	SubscriptionTierPremium      SubscriptionTier = "premium"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// UsageLimitUnlimited marks a resource without a monthly cap
const UsageLimitUnlimited = -1

// UsageResource is a record type counted against the monthly quota
type UsageResource string

const (
	UsageResourceTransactions UsageResource = "transactions"
	UsageResourceInvoices     UsageResource = "invoices"
	UsageResourceTasks        UsageResource = "tasks"
)

// UsageLimits holds the monthly caps of a tier
type UsageLimits struct {
	Transactions int `json:"transactions"`
	Invoices     int `json:"invoices"`
	Tasks        int `json:"tasks"`
}

// UsageCounts holds the records created in the current calendar month
type UsageCounts struct {
	Transactions int `json:"transactions"`
	Invoices     int `json:"invoices"`
	Tasks        int `json:"tasks"`
}

var (
	freemiumLimits = UsageLimits{
		Transactions: 30,
		Invoices:     15,
		Tasks:        25,
	}
	unlimitedLimits = UsageLimits{
		Transactions: UsageLimitUnlimited,
		Invoices:     UsageLimitUnlimited,
		Tasks:        UsageLimitUnlimited,
	}
	tierLimits = map[SubscriptionTier]UsageLimits{
		SubscriptionTierFreemium:     freemiumLimits,
		SubscriptionTierProfessional: unlimitedLimits,
		SubscriptionTierEnterprise:   unlimitedLimits,
		SubscriptionTierPremium:      unlimitedLimits,
	}
)

// GetTierLimits returns the monthly caps for a tier.
// Unknown tiers, basic included, get the freemium caps.
func GetTierLimits(tier SubscriptionTier) UsageLimits {
	t := SubscriptionTier(strings.ToLower(strings.TrimSpace(string(tier))))
	if limits, ok := tierLimits[t]; ok {
		return limits
	}
	return freemiumLimits
}

// Get returns the cap for a single resource
func (l UsageLimits) Get(resource UsageResource) int {
	switch resource {
	case UsageResourceTransactions:
		return l.Transactions
	case UsageResourceInvoices:
		return l.Invoices
	case UsageResourceTasks:
		return l.Tasks
	default:
		return 0
	}
}

// Get returns the monthly count for a single resource
func (c UsageCounts) Get(resource UsageResource) int {
	switch resource {
	case UsageResourceTransactions:
		return c.Transactions
	case UsageResourceInvoices:
		return c.Invoices
	case UsageResourceTasks:
		return c.Tasks
	default:
		return 0
	}
}

// WithinLimit reports whether one more record may be created
func WithinLimit(count, limit int) bool {
	if limit == UsageLimitUnlimited {
		return true
	}
	return count < limit
}

// UsagePercentage is 0 for unlimited resources and 100 for a zero cap
func UsagePercentage(count, limit int) float64 {
	if limit == UsageLimitUnlimited {
		return 0
	}
	if limit <= 0 {
		return 100
	}
	return float64(count) / float64(limit) * 100
}
