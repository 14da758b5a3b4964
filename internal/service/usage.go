package service

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

// UsageService enforces the monthly record quota of a tenant's tier.
// Checks are read only, so a create racing a check can exceed the cap by a few records.
type UsageService interface {
	CheckUsage(ctx context.Context, companyID string, tier types.SubscriptionTier) (*dto.UsageStatus, error)
	// EnforceLimit rejects with a usage limit error when one more record of resource would exceed the cap
	EnforceLimit(ctx context.Context, companyID string, resource types.UsageResource) error
	GetCurrentUsage(ctx context.Context, companyID string) (*dto.CurrentUsageResponse, error)
	GetUsageStats(ctx context.Context, companyID string) (*dto.UsageStatsResponse, error)
}

type usageService struct {
	ServiceParams
}

func NewUsageService(params ServiceParams) UsageService {
	return &usageService{
		ServiceParams: params,
	}
}

func (s *usageService) countUsage(ctx context.Context, companyID string, window types.TimeWindow) (types.UsageCounts, error) {
	filter := types.NewCountFilter(companyID, window)

	transactions, err := s.TransactionRepo.Count(ctx, filter)
	if err != nil {
		return types.UsageCounts{}, err
	}
	invoices, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return types.UsageCounts{}, err
	}
	tasks, err := s.TaskRepo.Count(ctx, filter)
	if err != nil {
		return types.UsageCounts{}, err
	}

	return types.UsageCounts{
		Transactions: transactions,
		Invoices:     invoices,
		Tasks:        tasks,
	}, nil
}

func (s *usageService) CheckUsage(ctx context.Context, companyID string, tier types.SubscriptionTier) (*dto.UsageStatus, error) {
	usage, err := s.countUsage(ctx, companyID, types.CurrentMonthWindow(s.now()))
	if err != nil {
		return nil, err
	}

	limits := types.GetTierLimits(tier)
	status := &dto.UsageStatus{
		CanCreateTransaction: types.WithinLimit(usage.Transactions, limits.Transactions),
		CanCreateInvoice:     types.WithinLimit(usage.Invoices, limits.Invoices),
		CanCreateTask:        types.WithinLimit(usage.Tasks, limits.Tasks),
		Usage:                usage,
		Limits:               limits,
	}
	status.NeedsUpgrade = !status.CanCreateTransaction || !status.CanCreateInvoice || !status.CanCreateTask
	return status, nil
}

func (s *usageService) EnforceLimit(ctx context.Context, companyID string, resource types.UsageResource) error {
	t, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return err
	}

	status, err := s.CheckUsage(ctx, companyID, t.SubscriptionTier)
	if err != nil {
		return err
	}
	if status.CanCreate(resource) {
		return nil
	}

	if s.Metrics != nil {
		s.Metrics.ObserveUsageRejection(string(resource), string(t.SubscriptionTier))
	}
	s.Logger.Infow("usage limit reached",
		"tenant_id", t.ID,
		"company_id", companyID,
		"resource", resource,
		"count", status.Usage.Get(resource),
		"limit", status.Limits.Get(resource))

	return ierr.NewErrorf("monthly %s limit reached", resource).
		WithHintf("Your plan allows %d %s per month. Upgrade to create more.", status.Limits.Get(resource), resource).
		WithReportableDetails(map[string]any{
			"resource":      resource,
			"usage":         status.Usage,
			"limits":        status.Limits,
			"needs_upgrade": true,
		}).
		Mark(ierr.ErrUsageLimitExceeded)
}

func (s *usageService) GetCurrentUsage(ctx context.Context, companyID string) (*dto.CurrentUsageResponse, error) {
	t, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}

	status, err := s.CheckUsage(ctx, companyID, t.SubscriptionTier)
	if err != nil {
		return nil, err
	}

	return &dto.CurrentUsageResponse{
		UsageStatus:        *status,
		SubscriptionTier:   t.SubscriptionTier,
		SubscriptionStatus: t.SubscriptionStatus,
	}, nil
}

func (s *usageService) GetUsageStats(ctx context.Context, companyID string) (*dto.UsageStatsResponse, error) {
	t, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}

	window := types.CurrentMonthWindow(s.now())
	usage, err := s.countUsage(ctx, companyID, window)
	if err != nil {
		return nil, err
	}

	limits := t.Limits()
	return &dto.UsageStatsResponse{
		CompanyID:   companyID,
		PeriodStart: types.FormatDate(window.Start),
		PeriodEnd:   types.FormatDate(window.End),
		Usage:       usage,
		Limits:      limits,
		UsagePercentages: dto.UsagePercentages{
			Transactions: types.UsagePercentage(usage.Transactions, limits.Transactions),
			Invoices:     types.UsagePercentage(usage.Invoices, limits.Invoices),
			Tasks:        types.UsagePercentage(usage.Tasks, limits.Tasks),
		},
		NeedsUpgrade: !types.WithinLimit(usage.Transactions, limits.Transactions) ||
			!types.WithinLimit(usage.Invoices, limits.Invoices) ||
			!types.WithinLimit(usage.Tasks, limits.Tasks),
		Subscription: dto.SubscriptionInfo{
			Tier:        t.SubscriptionTier,
			Status:      t.SubscriptionStatus,
			IsActive:    t.IsActive,
			TrialEndsAt: t.TrialEndsAt,
		},
	}, nil
}
