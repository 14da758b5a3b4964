package types

import (
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/samber/lo"
)

// KPICategory is the closed set of tracked indicators
type KPICategory string

const (
	KPICategoryRevenue   KPICategory = "revenue"
	KPICategoryExpenses  KPICategory = "expenses"
	KPICategoryProfit    KPICategory = "profit"
	KPICategoryCustomers KPICategory = "customers"
	KPICategoryInvoices  KPICategory = "invoices"
	KPICategoryLeads     KPICategory = "leads"
	KPICategoryDeals     KPICategory = "deals"
)

// KPICategories lists every category in the order results are returned
var KPICategories = []KPICategory{
	KPICategoryRevenue,
	KPICategoryExpenses,
	KPICategoryProfit,
	KPICategoryCustomers,
	KPICategoryInvoices,
	KPICategoryLeads,
	KPICategoryDeals,
}

func (c KPICategory) String() string {
	return string(c)
}

func (c KPICategory) Validate() error {
	if !lo.Contains(KPICategories, c) {
		return ierr.NewErrorf("invalid kpi category: %s", c).
			WithHintf("KPI category must be one of %v", KPICategories).
			WithReportableDetails(map[string]any{
				"category": c,
				"allowed":  KPICategories,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsMonetary reports whether values of the category are sums of money rather than counts
func (c KPICategory) IsMonetary() bool {
	return c == KPICategoryRevenue || c == KPICategoryExpenses || c == KPICategoryProfit
}

// KPIPeriod is the granularity a KPI row is computed for
type KPIPeriod string

const (
	KPIPeriodDaily     KPIPeriod = "daily"
	KPIPeriodWeekly    KPIPeriod = "weekly"
	KPIPeriodMonthly   KPIPeriod = "monthly"
	KPIPeriodQuarterly KPIPeriod = "quarterly"
	KPIPeriodYearly    KPIPeriod = "yearly"
)

var KPIPeriods = []KPIPeriod{
	KPIPeriodDaily,
	KPIPeriodWeekly,
	KPIPeriodMonthly,
	KPIPeriodQuarterly,
	KPIPeriodYearly,
}

func (p KPIPeriod) String() string {
	return string(p)
}

func (p KPIPeriod) Validate() error {
	if !lo.Contains(KPIPeriods, p) {
		return ierr.NewErrorf("invalid kpi period: %s", p).
			WithHintf("Period must be one of %v", KPIPeriods).
			WithReportableDetails(map[string]any{
				"period":  p,
				"allowed": KPIPeriods,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TrendBucketMode selects how monthly trend buckets are laid out
type TrendBucketMode string

const (
	// TrendBucketCalendar steps back one calendar month per bucket
	TrendBucketCalendar TrendBucketMode = "calendar"
	// TrendBucketLegacy30d steps back 30 days from the first of the month and
	// normalises to day 1, which can skip or repeat months
	TrendBucketLegacy30d TrendBucketMode = "legacy_30d"
)

func (m TrendBucketMode) Validate() error {
	allowed := []TrendBucketMode{TrendBucketCalendar, TrendBucketLegacy30d}
	if !lo.Contains(allowed, m) {
		return ierr.NewErrorf("invalid trend bucket mode: %s", m).
			WithHintf("Trend bucket mode must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

const (
	// ForecastModelLinearRegression is the only forecasting model available
	ForecastModelLinearRegression = "linear_regression"

	// DefaultTrendMonths is the history length used for forecasting
	DefaultTrendMonths = 12
	MaxTrendMonths     = 36
	MaxForecastPeriods = 12
)
