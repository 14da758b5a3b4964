package kpi

import (
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	// TargetGrowth is applied to the previous value to derive a target
	TargetGrowth = decimal.NewFromFloat(1.1)
	// PlaceholderTarget is used when there is no positive previous value
	PlaceholderTarget = decimal.NewFromInt(1000)
)

// Aggregates are the raw sums and counts of one company over one window
type Aggregates struct {
	Revenue   decimal.Decimal
	Expenses  decimal.Decimal
	Customers int64
	Invoices  int64
	Leads     int64
	Deals     int64
}

// ValueOf maps a category onto the aggregates. Profit is always derived.
func (a Aggregates) ValueOf(category types.KPICategory) decimal.Decimal {
	switch category {
	case types.KPICategoryRevenue:
		return a.Revenue
	case types.KPICategoryExpenses:
		return a.Expenses
	case types.KPICategoryProfit:
		return a.Revenue.Sub(a.Expenses)
	case types.KPICategoryCustomers:
		return decimal.NewFromInt(a.Customers)
	case types.KPICategoryInvoices:
		return decimal.NewFromInt(a.Invoices)
	case types.KPICategoryLeads:
		return decimal.NewFromInt(a.Leads)
	case types.KPICategoryDeals:
		return decimal.NewFromInt(a.Deals)
	default:
		return decimal.Zero
	}
}

// Value is one computed, not yet persisted, indicator
type Value struct {
	Category types.KPICategory
	Current  decimal.Decimal
	Previous decimal.Decimal
}

// ChangePercent is the growth over the previous value, 0 when there is nothing to compare against
func (v Value) ChangePercent() float64 {
	if v.Previous.IsZero() {
		return 0
	}
	return v.Current.Sub(v.Previous).Div(v.Previous.Abs()).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

// Snapshot is the result of computing all categories for one company and period
type Snapshot struct {
	CompanyID      string
	Period         types.KPIPeriod
	Window         types.TimeWindow
	PreviousWindow types.TimeWindow
	Values         []Value
}

// Compute turns current and previous aggregates into one value per category,
// in the fixed category order.
func Compute(current, previous Aggregates) []Value {
	return lo.Map(types.KPICategories, func(c types.KPICategory, _ int) Value {
		return Value{
			Category: c,
			Current:  current.ValueOf(c),
			Previous: previous.ValueOf(c),
		}
	})
}

// TargetFor derives the target of a new row from the previous period's value
func TargetFor(previous decimal.NullDecimal) decimal.Decimal {
	if previous.Valid && previous.Decimal.IsPositive() {
		return previous.Decimal.Mul(TargetGrowth).Round(2)
	}
	return PlaceholderTarget
}
