package service

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/domain/kpi"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

// aggregationWorkers bounds the concurrent store queries of one aggregation.
// A context carrying a database transaction is queried sequentially since a
// transaction is bound to a single connection.
func (p ServiceParams) aggregationWorkers(ctx context.Context) int {
	if ctx.Value(types.CtxDBTransaction) != nil {
		return 1
	}
	if p.Config != nil && p.Config.KPI.TrendConcurrency > 0 {
		return p.Config.KPI.TrendConcurrency
	}
	return 1
}

// aggregate sums and counts one company's records over a window
func (p ServiceParams) aggregate(ctx context.Context, companyID string, window types.TimeWindow) (kpi.Aggregates, error) {
	var agg kpi.Aggregates
	filter := types.NewCountFilter(companyID, window)

	wp := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(p.aggregationWorkers(ctx))

	wp.Go(func(ctx context.Context) error {
		v, err := p.TransactionRepo.Sum(ctx, companyID, types.TransactionTypeIncome, window)
		agg.Revenue = v
		return err
	})
	wp.Go(func(ctx context.Context) error {
		v, err := p.TransactionRepo.Sum(ctx, companyID, types.TransactionTypeExpense, window)
		agg.Expenses = v
		return err
	})
	wp.Go(func(ctx context.Context) error {
		n, err := p.ContactRepo.Count(ctx, filter)
		agg.Customers = int64(n)
		return err
	})
	wp.Go(func(ctx context.Context) error {
		n, err := p.InvoiceRepo.Count(ctx, filter)
		agg.Invoices = int64(n)
		return err
	})
	wp.Go(func(ctx context.Context) error {
		n, err := p.LeadRepo.Count(ctx, filter)
		agg.Leads = int64(n)
		return err
	})
	wp.Go(func(ctx context.Context) error {
		n, err := p.DealRepo.Count(ctx, filter)
		agg.Deals = int64(n)
		return err
	})

	if err := wp.Wait(); err != nil {
		return kpi.Aggregates{}, err
	}
	return agg, nil
}

// breakdown collects the per category detail counters stored alongside populated rows
func (p ServiceParams) breakdown(ctx context.Context, companyID string, window types.TimeWindow, today time.Time) (map[types.KPICategory]kpi.Details, error) {
	created := types.NewCountFilter(companyID, window)
	overdue := types.CountFilter{CompanyID: companyID}.
		WithStatuses(string(types.InvoiceStatusSent), string(types.InvoiceStatusOverdue)).
		WithDueBefore(today)

	newCustomers, err := p.ContactRepo.Count(ctx, created)
	if err != nil {
		return nil, err
	}
	paid, err := p.InvoiceRepo.Count(ctx, created.WithStatuses(string(types.InvoiceStatusPaid)))
	if err != nil {
		return nil, err
	}
	overdueCount, err := p.InvoiceRepo.Count(ctx, overdue)
	if err != nil {
		return nil, err
	}
	converted, err := p.LeadRepo.Count(ctx, created.WithStatuses(string(types.LeadStatusConverted)))
	if err != nil {
		return nil, err
	}
	won, err := p.DealRepo.Count(ctx, created.WithStatuses(string(types.DealStatusWon)))
	if err != nil {
		return nil, err
	}

	return map[types.KPICategory]kpi.Details{
		types.KPICategoryCustomers: {"new_customers": int64(newCustomers)},
		types.KPICategoryInvoices: {
			"paid_count":    int64(paid),
			"overdue_count": int64(overdueCount),
		},
		types.KPICategoryLeads: {"converted_count": int64(converted)},
		types.KPICategoryDeals: {"won_count": int64(won)},
	}, nil
}

// categoryValue evaluates a single category over a window, querying only what the category needs
func (p ServiceParams) categoryValue(ctx context.Context, companyID string, category types.KPICategory, window types.TimeWindow) (decimal.Decimal, error) {
	filter := types.NewCountFilter(companyID, window)

	var (
		n   int
		err error
	)
	switch category {
	case types.KPICategoryRevenue:
		return p.TransactionRepo.Sum(ctx, companyID, types.TransactionTypeIncome, window)
	case types.KPICategoryExpenses:
		return p.TransactionRepo.Sum(ctx, companyID, types.TransactionTypeExpense, window)
	case types.KPICategoryProfit:
		revenue, err := p.TransactionRepo.Sum(ctx, companyID, types.TransactionTypeIncome, window)
		if err != nil {
			return decimal.Zero, err
		}
		expenses, err := p.TransactionRepo.Sum(ctx, companyID, types.TransactionTypeExpense, window)
		if err != nil {
			return decimal.Zero, err
		}
		return revenue.Sub(expenses), nil
	case types.KPICategoryCustomers:
		n, err = p.ContactRepo.Count(ctx, filter)
	case types.KPICategoryInvoices:
		n, err = p.InvoiceRepo.Count(ctx, filter)
	case types.KPICategoryLeads:
		n, err = p.LeadRepo.Count(ctx, filter)
	case types.KPICategoryDeals:
		n, err = p.DealRepo.Count(ctx, filter)
	default:
		return decimal.Zero, category.Validate()
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(int64(n)), nil
}
