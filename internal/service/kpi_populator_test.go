package service

import (
	"context"
	"testing"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/domain/kpi"
	"github.com/biznesassistant/biznesassistant/internal/domain/tenant"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/testutil"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// failingKPIRepo lets a population run fail after the window has been cleared
type failingKPIRepo struct {
	kpi.Repository
}

func (r *failingKPIRepo) CreateMany(ctx context.Context, kpis []*kpi.KPI) error {
	return ierr.NewError("insert failed").Mark(ierr.ErrDatabase)
}

type KPIPopulatorServiceSuite struct {
	testutil.BaseServiceTestSuite
	service KPIPopulatorService
}

func TestKPIPopulatorService(t *testing.T) {
	suite.Run(t, new(KPIPopulatorServiceSuite))
}

func (s *KPIPopulatorServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewKPIPopulatorService(testServiceParams(&s.BaseServiceTestSuite))
}

func (s *KPIPopulatorServiceSuite) may(d int) time.Time {
	return time.Date(2025, time.May, d, 9, 0, 0, 0, time.UTC)
}

func (s *KPIPopulatorServiceSuite) storedMonthly(category types.KPICategory, date time.Time) *kpi.KPI {
	row, err := s.GetStores().KPIRepo.Get(s.GetContext(), kpi.Key{
		CompanyID: s.GetCompany().ID,
		Category:  category,
		Period:    types.KPIPeriodMonthly,
		Date:      date,
	})
	s.Require().NoError(err)
	return row
}

func (s *KPIPopulatorServiceSuite) populateMonthly() {
	_, err := s.service.PopulateAll(s.GetContext(), s.GetTenant().ID, s.GetCompany().ID, types.KPIPeriodMonthly)
	s.Require().NoError(err)
}

func (s *KPIPopulatorServiceSuite) TestPopulateAllMonthly() {
	companyID := s.GetCompany().ID
	s.SeedTransaction(companyID, types.TransactionTypeIncome, 1000, s.may(2))
	s.SeedTransaction(companyID, types.TransactionTypeExpense, 400, s.may(3))
	// later in the month still belongs to the full period window
	s.SeedTransaction(companyID, types.TransactionTypeIncome, 200, s.may(28))

	resp, err := s.service.PopulateAll(s.GetContext(), s.GetTenant().ID, companyID, types.KPIPeriodMonthly)
	s.Require().NoError(err)

	s.Equal("2025-05-01", resp.WindowStart)
	s.Equal("2025-05-31", resp.WindowEnd)
	s.Equal(len(types.KPICategories), resp.CategoriesPopulated)
	s.Equal(len(types.KPICategories), resp.TotalCategories)
	s.Equal(0, resp.Replaced)

	s.Equal(1200.0, resp.KPIs[types.KPICategoryRevenue].Value)
	s.Equal(400.0, resp.KPIs[types.KPICategoryExpenses].Value)
	s.Equal(800.0, resp.KPIs[types.KPICategoryProfit].Value)
	for _, c := range types.KPICategories {
		s.Nil(resp.KPIs[c].PreviousValue, c)
		s.Equal(1000.0, resp.KPIs[c].TargetValue, c)
	}

	stored, err := s.GetStores().KPIRepo.ListByDate(s.GetContext(), companyID, types.KPIPeriodMonthly, s.may(1))
	s.Require().NoError(err)
	s.Len(stored, len(types.KPICategories))

	events := s.GetPublisher().GetEvents()
	s.Require().Len(events, 1)
	s.Equal(types.EventKPIPopulated, events[0].EventName)
	s.Equal(s.GetTenant().ID, events[0].TenantID)
	s.Equal(companyID, events[0].CompanyID)
	s.Equal("2025-05-01", events[0].WindowStart)
	s.Equal("2025-05-31", events[0].WindowEnd)
	s.Equal("1200", events[0].Values[string(types.KPICategoryRevenue)])
	s.Equal(len(types.KPICategories), events[0].Categories)
}

func (s *KPIPopulatorServiceSuite) TestPopulateAllIsIdempotent() {
	companyID := s.GetCompany().ID
	s.SeedTransaction(companyID, types.TransactionTypeIncome, 1000, s.may(2))

	s.populateMonthly()
	first := s.storedMonthly(types.KPICategoryRevenue, s.may(1))

	resp, err := s.service.PopulateAll(s.GetContext(), s.GetTenant().ID, companyID, types.KPIPeriodMonthly)
	s.Require().NoError(err)
	s.Equal(len(types.KPICategories), resp.Replaced)

	stored, err := s.GetStores().KPIRepo.ListByDate(s.GetContext(), companyID, types.KPIPeriodMonthly, s.may(1))
	s.Require().NoError(err)
	s.Len(stored, len(types.KPICategories))

	second := s.storedMonthly(types.KPICategoryRevenue, s.may(1))
	s.True(first.Value.Equal(second.Value))
	s.Equal(first.TargetValue, second.TargetValue)
	s.Equal(first.PreviousValue, second.PreviousValue)
}

func (s *KPIPopulatorServiceSuite) TestPreviousAndTargetValues() {
	companyID := s.GetCompany().ID
	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	prior := &kpi.KPI{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_KPI),
		CompanyID: companyID,
		Category:  types.KPICategoryRevenue,
		Period:    types.KPIPeriodMonthly,
		Date:      april,
		Value:     decimal.NewFromInt(500),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().KPIRepo.Upsert(s.GetContext(), prior))

	resp, err := s.service.PopulateAll(s.GetContext(), s.GetTenant().ID, companyID, types.KPIPeriodMonthly)
	s.Require().NoError(err)

	revenue := resp.KPIs[types.KPICategoryRevenue]
	s.Require().NotNil(revenue.PreviousValue)
	s.Equal(500.0, *revenue.PreviousValue)
	s.Equal(550.0, revenue.TargetValue)

	s.Nil(resp.KPIs[types.KPICategoryProfit].PreviousValue)
	s.Equal(1000.0, resp.KPIs[types.KPICategoryProfit].TargetValue)

	// the prior period row is left alone
	s.True(decimal.NewFromInt(500).Equal(s.storedMonthly(types.KPICategoryRevenue, april).Value))
}

func (s *KPIPopulatorServiceSuite) TestPreviousValueAnywhereInPriorWeek() {
	companyID := s.GetCompany().ID

	// the prior ISO week is May 5..11; aggregator rows are dated mid week
	seeded := []struct {
		date  time.Time
		value int64
	}{
		{date: time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), value: 900},
		{date: s.may(5), value: 300},
		{date: s.may(7), value: 500},
	}
	for _, seed := range seeded {
		row := &kpi.KPI{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_KPI),
			CompanyID: companyID,
			Category:  types.KPICategoryRevenue,
			Period:    types.KPIPeriodWeekly,
			Date:      seed.date,
			Value:     decimal.NewFromInt(seed.value),
			BaseModel: types.GetDefaultBaseModel(s.GetContext()),
		}
		s.Require().NoError(s.GetStores().KPIRepo.Upsert(s.GetContext(), row))
	}

	resp, err := s.service.PopulateAll(s.GetContext(), s.GetTenant().ID, companyID, types.KPIPeriodWeekly)
	s.Require().NoError(err)

	revenue := resp.KPIs[types.KPICategoryRevenue]
	s.Require().NotNil(revenue.PreviousValue)
	s.Equal(500.0, *revenue.PreviousValue)
	s.Equal(550.0, revenue.TargetValue)

	s.Nil(resp.KPIs[types.KPICategoryExpenses].PreviousValue)
}

func (s *KPIPopulatorServiceSuite) TestDetails() {
	companyID := s.GetCompany().ID
	s.SeedContact(companyID, s.may(2))
	s.SeedInvoice(companyID, types.InvoiceStatusPaid, s.may(20), s.may(3))
	s.SeedInvoice(companyID, types.InvoiceStatusSent, s.may(25), s.may(6))
	// overdue is counted regardless of when the invoice was created
	s.SeedInvoice(companyID, types.InvoiceStatusSent, s.may(10), time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC))
	s.SeedLead(companyID, types.LeadStatusConverted, s.may(4))
	s.SeedLead(companyID, types.LeadStatusNew, s.may(4))
	s.SeedDeal(companyID, types.DealStatusWon, s.may(5))
	s.SeedDeal(companyID, types.DealStatusLost, s.may(5))

	s.populateMonthly()

	invoices := s.storedMonthly(types.KPICategoryInvoices, s.may(1))
	s.True(decimal.NewFromInt(2).Equal(invoices.Value))
	s.Equal(int64(1), invoices.Details["paid_count"])
	s.Equal(int64(1), invoices.Details["overdue_count"])

	s.Equal(int64(1), s.storedMonthly(types.KPICategoryCustomers, s.may(1)).Details["new_customers"])
	s.Equal(int64(1), s.storedMonthly(types.KPICategoryLeads, s.may(1)).Details["converted_count"])
	s.Equal(int64(1), s.storedMonthly(types.KPICategoryDeals, s.may(1)).Details["won_count"])
	s.Empty(s.storedMonthly(types.KPICategoryRevenue, s.may(1)).Details)
}

func (s *KPIPopulatorServiceSuite) TestFailedRunRollsBack() {
	companyID := s.GetCompany().ID
	s.SeedTransaction(companyID, types.TransactionTypeIncome, 1000, s.may(2))
	s.populateMonthly()
	s.GetPublisher().Clear()

	params := testServiceParams(&s.BaseServiceTestSuite)
	params.KPIRepo = &failingKPIRepo{Repository: s.GetStores().KPIRepo}
	failing := NewKPIPopulatorService(params)

	_, err := failing.PopulateAll(s.GetContext(), s.GetTenant().ID, companyID, types.KPIPeriodMonthly)
	s.Error(err)
	s.True(ierr.IsDatabase(err))
	s.Equal(1, s.GetDB().RolledBack)

	// the rows cleared by the failed run are back
	stored, err := s.GetStores().KPIRepo.ListByDate(s.GetContext(), companyID, types.KPIPeriodMonthly, s.may(1))
	s.Require().NoError(err)
	s.Len(stored, len(types.KPICategories))
	s.Empty(s.GetPublisher().GetEvents())
}

func (s *KPIPopulatorServiceSuite) TestPublishFailureDoesNotFailRun() {
	s.GetPublisher().FailPublishing(true)

	resp, err := s.service.PopulateAll(s.GetContext(), s.GetTenant().ID, s.GetCompany().ID, types.KPIPeriodMonthly)
	s.Require().NoError(err)
	s.Equal(len(types.KPICategories), resp.CategoriesPopulated)
	s.Empty(s.GetPublisher().GetEvents())

	stored, err := s.GetStores().KPIRepo.ListByDate(s.GetContext(), s.GetCompany().ID, types.KPIPeriodMonthly, s.may(1))
	s.Require().NoError(err)
	s.Len(stored, len(types.KPICategories))
}

func (s *KPIPopulatorServiceSuite) TestRejectsForeignOrInactive() {
	inactive := &tenant.Tenant{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:               "Dormant",
		TaxID:              "300000001",
		SubscriptionTier:   types.SubscriptionTierFreemium,
		SubscriptionStatus: types.SubscriptionStatusExpired,
		IsActive:           false,
	}
	s.Require().NoError(s.GetStores().TenantRepo.Create(context.Background(), inactive))

	other := &tenant.Tenant{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:               "Namangan Savdo",
		TaxID:              "300000002",
		SubscriptionTier:   types.SubscriptionTierProfessional,
		SubscriptionStatus: types.SubscriptionStatusActive,
		IsActive:           true,
	}
	s.Require().NoError(s.GetStores().TenantRepo.Create(context.Background(), other))

	testCases := []struct {
		name       string
		tenantID   string
		companyID  string
		period     types.KPIPeriod
		errorCheck func(error) bool
	}{
		{"inactive_tenant", inactive.ID, s.GetCompany().ID, types.KPIPeriodMonthly, ierr.IsNotFound},
		{"missing_tenant", "tenant_missing", s.GetCompany().ID, types.KPIPeriodMonthly, ierr.IsNotFound},
		{"company_of_other_tenant", other.ID, s.GetCompany().ID, types.KPIPeriodDaily, ierr.IsNotFound},
		{"missing_company", s.GetTenant().ID, "comp_missing", types.KPIPeriodMonthly, ierr.IsNotFound},
		{"invalid_period", s.GetTenant().ID, s.GetCompany().ID, types.KPIPeriod("hourly"), ierr.IsValidation},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.PopulateAll(s.GetContext(), tc.tenantID, tc.companyID, tc.period)
			s.Nil(resp)
			s.Error(err)
			s.True(tc.errorCheck(err), "unexpected error: %v", err)
		})
	}
}

func (s *KPIPopulatorServiceSuite) TestPopulateAllPeriodsAndStatus() {
	s.SeedTransaction(s.GetCompany().ID, types.TransactionTypeIncome, 300, s.may(14))

	resp, err := s.service.PopulateAllPeriods(s.GetContext(), s.GetTenant().ID, s.GetCompany().ID)
	s.Require().NoError(err)
	s.Len(resp.Periods, len(types.KPIPeriods))

	s.Equal("2025-05-14", resp.Periods[types.KPIPeriodDaily].WindowStart)
	s.Equal("2025-05-12", resp.Periods[types.KPIPeriodWeekly].WindowStart)
	s.Equal("2025-05-18", resp.Periods[types.KPIPeriodWeekly].WindowEnd)
	s.Equal("2025-04-01", resp.Periods[types.KPIPeriodQuarterly].WindowStart)
	s.Equal("2025-06-30", resp.Periods[types.KPIPeriodQuarterly].WindowEnd)
	s.Equal("2025-12-31", resp.Periods[types.KPIPeriodYearly].WindowEnd)
	for _, period := range types.KPIPeriods {
		s.Equal(300.0, resp.Periods[period].KPIs[types.KPICategoryRevenue].Value, period)
	}
	s.Len(s.GetPublisher().GetEvents(), len(types.KPIPeriods))

	status, err := s.service.GetPopulationStatus(s.GetContext(), s.GetCompany().ID)
	s.Require().NoError(err)
	s.Equal(len(types.KPIPeriods)*len(types.KPICategories), status.TotalRows)
	s.Len(status.Stats, len(types.KPIPeriods)*len(types.KPICategories))
	for _, st := range status.Stats {
		s.Equal(1, st.Count)
		s.NotNil(st.LastPopulatedAt)
	}
}
