package service

import (
	"testing"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/testutil"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type TrendServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TrendService
}

func TestTrendService(t *testing.T) {
	suite.Run(t, new(TrendServiceSuite))
}

func (s *TrendServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.GetConfig().KPI.TrendBucketMode = types.TrendBucketCalendar
	s.service = NewTrendService(testServiceParams(&s.BaseServiceTestSuite))
}

// seedLinearRevenue books 100, 200, ... on the 5th of each of the last n months, oldest first
func (s *TrendServiceSuite) seedLinearRevenue(n int) {
	first := types.StartOfMonth(s.GetNow()).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		s.SeedTransaction(s.GetCompany().ID, types.TransactionTypeIncome, int64(100*(i+1)), first.AddDate(0, i, 4))
	}
}

func (s *TrendServiceSuite) TestGenerateTrend() {
	s.seedLinearRevenue(6)

	resp, err := s.service.GenerateTrend(s.GetContext(), s.GetCompany().ID, types.KPICategoryRevenue, types.KPIPeriodMonthly, 6)
	s.Require().NoError(err)
	s.Require().Len(resp.TrendData, 6)

	dates := lo.Map(resp.TrendData, func(p dto.TrendPoint, _ int) string { return p.Date })
	s.Equal([]string{"2024-12-01", "2025-01-01", "2025-02-01", "2025-03-01", "2025-04-01", "2025-05-01"}, dates)

	for i, p := range resp.TrendData {
		s.Equal(float64(100*(i+1)), p.Value)
		s.False(p.Forecast)
	}
}

func (s *TrendServiceSuite) TestGenerateTrendProfitAndCounts() {
	companyID := s.GetCompany().ID
	april := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	s.SeedTransaction(companyID, types.TransactionTypeIncome, 900, april)
	s.SeedTransaction(companyID, types.TransactionTypeExpense, 300, april)
	s.SeedContact(companyID, april)
	s.SeedContact(companyID, april)

	profit, err := s.service.GenerateTrend(s.GetContext(), companyID, types.KPICategoryProfit, types.KPIPeriodMonthly, 2)
	s.Require().NoError(err)
	s.Equal(600.0, profit.TrendData[0].Value)
	s.Equal(0.0, profit.TrendData[1].Value)

	customers, err := s.service.GenerateTrend(s.GetContext(), companyID, types.KPICategoryCustomers, types.KPIPeriodMonthly, 2)
	s.Require().NoError(err)
	s.Equal(2.0, customers.TrendData[0].Value)
}

func (s *TrendServiceSuite) TestGenerateTrendRejectsUnsupported() {
	testCases := []struct {
		name       string
		category   types.KPICategory
		periodType types.KPIPeriod
		periods    int
		errorCheck func(error) bool
	}{
		{"weekly_not_supported", types.KPICategoryRevenue, types.KPIPeriodWeekly, 12, ierr.IsNotSupported},
		{"unknown_period", types.KPICategoryRevenue, types.KPIPeriod("hourly"), 12, ierr.IsValidation},
		{"unknown_category", types.KPICategory("churn"), types.KPIPeriodMonthly, 12, ierr.IsValidation},
		{"zero_periods", types.KPICategoryRevenue, types.KPIPeriodMonthly, 0, ierr.IsValidation},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.GenerateTrend(s.GetContext(), s.GetCompany().ID, tc.category, tc.periodType, tc.periods)
			s.Error(err)
			s.True(tc.errorCheck(err), "unexpected error: %v", err)
		})
	}
}

func (s *TrendServiceSuite) TestForecastLinear() {
	s.seedLinearRevenue(types.DefaultTrendMonths)

	resp, err := s.service.Forecast(s.GetContext(), s.GetCompany().ID, dto.ForecastRequest{
		KPICategory: types.KPICategoryRevenue,
	})
	s.Require().NoError(err)

	s.Equal(types.KPIPeriodMonthly, resp.PeriodType)
	s.Equal(types.ForecastModelLinearRegression, resp.ModelUsed)
	s.Len(resp.HistoricalData, types.DefaultTrendMonths)
	s.Require().Len(resp.ForecastData, 3)

	for i, p := range resp.ForecastData {
		s.True(p.Forecast)
		s.InDelta(float64(100*(types.DefaultTrendMonths+i+1)), p.Value, 1e-6)
	}
	s.Equal("2025-06-01", resp.ForecastData[0].Date)
	s.Equal("2025-08-01", resp.ForecastData[2].Date)
	s.InDelta(100.0, resp.ConfidenceScore, 1e-6)
}

func (s *TrendServiceSuite) TestForecastClampsAtZero() {
	first := types.StartOfMonth(s.GetNow()).AddDate(0, -(types.DefaultTrendMonths - 1), 0)
	for i := 0; i < types.DefaultTrendMonths; i++ {
		amount := int64(1200 - 100*i)
		if amount > 0 {
			s.SeedTransaction(s.GetCompany().ID, types.TransactionTypeIncome, amount, first.AddDate(0, i, 4))
		}
	}

	resp, err := s.service.Forecast(s.GetContext(), s.GetCompany().ID, dto.ForecastRequest{
		KPICategory:     types.KPICategoryRevenue,
		ForecastPeriods: 12,
	})
	s.Require().NoError(err)
	s.Require().Len(resp.ForecastData, 12)
	for _, p := range resp.ForecastData {
		s.GreaterOrEqual(p.Value, 0.0)
	}
	s.Equal(0.0, resp.ForecastData[11].Value)
}

func (s *TrendServiceSuite) TestForecastInsufficientData() {
	// no records at all: every bucket is zero
	_, err := s.service.Forecast(s.GetContext(), s.GetCompany().ID, dto.ForecastRequest{
		KPICategory: types.KPICategoryRevenue,
	})
	s.Error(err)
	s.True(ierr.IsInsufficientData(err))
}

func (s *TrendServiceSuite) TestForecastValidation() {
	testCases := []struct {
		name       string
		request    dto.ForecastRequest
		errorCheck func(error) bool
	}{
		{
			name:       "horizon_above_twelve",
			request:    dto.ForecastRequest{KPICategory: types.KPICategoryRevenue, ForecastPeriods: 13},
			errorCheck: ierr.IsValidation,
		},
		{
			name:       "missing_category",
			request:    dto.ForecastRequest{},
			errorCheck: ierr.IsValidation,
		},
		{
			name:       "quarterly_not_supported",
			request:    dto.ForecastRequest{KPICategory: types.KPICategoryRevenue, PeriodType: types.KPIPeriodQuarterly},
			errorCheck: ierr.IsNotSupported,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.Forecast(s.GetContext(), s.GetCompany().ID, tc.request)
			s.Nil(resp)
			s.Error(err)
			s.True(tc.errorCheck(err), "unexpected error: %v", err)
		})
	}
}

func (s *TrendServiceSuite) TestLegacyBucketsForecastDates() {
	s.GetConfig().KPI.TrendBucketMode = types.TrendBucketLegacy30d
	s.seedLinearRevenue(types.DefaultTrendMonths)

	resp, err := s.service.Forecast(s.GetContext(), s.GetCompany().ID, dto.ForecastRequest{
		KPICategory:     types.KPICategoryRevenue,
		ForecastPeriods: 1,
	})
	s.Require().NoError(err)

	last, err := types.ParseDate(resp.HistoricalData[len(resp.HistoricalData)-1].Date)
	s.Require().NoError(err)
	s.Equal(types.FormatDate(last.AddDate(0, 0, 30)), resp.ForecastData[0].Date)
}
