package service

import (
	"github.com/biznesassistant/biznesassistant/internal/testutil"
)

// testServiceParams wires every service dependency to the suite's in-memory stores and fixed clock
func testServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		Metrics:         s.GetMetrics(),
		TenantRepo:      stores.TenantRepo,
		CompanyRepo:     stores.CompanyRepo,
		KPIRepo:         stores.KPIRepo,
		TransactionRepo: stores.TransactionRepo,
		InvoiceRepo:     stores.InvoiceRepo,
		ContactRepo:     stores.ContactRepo,
		LeadRepo:        stores.LeadRepo,
		DealRepo:        stores.DealRepo,
		TaskRepo:        stores.TaskRepo,
		EventPublisher:  s.GetPublisher(),
		Now:             s.Clock(),
	}
}
