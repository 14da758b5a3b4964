package testutil

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/domain/company"
	"github.com/biznesassistant/biznesassistant/internal/domain/contact"
	"github.com/biznesassistant/biznesassistant/internal/domain/deal"
	"github.com/biznesassistant/biznesassistant/internal/domain/invoice"
	"github.com/biznesassistant/biznesassistant/internal/domain/kpi"
	"github.com/biznesassistant/biznesassistant/internal/domain/lead"
	"github.com/biznesassistant/biznesassistant/internal/domain/task"
	"github.com/biznesassistant/biznesassistant/internal/domain/tenant"
	"github.com/biznesassistant/biznesassistant/internal/domain/transaction"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/metrics"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/biznesassistant/biznesassistant/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	TenantRepo      tenant.Repository
	CompanyRepo     company.Repository
	KPIRepo         kpi.Repository
	TransactionRepo transaction.Repository
	InvoiceRepo     invoice.Repository
	ContactRepo     contact.Repository
	LeadRepo        lead.Repository
	DealRepo        deal.Repository
	TaskRepo        task.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	publisher *InMemoryEventPublisher
	db        *MockPostgresClient
	logger    *logger.Logger
	config    *config.Configuration
	metrics   *metrics.Metrics
	now       time.Time

	tenant  *tenant.Tenant
	company *company.Company
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	s.config.Logging.Level = types.LogLevelInfo

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	// Wednesday, mid month, mid quarter
	s.now = time.Date(2025, time.May, 14, 10, 30, 0, 0, time.UTC)
	s.setupStores()
	s.setupTenant()
	s.setupContext()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxTenantID, s.tenant.ID)
	s.ctx = context.WithValue(s.ctx, types.CtxCompanyID, s.company.ID)
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		TenantRepo:      NewInMemoryTenantStore(),
		CompanyRepo:     NewInMemoryCompanyStore(),
		KPIRepo:         NewInMemoryKPIStore(),
		TransactionRepo: NewInMemoryTransactionStore(),
		InvoiceRepo:     NewInMemoryInvoiceStore(),
		ContactRepo:     NewInMemoryContactStore(),
		LeadRepo:        NewInMemoryLeadStore(),
		DealRepo:        NewInMemoryDealStore(),
		TaskRepo:        NewInMemoryTaskStore(),
	}

	s.db = NewMockPostgresClient(s.logger, s.snapshotters()...)
	s.publisher = NewInMemoryEventPublisher()
	s.metrics = metrics.NewMetrics()
}

// setupTenant seeds an active freemium tenant owning one company
func (s *BaseServiceTestSuite) setupTenant() {
	ctx := context.Background()

	s.tenant = &tenant.Tenant{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:               "Toshkent Savdo",
		TaxID:              "301234567",
		SubscriptionTier:   types.SubscriptionTierFreemium,
		SubscriptionStatus: types.SubscriptionStatusActive,
		IsActive:           true,
		CreatedAt:          s.now.AddDate(0, -6, 0),
	}
	s.Require().NoError(s.stores.TenantRepo.Create(ctx, s.tenant))

	s.company = &company.Company{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMPANY),
		TenantID:  lo.ToPtr(s.tenant.ID),
		Name:      "Toshkent Savdo MChJ",
		TaxID:     "301234567",
		IsActive:  true,
		CreatedAt: s.now.AddDate(0, -6, 0),
	}
	s.Require().NoError(s.stores.CompanyRepo.Create(ctx, s.company))
}

func (s *BaseServiceTestSuite) snapshotters() []Snapshotter {
	return []Snapshotter{
		s.stores.KPIRepo.(*InMemoryKPIStore),
		s.stores.TransactionRepo.(*InMemoryTransactionStore),
		s.stores.InvoiceRepo.(*InMemoryInvoiceStore),
		s.stores.ContactRepo.(*InMemoryContactStore),
		s.stores.LeadRepo.(*InMemoryLeadStore),
		s.stores.DealRepo.(*InMemoryDealStore),
		s.stores.TaskRepo.(*InMemoryTaskStore),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.TenantRepo.(*InMemoryTenantStore).Clear()
	s.stores.CompanyRepo.(*InMemoryCompanyStore).Clear()
	s.stores.KPIRepo.(*InMemoryKPIStore).Clear()
	s.stores.TransactionRepo.(*InMemoryTransactionStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.ContactRepo.(*InMemoryContactStore).Clear()
	s.stores.LeadRepo.(*InMemoryLeadStore).Clear()
	s.stores.DealRepo.(*InMemoryDealStore).Clear()
	s.stores.TaskRepo.(*InMemoryTaskStore).Clear()
	s.publisher.Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context, scoped to the seeded tenant and company
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPublisher returns the test event publisher
func (s *BaseServiceTestSuite) GetPublisher() *InMemoryEventPublisher {
	return s.publisher
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetMetrics returns a registry private to the current test
func (s *BaseServiceTestSuite) GetMetrics() *metrics.Metrics {
	return s.metrics
}

// GetNow returns the fixed test clock
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// Clock returns a func usable wherever services take a clock
func (s *BaseServiceTestSuite) Clock() func() time.Time {
	return func() time.Time { return s.now }
}

// GetTenant returns the seeded tenant
func (s *BaseServiceTestSuite) GetTenant() *tenant.Tenant {
	return s.tenant
}

// GetCompany returns the seeded company
func (s *BaseServiceTestSuite) GetCompany() *company.Company {
	return s.company
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}

// SetTier switches the seeded tenant to another subscription tier
func (s *BaseServiceTestSuite) SetTier(tier types.SubscriptionTier) {
	s.tenant.SubscriptionTier = tier
	s.Require().NoError(s.stores.TenantRepo.(*InMemoryTenantStore).Update(s.ctx, s.tenant.ID, s.tenant))
}

// SeedTransaction books a transaction dated and created on the given day
func (s *BaseServiceTestSuite) SeedTransaction(companyID string, txnType types.TransactionType, amount int64, at time.Time) *transaction.Transaction {
	txn := &transaction.Transaction{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSACTION),
		CompanyID: companyID,
		Type:      txnType,
		Category:  "general",
		Amount:    decimal.NewFromInt(amount),
		Date:      at,
		BaseModel: s.baseModelAt(at),
	}
	s.Require().NoError(s.stores.TransactionRepo.Create(s.ctx, txn))
	return txn
}

// SeedContact creates a contact created at the given time
func (s *BaseServiceTestSuite) SeedContact(companyID string, at time.Time) *contact.Contact {
	c := &contact.Contact{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTACT),
		CompanyID: companyID,
		Name:      "Mijoz",
		BaseModel: s.baseModelAt(at),
	}
	s.Require().NoError(s.stores.ContactRepo.Create(s.ctx, c))
	return c
}

// SeedInvoice creates an invoice created at the given time
func (s *BaseServiceTestSuite) SeedInvoice(companyID string, status types.InvoiceStatus, due, at time.Time) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CompanyID:     companyID,
		InvoiceNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE),
		InvoiceStatus: status,
		IssueDate:     at,
		DueDate:       due,
		TotalAmount:   decimal.NewFromInt(100),
		BaseModel:     s.baseModelAt(at),
	}
	s.Require().NoError(s.stores.InvoiceRepo.Create(s.ctx, inv))
	return inv
}

// SeedLead creates a lead created at the given time
func (s *BaseServiceTestSuite) SeedLead(companyID string, status types.LeadStatus, at time.Time) *lead.Lead {
	l := &lead.Lead{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEAD),
		CompanyID:  companyID,
		Title:      "Lead",
		LeadStatus: status,
		BaseModel:  s.baseModelAt(at),
	}
	s.Require().NoError(s.stores.LeadRepo.Create(s.ctx, l))
	return l
}

// SeedDeal creates a deal created at the given time
func (s *BaseServiceTestSuite) SeedDeal(companyID string, status types.DealStatus, at time.Time) *deal.Deal {
	d := &deal.Deal{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DEAL),
		CompanyID:  companyID,
		Title:      "Deal",
		Amount:     decimal.NewFromInt(500),
		DealStatus: status,
		BaseModel:  s.baseModelAt(at),
	}
	s.Require().NoError(s.stores.DealRepo.Create(s.ctx, d))
	return d
}

// SeedTask creates a task created at the given time
func (s *BaseServiceTestSuite) SeedTask(companyID string, at time.Time) *task.Task {
	t := &task.Task{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TASK),
		CompanyID:  companyID,
		Title:      "Task",
		TaskStatus: types.TaskStatusPending,
		Priority:   types.TaskPriorityMedium,
		BaseModel:  s.baseModelAt(at),
	}
	s.Require().NoError(s.stores.TaskRepo.Create(s.ctx, t))
	return t
}

func (s *BaseServiceTestSuite) baseModelAt(at time.Time) types.BaseModel {
	base := types.GetDefaultBaseModel(s.ctx)
	base.CreatedAt = at.UTC()
	base.UpdatedAt = at.UTC()
	return base
}
