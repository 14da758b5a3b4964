package service

import (
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
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/publisher"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger  *logger.Logger
	Config  *config.Configuration
	DB      postgres.IClient
	Metrics *metrics.Metrics

	// Repositories
	TenantRepo      tenant.Repository
	CompanyRepo     company.Repository
	KPIRepo         kpi.Repository
	TransactionRepo transaction.Repository
	InvoiceRepo     invoice.Repository
	ContactRepo     contact.Repository
	LeadRepo        lead.Repository
	DealRepo        deal.Repository
	TaskRepo        task.Repository

	EventPublisher publisher.EventPublisher

	// Now is the clock every window is derived from
	Now func() time.Time
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	metrics *metrics.Metrics,
	tenantRepo tenant.Repository,
	companyRepo company.Repository,
	kpiRepo kpi.Repository,
	transactionRepo transaction.Repository,
	invoiceRepo invoice.Repository,
	contactRepo contact.Repository,
	leadRepo lead.Repository,
	dealRepo deal.Repository,
	taskRepo task.Repository,
	eventPublisher publisher.EventPublisher,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		DB:              db,
		Metrics:         metrics,
		TenantRepo:      tenantRepo,
		CompanyRepo:     companyRepo,
		KPIRepo:         kpiRepo,
		TransactionRepo: transactionRepo,
		InvoiceRepo:     invoiceRepo,
		ContactRepo:     contactRepo,
		LeadRepo:        leadRepo,
		DealRepo:        dealRepo,
		TaskRepo:        taskRepo,
		EventPublisher:  eventPublisher,
		Now:             func() time.Time { return time.Now().UTC() },
	}
}

func (p ServiceParams) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}
	return p.Now().UTC()
}
