package repository

import (
	"github.com/biznesassistant/biznesassistant/internal/cache"
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
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	postgresRepo "github.com/biznesassistant/biznesassistant/internal/repository/postgres"
)

func NewTenantRepository(db *postgres.DB, logger *logger.Logger, c cache.Cache, cfg *config.Configuration) tenant.Repository {
	return postgresRepo.NewTenantRepository(db, logger, c, cfg)
}

func NewCompanyRepository(db *postgres.DB, logger *logger.Logger) company.Repository {
	return postgresRepo.NewCompanyRepository(db, logger)
}

func NewKPIRepository(db *postgres.DB, logger *logger.Logger) kpi.Repository {
	return postgresRepo.NewKPIRepository(db, logger)
}

func NewTransactionRepository(db *postgres.DB, logger *logger.Logger) transaction.Repository {
	return postgresRepo.NewTransactionRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewContactRepository(db *postgres.DB, logger *logger.Logger) contact.Repository {
	return postgresRepo.NewContactRepository(db, logger)
}

func NewLeadRepository(db *postgres.DB, logger *logger.Logger) lead.Repository {
	return postgresRepo.NewLeadRepository(db, logger)
}

func NewDealRepository(db *postgres.DB, logger *logger.Logger) deal.Repository {
	return postgresRepo.NewDealRepository(db, logger)
}

func NewTaskRepository(db *postgres.DB, logger *logger.Logger) task.Repository {
	return postgresRepo.NewTaskRepository(db, logger)
}
