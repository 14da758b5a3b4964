package postgres

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/cache"
	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/domain/tenant"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
)

type tenantRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
	ttl    time.Duration
}

func NewTenantRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache, cfg *config.Configuration) tenant.Repository {
	return &tenantRepository{
		db:     db,
		logger: logger,
		cache:  cache,
		ttl:    time.Duration(cfg.Cache.TenantTTLSeconds) * time.Second,
	}
}

const tenantColumns = `id, name, tax_id, subscription_tier, subscription_status,
	is_active, trial_ends_at, created_at, updated_at`

func (r *tenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	r.logger.Debugw("creating tenant", "tenant_id", t.ID, "name", t.Name)

	query := `
	INSERT INTO tenants (` + tenantColumns + `)
	VALUES (
		:id, :name, :tax_id, :subscription_tier, :subscription_status,
		:is_active, :trial_ends_at, :created_at, :updated_at
	)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t); err != nil {
		return wrapError(err, "Tenant", "Failed to create tenant", map[string]interface{}{
			"tenant_id": t.ID,
			"tax_id":    t.TaxID,
		})
	}
	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	key := cache.GenerateKey(cache.PrefixTenant, id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if t, ok := cached.(*tenant.Tenant); ok {
			return t, nil
		}
	}

	span := StartRepositorySpan(ctx, "tenant", "get_by_id", map[string]interface{}{
		"tenant_id": id,
	})
	defer FinishSpan(span)

	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	var t tenant.Tenant
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &t, query, id); err != nil {
		SetSpanError(span, err)
		return nil, wrapError(err, "Tenant", "Failed to retrieve tenant", map[string]interface{}{
			"tenant_id": id,
		})
	}

	SetSpanSuccess(span)
	r.cache.Set(ctx, key, &t, r.ttl)
	return &t, nil
}

func (r *tenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC`

	var tenants []*tenant.Tenant
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &tenants, query); err != nil {
		return nil, wrapError(err, "Tenant", "Failed to list tenants", nil)
	}
	return tenants, nil
}
