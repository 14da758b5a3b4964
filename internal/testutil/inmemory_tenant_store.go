package testutil

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/domain/company"
	"github.com/biznesassistant/biznesassistant/internal/domain/tenant"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/samber/lo"
)

type InMemoryTenantStore struct {
	*InMemoryStore[*tenant.Tenant]
}

func NewInMemoryTenantStore() *InMemoryTenantStore {
	return &InMemoryTenantStore{
		InMemoryStore: NewInMemoryStore(func(t *tenant.Tenant) *tenant.Tenant {
			c := *t
			return &c
		}),
	}
}

func (s *InMemoryTenantStore) Create(ctx context.Context, t *tenant.Tenant) error {
	if t == nil {
		return ierr.NewError("tenant cannot be nil").Mark(ierr.ErrValidation)
	}

	taken := s.Count(ctx, func(_ context.Context, existing *tenant.Tenant) bool {
		return t.TaxID != "" && existing.TaxID == t.TaxID
	})
	if taken > 0 {
		return ierr.NewError("tenant tax id already registered").
			WithHint("A tenant with this tax ID already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	t.UpdatedAt = t.CreatedAt
	return s.InMemoryStore.Create(ctx, t.ID, t)
}

func (s *InMemoryTenantStore) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, tenant.NewTenantNotFoundError(id)
	}
	return t, nil
}

func (s *InMemoryTenantStore) List(ctx context.Context) ([]*tenant.Tenant, error) {
	return s.InMemoryStore.List(ctx, nil, func(i, j *tenant.Tenant) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	}), nil
}

type InMemoryCompanyStore struct {
	*InMemoryStore[*company.Company]
}

func NewInMemoryCompanyStore() *InMemoryCompanyStore {
	return &InMemoryCompanyStore{
		InMemoryStore: NewInMemoryStore(func(c *company.Company) *company.Company {
			cp := *c
			if c.TenantID != nil {
				cp.TenantID = lo.ToPtr(*c.TenantID)
			}
			return &cp
		}),
	}
}

func (s *InMemoryCompanyStore) Create(ctx context.Context, c *company.Company) error {
	if c == nil {
		return ierr.NewError("company cannot be nil").Mark(ierr.ErrValidation)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UpdatedAt = c.CreatedAt
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryCompanyStore) Get(ctx context.Context, id string) (*company.Company, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !InTenant(ctx, c) {
		return nil, ierr.NewErrorf("company %s not found", id).
			WithHint("Company not found").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryCompanyStore) GetForPrincipal(ctx context.Context, id string) (*company.Company, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("company %s not found", id).
			WithHint("Company not found").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}
