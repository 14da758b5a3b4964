package tenant

import "context"

// Repository is the only store read without a tenant in context,
// since it is what establishes the tenant in the first place.
type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	List(ctx context.Context) ([]*Tenant, error)
}
