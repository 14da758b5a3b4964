package company

import "context"

type Repository interface {
	Create(ctx context.Context, company *Company) error
	// Get returns the company only if it belongs to the tenant in ctx
	Get(ctx context.Context, id string) (*Company, error)
	// GetForPrincipal looks a company up without a tenant in ctx.
	// It exists for tenant resolution and must not be used for data access.
	GetForPrincipal(ctx context.Context, id string) (*Company, error)
}
