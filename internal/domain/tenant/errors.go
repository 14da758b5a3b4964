package tenant

import (
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
)

func NewTenantNotFoundError(id string) error {
	return ierr.NewError("tenant not found").
		WithHint("Tenant not found").
		WithReportableDetails(map[string]any{"tenant_id": id}).
		Mark(ierr.ErrNotFound)
}

// NewTenantInactiveError is reported as not found so inactive tenants are indistinguishable from missing ones
func NewTenantInactiveError(id string) error {
	return ierr.NewError("tenant is inactive").
		WithHint("Tenant not found").
		WithReportableDetails(map[string]any{"tenant_id": id}).
		Mark(ierr.ErrNotFound)
}
