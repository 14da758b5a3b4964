package service

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	"github.com/biznesassistant/biznesassistant/internal/domain/company"
	"github.com/biznesassistant/biznesassistant/internal/domain/tenant"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

// trialDays is the length of the freemium trial given to self registered tenants
const trialDays = 14

// TenantService creates tenants and guards every request against cross tenant access
type TenantService interface {
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantResponse, error)
	GetTenantByID(ctx context.Context, id string) (*dto.TenantResponse, error)
	// ResolveTenant finds the tenant of a principal, directly or through its company
	ResolveTenant(ctx context.Context, principal *types.Principal) (string, error)
	// ValidateTenantActive loads a tenant, reporting inactive tenants as not found
	ValidateTenantActive(ctx context.Context, tenantID string) (*tenant.Tenant, error)
	// AuthorizeCompany returns the company only if it belongs to the tenant in ctx
	AuthorizeCompany(ctx context.Context, companyID string) (*company.Company, error)
}

type tenantService struct {
	ServiceParams
}

func NewTenantService(
	params ServiceParams,
) TenantService {
	return &tenantService{
		ServiceParams: params,
	}
}

func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	newTenant := req.ToTenant(s.now(), trialDays)
	newCompany := req.ToCompany(newTenant)

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.TenantRepo.Create(txCtx, newTenant); err != nil {
			return err
		}
		return s.CompanyRepo.Create(txCtx, newCompany)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("tenant created",
		"tenant_id", newTenant.ID,
		"company_id", newCompany.ID,
		"tier", newTenant.SubscriptionTier)

	resp := dto.NewTenantResponse(newTenant)
	resp.CompanyID = newCompany.ID
	return resp, nil
}

func (s *tenantService) GetTenantByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	t, err := s.TenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewTenantResponse(t), nil
}

func (s *tenantService) ResolveTenant(ctx context.Context, principal *types.Principal) (string, error) {
	if principal == nil {
		return "", ierr.NewError("missing principal").
			WithHint("Authentication required").
			Mark(ierr.ErrUnauthorized)
	}

	if principal.TenantID != "" {
		return principal.TenantID, nil
	}

	if principal.CompanyID != "" {
		c, err := s.CompanyRepo.GetForPrincipal(ctx, principal.CompanyID)
		if err != nil && !ierr.IsNotFound(err) {
			return "", err
		}
		if c != nil && c.GetTenantID() != "" {
			return c.GetTenantID(), nil
		}
	}

	return "", ierr.NewError("principal has no resolvable tenant").
		WithHint("Your account is not linked to any organisation").
		WithReportableDetails(map[string]any{
			"user_id": principal.UserID,
		}).
		Mark(ierr.ErrUnauthorized)
}

func (s *tenantService) ValidateTenantActive(ctx context.Context, tenantID string) (*tenant.Tenant, error) {
	t, err := s.TenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, tenant.NewTenantInactiveError(tenantID)
	}
	return t, nil
}

func (s *tenantService) AuthorizeCompany(ctx context.Context, companyID string) (*company.Company, error) {
	if companyID == "" {
		return nil, ierr.NewError("company is required").
			WithHint("Select a company for this request").
			Mark(ierr.ErrValidation)
	}

	c, err := s.CompanyRepo.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwned(ctx, c, "company", companyID); err != nil {
		return nil, err
	}
	return c, nil
}

// ensureOwned rejects records of other tenants as if they did not exist
func ensureOwned(ctx context.Context, item types.TenantScoped, entity, id string) error {
	if item.GetTenantID() == "" || item.GetTenantID() != types.GetTenantID(ctx) {
		return ierr.NewErrorf("%s %s not found", entity, id).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
