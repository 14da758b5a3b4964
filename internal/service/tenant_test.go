package service

import (
	"context"
	"testing"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	"github.com/biznesassistant/biznesassistant/internal/domain/company"
	"github.com/biznesassistant/biznesassistant/internal/domain/tenant"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/testutil"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type TenantServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TenantService
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceSuite))
}

func (s *TenantServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewTenantService(testServiceParams(&s.BaseServiceTestSuite))
}

// seedForeignTenant creates a second tenant with its own company
func (s *TenantServiceSuite) seedForeignTenant(active bool) (*tenant.Tenant, *company.Company) {
	other := &tenant.Tenant{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:               "Samarqand Oziq",
		TaxID:              "309876543",
		SubscriptionTier:   types.SubscriptionTierProfessional,
		SubscriptionStatus: types.SubscriptionStatusActive,
		IsActive:           active,
		CreatedAt:          s.GetNow(),
	}
	s.Require().NoError(s.GetStores().TenantRepo.Create(context.Background(), other))

	otherCompany := &company.Company{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMPANY),
		TenantID:  lo.ToPtr(other.ID),
		Name:      "Samarqand Oziq MChJ",
		TaxID:     "309876543",
		IsActive:  true,
		CreatedAt: s.GetNow(),
	}
	s.Require().NoError(s.GetStores().CompanyRepo.Create(context.Background(), otherCompany))
	return other, otherCompany
}

func (s *TenantServiceSuite) TestCreateTenant() {
	testCases := []struct {
		name          string
		request       dto.CreateTenantRequest
		expectedError bool
		errorCheck    func(error) bool
		check         func(*dto.TenantResponse)
	}{
		{
			name: "freemium_trial_by_default",
			request: dto.CreateTenantRequest{
				Name:  "Buxoro Tekstil",
				TaxID: "305555555",
			},
			check: func(resp *dto.TenantResponse) {
				s.Equal(types.SubscriptionTierFreemium, resp.SubscriptionTier)
				s.Equal(types.SubscriptionStatusTrial, resp.SubscriptionStatus)
				s.True(resp.IsActive)
				s.NotEmpty(resp.CompanyID)
			},
		},
		{
			name: "explicit_tier",
			request: dto.CreateTenantRequest{
				Name:             "Farg'ona Agro",
				TaxID:            "306666666",
				SubscriptionTier: types.SubscriptionTierProfessional,
				CompanyName:      "Farg'ona Agro MChJ",
			},
			check: func(resp *dto.TenantResponse) {
				s.Equal(types.SubscriptionTierProfessional, resp.SubscriptionTier)
				s.Equal(types.SubscriptionStatusActive, resp.SubscriptionStatus)
			},
		},
		{
			name: "tax_id_must_be_nine_digits",
			request: dto.CreateTenantRequest{
				Name:  "Short",
				TaxID: "1234",
			},
			expectedError: true,
			errorCheck:    ierr.IsValidation,
		},
		{
			name: "duplicate_tax_id",
			request: dto.CreateTenantRequest{
				Name:  "Copy",
				TaxID: "301234567",
			},
			expectedError: true,
			errorCheck:    ierr.IsAlreadyExists,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreateTenant(s.GetContext(), tc.request)
			if tc.expectedError {
				s.Error(err)
				s.Nil(resp)
				s.True(tc.errorCheck(err), "unexpected error: %v", err)
				return
			}

			s.NoError(err)
			s.Require().NotNil(resp)
			tc.check(resp)

			ctx := types.SetTenantID(context.Background(), resp.ID)
			c, err := s.GetStores().CompanyRepo.Get(ctx, resp.CompanyID)
			s.NoError(err)
			s.Equal(resp.ID, c.GetTenantID())
		})
	}
}

func (s *TenantServiceSuite) TestResolveTenant() {
	testCases := []struct {
		name          string
		principal     *types.Principal
		expected      string
		expectedError bool
	}{
		{
			name:      "tenant_claim",
			principal: &types.Principal{UserID: "u1", TenantID: s.GetTenant().ID},
			expected:  s.GetTenant().ID,
		},
		{
			name:      "through_company",
			principal: &types.Principal{UserID: "u1", CompanyID: s.GetCompany().ID},
			expected:  s.GetTenant().ID,
		},
		{
			name:          "unknown_company",
			principal:     &types.Principal{UserID: "u1", CompanyID: "comp_missing"},
			expectedError: true,
		},
		{
			name:          "no_claims",
			principal:     &types.Principal{UserID: "u1"},
			expectedError: true,
		},
		{
			name:          "no_principal",
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tenantID, err := s.service.ResolveTenant(context.Background(), tc.principal)
			if tc.expectedError {
				s.Error(err)
				s.True(ierr.IsUnauthorized(err))
				return
			}
			s.NoError(err)
			s.Equal(tc.expected, tenantID)
		})
	}
}

func (s *TenantServiceSuite) TestValidateTenantActive() {
	inactive, _ := s.seedForeignTenant(false)

	t, err := s.service.ValidateTenantActive(s.GetContext(), s.GetTenant().ID)
	s.NoError(err)
	s.Equal(s.GetTenant().ID, t.ID)

	_, err = s.service.ValidateTenantActive(s.GetContext(), inactive.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.ValidateTenantActive(s.GetContext(), "tenant_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TenantServiceSuite) TestAuthorizeCompany() {
	_, foreignCompany := s.seedForeignTenant(true)

	c, err := s.service.AuthorizeCompany(s.GetContext(), s.GetCompany().ID)
	s.NoError(err)
	s.Equal(s.GetCompany().ID, c.ID)

	// another tenant's company is indistinguishable from a missing one
	_, err = s.service.AuthorizeCompany(s.GetContext(), foreignCompany.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.AuthorizeCompany(s.GetContext(), "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
