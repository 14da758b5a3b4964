package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biznesassistant/biznesassistant/internal/auth"
	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/domain/company"
	"github.com/biznesassistant/biznesassistant/internal/domain/tenant"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/biznesassistant/biznesassistant/internal/testutil"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ierr.ErrorResponse {
	t.Helper()
	var resp ierr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorHandlerRendersHintCodeAndDetails(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logger.NewNopLogger(), nil))
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(ierr.NewError("limit").
			WithHint("Monthly limit reached").
			WithReportableDetails(map[string]any{"resource": "transactions"}).
			Mark(ierr.ErrUsageLimitExceeded))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	resp := decodeError(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, ierr.ErrCodeUsageLimitExceeded, resp.Error.Code)
	assert.Equal(t, "Monthly limit reached", resp.Error.Display)
	assert.Equal(t, "transactions", resp.Error.Details["resource"])
}

func TestRequestIDIsEchoedOrGenerated(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, types.GetRequestID(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(types.HeaderRequestID, "req-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(types.HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(types.HeaderRequestID))
}

func TestTenantRateLimiter(t *testing.T) {
	limiter := NewTenantRateLimiter(1, 2, logger.NewNopLogger())

	r := gin.New()
	r.Use(ErrorHandler(logger.NewNopLogger(), nil))
	r.Use(func(c *gin.Context) {
		ctx := types.SetTenantID(c.Request.Context(), c.GetHeader("X-Tenant"))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.Use(limiter.Middleware())
	r.POST("/populate", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(tenantID string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/populate", nil)
		req.Header.Set("X-Tenant", tenantID)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("tenant_a"))
	assert.Equal(t, http.StatusOK, call("tenant_a"))
	assert.Equal(t, http.StatusTooManyRequests, call("tenant_a"))

	// buckets are per tenant
	assert.Equal(t, http.StatusOK, call("tenant_b"))
}

func TestTenantRateLimiterDisabled(t *testing.T) {
	limiter := NewTenantRateLimiter(0, 0, logger.NewNopLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(types.SetTenantID(c.Request.Context(), "tenant_a"))
		c.Next()
	})
	r.Use(limiter.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

type authFixture struct {
	cfg     *config.Configuration
	tokens  auth.Provider
	router  *gin.Engine
	tenant  *tenant.Tenant
	company *company.Company
	foreign *company.Company
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = "middleware-secret"
	cfg.Auth.AllowCompanyHeader = true

	tenants := testutil.NewInMemoryTenantStore()
	companies := testutil.NewInMemoryCompanyStore()
	ctx := context.Background()

	f := &authFixture{cfg: cfg, tokens: auth.NewProvider(cfg)}
	f.tenant = &tenant.Tenant{ID: "tenant_1", TaxID: "301111111", IsActive: true}
	require.NoError(t, tenants.Create(ctx, f.tenant))
	require.NoError(t, tenants.Create(ctx, &tenant.Tenant{ID: "tenant_off", TaxID: "302222222", IsActive: false}))
	require.NoError(t, tenants.Create(ctx, &tenant.Tenant{ID: "tenant_2", TaxID: "303333333", IsActive: true}))

	f.company = &company.Company{ID: "comp_1", TenantID: lo.ToPtr("tenant_1")}
	f.foreign = &company.Company{ID: "comp_2", TenantID: lo.ToPtr("tenant_2")}
	require.NoError(t, companies.Create(ctx, f.company))
	require.NoError(t, companies.Create(ctx, f.foreign))

	tenantService := service.NewTenantService(service.ServiceParams{
		Logger:      logger.NewNopLogger(),
		Config:      cfg,
		TenantRepo:  tenants,
		CompanyRepo: companies,
	})

	f.router = gin.New()
	f.router.Use(ErrorHandler(logger.NewNopLogger(), nil))
	f.router.Use(AuthenticateMiddleware(cfg, logger.NewNopLogger(), tenantService))
	f.router.GET("/whoami", RequireCompany, func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"tenant_id":  types.GetTenantID(ctx),
			"company_id": types.GetCompanyID(ctx),
			"user_id":    types.GetUserID(ctx),
		})
	})
	return f
}

func (f *authFixture) call(t *testing.T, principal *types.Principal, companyHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if principal != nil {
		token, err := f.tokens.GenerateToken(*principal)
		require.NoError(t, err)
		req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	}
	if companyHeader != "" {
		req.Header.Set(types.HeaderCompanyID, companyHeader)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMiddleware(t *testing.T) {
	f := newAuthFixture(t)

	tests := []struct {
		name          string
		principal     *types.Principal
		companyHeader string
		wantStatus    int
		wantTenant    string
	}{
		{"tenant_and_company_claims", &types.Principal{UserID: "u1", TenantID: "tenant_1", CompanyID: "comp_1"}, "", http.StatusOK, "tenant_1"},
		{"tenant_resolved_from_company", &types.Principal{UserID: "u1", CompanyID: "comp_1"}, "", http.StatusOK, "tenant_1"},
		{"company_from_header", &types.Principal{UserID: "u1", TenantID: "tenant_1"}, "comp_1", http.StatusOK, "tenant_1"},
		{"no_token", nil, "", http.StatusUnauthorized, ""},
		{"no_tenant_or_company", &types.Principal{UserID: "u1"}, "", http.StatusUnauthorized, ""},
		{"inactive_tenant", &types.Principal{UserID: "u1", TenantID: "tenant_off"}, "comp_1", http.StatusNotFound, ""},
		{"foreign_company", &types.Principal{UserID: "u1", TenantID: "tenant_1", CompanyID: "comp_2"}, "", http.StatusNotFound, ""},
		{"no_company", &types.Principal{UserID: "u1", TenantID: "tenant_1"}, "", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.call(t, tt.principal, tt.companyHeader)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantTenant, body["tenant_id"])
			assert.Equal(t, "comp_1", body["company_id"])
			assert.Equal(t, "u1", body["user_id"])
		})
	}
}

func TestAuthenticateMiddlewareRejectsMalformedHeader(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(types.HeaderAuthorization, "Token abc")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, ierr.ErrCodeUnauthorized, decodeError(t, w).Error.Code)
}
