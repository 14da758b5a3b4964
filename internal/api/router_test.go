package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "github.com/biznesassistant/biznesassistant/internal/api/v1"
	"github.com/biznesassistant/biznesassistant/internal/auth"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/sentry"
	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/biznesassistant/biznesassistant/internal/testutil"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
	token  string
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	cfg := s.GetConfig()
	cfg.Auth.Secret = "router-test-secret"

	stores := s.GetStores()
	params := service.ServiceParams{
		Logger:          s.GetLogger(),
		Config:          cfg,
		DB:              s.GetDB(),
		Metrics:         s.GetMetrics(),
		TenantRepo:      stores.TenantRepo,
		CompanyRepo:     stores.CompanyRepo,
		KPIRepo:         stores.KPIRepo,
		TransactionRepo: stores.TransactionRepo,
		InvoiceRepo:     stores.InvoiceRepo,
		ContactRepo:     stores.ContactRepo,
		LeadRepo:        stores.LeadRepo,
		DealRepo:        stores.DealRepo,
		TaskRepo:        stores.TaskRepo,
		EventPublisher:  s.GetPublisher(),
		Now:             s.Clock(),
	}

	tenantService := service.NewTenantService(params)
	usageService := service.NewUsageService(params)
	handlers := Handlers{
		Health: v1.NewHealthHandler(s.GetLogger()),
		KPI: v1.NewKPIHandler(
			service.NewKPIService(params),
			service.NewTrendService(params),
			service.NewKPIPopulatorService(params),
			s.GetLogger(),
		),
		Usage:  v1.NewUsageHandler(usageService, s.GetLogger()),
		Record: v1.NewRecordHandler(service.NewRecordService(params, usageService), s.GetLogger()),
		Tenant: v1.NewTenantHandler(tenantService, s.GetLogger()),
	}

	s.router = NewRouter(handlers, RouterParams{
		Config:        cfg,
		Logger:        s.GetLogger(),
		Metrics:       s.GetMetrics(),
		Sentry:        sentry.NewSentryService(cfg, s.GetLogger()),
		TenantService: tenantService,
	})

	token, err := auth.NewProvider(cfg).GenerateToken(types.Principal{
		UserID:    "user_1",
		TenantID:  s.GetTenant().ID,
		CompanyID: s.GetCompany().ID,
	})
	s.Require().NoError(err)
	s.token = token
}

func (s *RouterSuite) do(method, path string, body any, authenticated bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set(types.HeaderAuthorization, "Bearer "+s.token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *RouterSuite) errorCode(w *httptest.ResponseRecorder) string {
	var resp ierr.ErrorResponse
	s.decode(w, &resp)
	return resp.Error.Code
}

func (s *RouterSuite) TestPublicEndpoints() {
	w := s.do(http.MethodGet, "/health", nil, false)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", nil, false)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "biznes_http_requests_total")
}

func (s *RouterSuite) TestRequiresAuthentication() {
	w := s.do(http.MethodGet, "/v1/kpis", nil, false)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(ierr.ErrCodeUnauthorized, s.errorCode(w))
}

func (s *RouterSuite) TestGetKPIs() {
	s.SeedTransaction(s.GetCompany().ID, types.TransactionTypeIncome, 1000, s.GetNow().AddDate(0, 0, -1))

	w := s.do(http.MethodGet, "/v1/kpis?period=monthly", nil, true)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var kpis []map[string]any
	s.decode(w, &kpis)
	s.Len(kpis, len(types.KPICategories))
	s.Equal("revenue", kpis[0]["category"])
	s.InDelta(1000.0, kpis[0]["value"], 0.001)

	w = s.do(http.MethodGet, "/v1/kpis?period=hourly", nil, true)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(ierr.ErrCodeValidation, s.errorCode(w))
}

func (s *RouterSuite) TestTrendAndForecast() {
	w := s.do(http.MethodGet, "/v1/kpi/trend/revenue?months=3", nil, true)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var trend map[string]any
	s.decode(w, &trend)
	s.Equal("revenue", trend["category"])
	s.Len(trend["trend_data"], 3)

	w = s.do(http.MethodGet, "/v1/kpi/trend/revenue", nil, true)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &trend)
	s.Len(trend["trend_data"], types.DefaultTrendMonths)

	w = s.do(http.MethodGet, "/v1/kpi/trend/weekly_revenue", nil, true)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/v1/kpi/trend/revenue?period_type=weekly", nil, true)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(ierr.ErrCodeNotSupported, s.errorCode(w))

	// an empty history is flat, nothing to fit
	w = s.do(http.MethodPost, "/v1/kpi/forecast", map[string]any{"kpi_category": "revenue"}, true)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal(ierr.ErrCodeInsufficientData, s.errorCode(w))
}

func (s *RouterSuite) TestPopulate() {
	w := s.do(http.MethodPost, "/v1/kpi/populate?period=monthly", nil, true)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	s.decode(w, &resp)
	s.EqualValues(7, resp["categories_populated"])
	s.EqualValues(7, resp["total_categories"])
	s.NotEmpty(resp["populated_at"])

	w = s.do(http.MethodGet, "/v1/kpi/populate/status", nil, true)
	s.Require().Equal(http.StatusOK, w.Code)
	var status map[string]any
	s.decode(w, &status)
	s.EqualValues(7, status["total_rows"])
}

func (s *RouterSuite) TestPopulateIsRateLimited() {
	// the default config allows a burst of two
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/v1/kpi/populate", nil, true).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/v1/kpi/populate", nil, true).Code)

	w := s.do(http.MethodPost, "/v1/kpi/populate", nil, true)
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.Equal(ierr.ErrCodeTooManyRequests, s.errorCode(w))
}

func (s *RouterSuite) TestUsageAndQuota() {
	w := s.do(http.MethodGet, "/v1/usage/current-usage", nil, true)
	s.Require().Equal(http.StatusOK, w.Code)
	var usage map[string]any
	s.decode(w, &usage)
	s.Equal(true, usage["can_create_transaction"])
	s.Equal(string(types.SubscriptionTierFreemium), usage["subscription_tier"])

	for i := 0; i < 30; i++ {
		s.SeedTransaction(s.GetCompany().ID, types.TransactionTypeExpense, 10, s.GetNow().Add(-time.Hour))
	}

	w = s.do(http.MethodPost, "/v1/transactions", map[string]any{
		"type":     "Income",
		"category": "sales",
		"amount":   "250",
	}, true)
	s.Equal(http.StatusPaymentRequired, w.Code)
	s.Equal(ierr.ErrCodeUsageLimitExceeded, s.errorCode(w))

	w = s.do(http.MethodGet, "/v1/usage/stats", nil, true)
	s.Require().Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestCreateTransaction() {
	w := s.do(http.MethodPost, "/v1/transactions", map[string]any{
		"type":     " INCOME ",
		"category": "sales",
		"amount":   "250",
	}, true)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var txn map[string]any
	s.decode(w, &txn)
	s.Equal("income", txn["type"])

	w = s.do(http.MethodPost, "/v1/transactions", map[string]any{
		"type":     "refund",
		"category": "sales",
		"amount":   "250",
	}, true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestTenants() {
	w := s.do(http.MethodGet, "/v1/tenants/"+s.GetTenant().ID, nil, true)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/tenants/tenant_someone_else", nil, true)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/v1/tenants", map[string]any{
		"name":   "Samarqand Textile",
		"tax_id": "305555555",
	}, false)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	s.decode(w, &created)
	s.Equal(string(types.SubscriptionTierFreemium), created["subscription_tier"])
	s.NotEmpty(created["company_id"])
}
