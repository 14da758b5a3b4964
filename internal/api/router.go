package api

import (
	v1 "github.com/biznesassistant/biznesassistant/internal/api/v1"
	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/metrics"
	"github.com/biznesassistant/biznesassistant/internal/rest/middleware"
	"github.com/biznesassistant/biznesassistant/internal/sentry"
	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health *v1.HealthHandler
	KPI    *v1.KPIHandler
	Usage  *v1.UsageHandler
	Record *v1.RecordHandler
	Tenant *v1.TenantHandler
}

// RouterParams carries the cross cutting pieces the router wires into middleware
type RouterParams struct {
	Config        *config.Configuration
	Logger        *logger.Logger
	Metrics       *metrics.Metrics
	Sentry        *sentry.Service
	TenantService service.TenantService
}

func NewRouter(handlers Handlers, params RouterParams) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(params.Config),
		params.Metrics.Middleware(),
		middleware.ErrorHandler(params.Logger, params.Sentry),
	)

	// Health check
	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(params.Metrics.Handler()))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := router.Group("/v1")
	{
		public.POST("/tenants", handlers.Tenant.CreateTenant)
	}

	private := router.Group("/v1")
	private.Use(middleware.AuthenticateMiddleware(params.Config, params.Logger, params.TenantService))
	{
		private.GET("/tenants/:id", handlers.Tenant.GetTenantByID)
	}

	scoped := private.Group("")
	scoped.Use(middleware.RequireCompany)

	populateLimiter := middleware.NewPopulateRateLimiter(params.Config, params.Logger)

	scoped.GET("/kpis", handlers.KPI.GetKPIs)

	kpi := scoped.Group("/kpi")
	{
		kpi.GET("/trend/:category", handlers.KPI.GetTrend)
		kpi.POST("/forecast", handlers.KPI.Forecast)

		populate := kpi.Group("/populate")
		populate.GET("/status", handlers.KPI.GetPopulationStatus)
		populate.POST("", populateLimiter.Middleware(), handlers.KPI.Populate)
		populate.POST("/all", populateLimiter.Middleware(), handlers.KPI.PopulateAllPeriods)
	}

	usage := scoped.Group("/usage")
	{
		usage.GET("/current-usage", handlers.Usage.GetCurrentUsage)
		usage.GET("/stats", handlers.Usage.GetUsageStats)
	}

	scoped.POST("/transactions", handlers.Record.CreateTransaction)
	scoped.POST("/invoices", handlers.Record.CreateInvoice)
	scoped.POST("/tasks", handlers.Record.CreateTask)

	return router
}
