package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "github.com/biznesassistant/biznesassistant/docs/swagger"
	"github.com/biznesassistant/biznesassistant/internal/api"
	v1 "github.com/biznesassistant/biznesassistant/internal/api/v1"
	"github.com/biznesassistant/biznesassistant/internal/cache"
	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/metrics"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/publisher"
	"github.com/biznesassistant/biznesassistant/internal/pubsub"
	"github.com/biznesassistant/biznesassistant/internal/pubsub/kafka"
	"github.com/biznesassistant/biznesassistant/internal/pubsub/memory"
	pubsubRouter "github.com/biznesassistant/biznesassistant/internal/pubsub/router"
	"github.com/biznesassistant/biznesassistant/internal/repository"
	"github.com/biznesassistant/biznesassistant/internal/sentry"
	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/biznesassistant/biznesassistant/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Biznes Assistant API
// @version 1.0
// @description KPI analytics for small and medium businesses
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the token in the format **Bearer &lt;token&gt;**

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,
			metrics.NewMetrics,

			// Cache
			cache.NewInMemoryCache,

			// PubSub
			providePubSub,
			pubsubRouter.NewRouter,

			// Event Publisher
			publisher.NewEventPublisher,

			// Repositories
			repository.NewTenantRepository,
			repository.NewCompanyRepository,
			repository.NewKPIRepository,
			repository.NewTransactionRepository,
			repository.NewInvoiceRepository,
			repository.NewContactRepository,
			repository.NewLeadRepository,
			repository.NewDealRepository,
			repository.NewTaskRepository,
		),
		// Postgres
		postgres.Module(),
		fx.Decorate(postgres.NewSentryClient),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewTenantService,
			service.NewUsageService,
			service.NewKPIService,
			service.NewTrendService,
			service.NewKPIPopulatorService,
			service.NewRecordService,
			provideKPIEventConsumer,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			validator.NewValidator,
			sentry.RegisterHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func providePubSub(cfg *config.Configuration, logger *logger.Logger) (pubsub.PubSub, error) {
	if cfg.Event.PublishDestination == types.PublishToKafka {
		return kafka.NewPubSub(cfg, logger)
	}
	return memory.NewPubSub(logger), nil
}

func provideKPIEventConsumer(params service.ServiceParams, ps pubsub.PubSub, sentrySvc *sentry.Service) service.KPIEventConsumer {
	return service.NewKPIEventConsumer(params, ps, sentrySvc)
}

func provideHandlers(
	logger *logger.Logger,
	tenantService service.TenantService,
	usageService service.UsageService,
	kpiService service.KPIService,
	trendService service.TrendService,
	populatorService service.KPIPopulatorService,
	recordService service.RecordService,
) api.Handlers {
	return api.Handlers{
		Health: v1.NewHealthHandler(logger),
		KPI:    v1.NewKPIHandler(kpiService, trendService, populatorService, logger),
		Usage:  v1.NewUsageHandler(usageService, logger),
		Record: v1.NewRecordHandler(recordService, logger),
		Tenant: v1.NewTenantHandler(tenantService, logger),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	m *metrics.Metrics,
	sentrySvc *sentry.Service,
	tenantService service.TenantService,
) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, api.RouterParams{
		Config:        cfg,
		Logger:        logger,
		Metrics:       m,
		Sentry:        sentrySvc,
		TenantService: tenantService,
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	consumer service.KPIEventConsumer,
	ps pubsub.PubSub,
	log *logger.Logger,
) {
	// registered first so it runs after the router has drained
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return ps.Close()
		},
	})

	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
		if cfg.Event.ConsumerEnabled {
			startMessageRouter(lc, router, consumer, log)
		}
	case types.ModeConsumer:
		startMessageRouter(lc, router, consumer, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	consumer service.KPIEventConsumer,
	log *logger.Logger,
) {
	consumer.RegisterHandler(router)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting message router...")
			go func() {
				if err := router.Run(context.Background()); err != nil {
					log.Errorw("message router stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down message router...")
			return router.Close()
		},
	})
}
