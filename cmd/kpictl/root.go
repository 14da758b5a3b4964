package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/cache"
	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/metrics"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/publisher"
	"github.com/biznesassistant/biznesassistant/internal/pubsub"
	"github.com/biznesassistant/biznesassistant/internal/pubsub/kafka"
	"github.com/biznesassistant/biznesassistant/internal/pubsub/memory"
	"github.com/biznesassistant/biznesassistant/internal/repository"
	"github.com/biznesassistant/biznesassistant/internal/sentry"
	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/biznesassistant/biznesassistant/internal/validator"
	"github.com/spf13/cobra"
)

var flagTimeout time.Duration

var rootCmd = &cobra.Command{
	Use:           "kpictl",
	Short:         "Operator tooling for the KPI backend",
	Long:          "Run KPI population, register tenants and mint access tokens against the configured database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 2*time.Minute, "Overall deadline for the command")
}

// app is the subset of the server graph the commands need, built without fx
type app struct {
	cfg    *config.Configuration
	logger *logger.Logger
	db     *postgres.DB
	pubsub pubsub.PubSub
	sentry *sentry.Service
	params service.ServiceParams
}

func newApp() (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	validator.NewValidator()

	sentrySvc := sentry.NewSentryService(cfg, log)
	if err := sentrySvc.Init(); err != nil {
		return nil, fmt.Errorf("initialising sentry: %w", err)
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	var ps pubsub.PubSub
	if cfg.Event.PublishDestination == types.PublishToKafka {
		ps, err = kafka.NewPubSub(cfg, log)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("connecting to kafka: %w", err)
		}
	} else {
		ps = memory.NewPubSub(log)
	}

	params := service.NewServiceParams(
		log,
		cfg,
		postgres.NewSentryClient(postgres.NewClient(db), sentrySvc, log),
		metrics.NewMetrics(),
		repository.NewTenantRepository(db, log, cache.NewInMemoryCache(cfg), cfg),
		repository.NewCompanyRepository(db, log),
		repository.NewKPIRepository(db, log),
		repository.NewTransactionRepository(db, log),
		repository.NewInvoiceRepository(db, log),
		repository.NewContactRepository(db, log),
		repository.NewLeadRepository(db, log),
		repository.NewDealRepository(db, log),
		repository.NewTaskRepository(db, log),
		publisher.NewEventPublisher(cfg, log, ps),
	)

	return &app{cfg: cfg, logger: log, db: db, pubsub: ps, sentry: sentrySvc, params: params}, nil
}

func (a *app) Close() {
	if err := a.pubsub.Close(); err != nil {
		a.logger.Errorw("failed to close pubsub", "error", err)
	}
	a.db.Close()
	a.sentry.Flush(2)
	_ = a.logger.Sync()
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), flagTimeout)
}
