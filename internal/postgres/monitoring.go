package postgres

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/logger"
	sentryService "github.com/biznesassistant/biznesassistant/internal/sentry"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

// SentryClient wraps the transactional client with Sentry span tracking
type SentryClient struct {
	client IClient
	sentry *sentryService.Service
	logger *logger.Logger
}

var _ IClient = (*SentryClient)(nil)

// NewSentryClient creates a new Sentry-instrumented Postgres client
func NewSentryClient(client IClient, sentry *sentryService.Service, logger *logger.Logger) IClient {
	return &SentryClient{
		client: client,
		sentry: sentry,
		logger: logger,
	}
}

// WithTx wraps the given function in a transaction with a span around the whole unit
func (c *SentryClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"operation":  "transaction",
		"tenant_id":  types.GetTenantID(ctx),
		"company_id": types.GetCompanyID(ctx),
	})
	if span != nil {
		defer span.Finish()
	}

	return c.client.WithTx(spanCtx, fn)
}
