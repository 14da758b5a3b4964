package sentry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestDisabledServiceIsNoop(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Sentry.Enabled = false
	svc := NewSentryService(cfg, logger.NewNopLogger())

	assert.NoError(t, svc.Init())
	assert.False(t, svc.Enabled())
	assert.True(t, svc.Flush(1))

	ctx := context.Background()
	span, got := svc.StartTransaction(ctx, "kpi.populate")
	assert.Nil(t, span)
	assert.Equal(t, ctx, got)

	span, got = svc.MonitorEventProcessing(ctx, "kpi.populated", time.Now(), nil)
	assert.Nil(t, span)
	assert.Equal(t, ctx, got)

	svc.CaptureException(ctx, errors.New("ignored"))
	svc.AddBreadcrumb("kpi", "ignored", nil)
}
