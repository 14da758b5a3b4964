package cache

import (
	"context"
	"testing"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	events []*sentry.Event
}

func (t *recordingTransport) Flush(time.Duration) bool       { return true }
func (t *recordingTransport) Configure(sentry.ClientOptions) {}
func (t *recordingTransport) SendEvent(event *sentry.Event)  { t.events = append(t.events, event) }

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	c := NewInMemoryCache(cfg)

	key := GenerateKey(PrefixTenant, "tenant_1")
	assert.Equal(t, "tenant:v1::tenant_1", key)

	c.Set(ctx, key, "value", time.Minute)
	v, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	c.Set(ctx, GenerateKey(PrefixCompany, "c1"), 1, time.Minute)
	c.DeleteByPrefix(ctx, PrefixTenant)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
	_, ok = c.Get(ctx, GenerateKey(PrefixCompany, "c1"))
	assert.True(t, ok)

	c.Flush(ctx)
	_, ok = c.Get(ctx, GenerateKey(PrefixCompany, "c1"))
	assert.False(t, ok)
}

func TestInMemoryCacheDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = false
	c := NewInMemoryCache(cfg)

	c.Set(ctx, "k", "v", time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestInMemoryCacheGetRecordsHitAndMiss(t *testing.T) {
	transport := &recordingTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Transport:        transport,
	})
	require.NoError(t, err)

	ctx := sentry.SetHubOnContext(context.Background(), sentry.NewHub(client, sentry.NewScope()))
	c := NewInMemoryCache(config.GetDefaultConfig())
	c.Set(ctx, "present", "v", time.Minute)

	tx := sentry.StartTransaction(ctx, "cache lookups")
	_, ok := c.Get(tx.Context(), "present")
	assert.True(t, ok)
	_, ok = c.Get(tx.Context(), "absent")
	assert.False(t, ok)
	tx.Finish()

	require.Len(t, transport.events, 1)
	spans := transport.events[0].Spans
	require.Len(t, spans, 2)

	assert.Equal(t, "db.cache", spans[0].Op)
	assert.Equal(t, sentry.SpanStatusOK, spans[0].Status)
	assert.Equal(t, true, spans[0].Data["hit"])

	assert.Equal(t, sentry.SpanStatusNotFound, spans[1].Status)
	assert.Equal(t, false, spans[1].Data["hit"])
}
