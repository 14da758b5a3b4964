package service

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/biznesassistant/biznesassistant/internal/publisher"
	"github.com/biznesassistant/biznesassistant/internal/pubsub"
	pubsubRouter "github.com/biznesassistant/biznesassistant/internal/pubsub/router"
	"github.com/biznesassistant/biznesassistant/internal/sentry"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

// KPIEventConsumer follows committed population runs
type KPIEventConsumer interface {
	RegisterHandler(router *pubsubRouter.Router)
}

type kpiEventConsumer struct {
	ServiceParams
	subscriber pubsub.Subscriber
	sentry     *sentry.Service
}

func NewKPIEventConsumer(params ServiceParams, subscriber pubsub.Subscriber, sentry *sentry.Service) KPIEventConsumer {
	return &kpiEventConsumer{
		ServiceParams: params,
		subscriber:    subscriber,
		sentry:        sentry,
	}
}

func (c *kpiEventConsumer) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"kpi_populated_handler",
		c.Config.Event.Topic,
		c.subscriber,
		c.processMessage,
	)
	c.Logger.Infow("registered kpi event handler", "topic", c.Config.Event.Topic)
}

func (c *kpiEventConsumer) processMessage(msg *message.Message) error {
	event, err := publisher.DecodeKPIPopulated(msg)
	if err != nil {
		return err
	}

	ctx := types.SetTenantID(msg.Context(), event.TenantID)
	ctx = types.SetCompanyID(ctx, event.CompanyID)

	span, _ := c.sentry.MonitorEventProcessing(ctx, event.EventName, event.Timestamp, map[string]interface{}{
		"event_id":   event.ID,
		"tenant_id":  event.TenantID,
		"company_id": event.CompanyID,
		"period":     event.Period,
	})
	if span != nil {
		defer span.Finish()
	}

	c.Logger.Infow("kpi population observed",
		"event_id", event.ID,
		"tenant_id", event.TenantID,
		"company_id", event.CompanyID,
		"period", event.Period,
		"window_start", event.WindowStart,
		"window_end", event.WindowEnd,
		"categories", event.Categories)

	return nil
}
