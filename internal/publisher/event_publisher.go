package publisher

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/domain/events"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/pubsub"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"go.uber.org/zap"
)

const (
	metadataEventName = "event_name"
	metadataTenantID  = "tenant_id"
	metadataCompanyID = "company_id"
)

// EventPublisher emits KPI domain events to the configured destination
type EventPublisher interface {
	PublishKPIPopulated(ctx context.Context, event *events.KPIPopulated) error
}

type eventPublisher struct {
	pubsub pubsub.Publisher
	logger *logger.Logger
	config *config.EventConfig
}

func NewEventPublisher(cfg *config.Configuration, logger *logger.Logger, pubsub pubsub.PubSub) EventPublisher {
	return &eventPublisher{
		pubsub: pubsub,
		logger: logger,
		config: &cfg.Event,
	}
}

func (p *eventPublisher) PublishKPIPopulated(ctx context.Context, event *events.KPIPopulated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal event").
			Mark(ierr.ErrSystem)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set(metadataEventName, event.EventName)
	msg.Metadata.Set(metadataTenantID, event.TenantID)
	msg.Metadata.Set(metadataCompanyID, event.CompanyID)
	if requestID := types.GetRequestID(ctx); requestID != "" {
		msg.Metadata.Set("request_id", requestID)
	}

	p.logger.With(
		zap.String("event_id", event.ID),
		zap.String("event_name", event.EventName),
		zap.String("tenant_id", event.TenantID),
		zap.String("destination", string(p.config.PublishDestination)),
	).Debug("publishing event")

	if err := p.pubsub.Publish(ctx, p.config.Topic, msg); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to publish event").
			Mark(ierr.ErrSystem)
	}
	return nil
}

// DecodeKPIPopulated reads a population event back from a message
func DecodeKPIPopulated(msg *message.Message) (*events.KPIPopulated, error) {
	var event events.KPIPopulated
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Malformed event payload").
			Mark(ierr.ErrValidation)
	}
	if event.EventName != types.EventKPIPopulated {
		return nil, ierr.NewErrorf("unexpected event %q", event.EventName).
			WithHint("Unexpected event type").
			Mark(ierr.ErrValidation)
	}
	return &event, nil
}
