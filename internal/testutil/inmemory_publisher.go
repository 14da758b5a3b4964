package testutil

import (
	"context"
	"sync"

	"github.com/biznesassistant/biznesassistant/internal/domain/events"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/publisher"
)

// InMemoryEventPublisher records published KPI events for assertions
type InMemoryEventPublisher struct {
	mu     sync.RWMutex
	events []*events.KPIPopulated
	fail   bool
}

var _ publisher.EventPublisher = (*InMemoryEventPublisher)(nil)

func NewInMemoryEventPublisher() *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		events: make([]*events.KPIPopulated, 0),
	}
}

func (p *InMemoryEventPublisher) PublishKPIPopulated(_ context.Context, event *events.KPIPopulated) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail {
		return ierr.NewError("broker unavailable").
			WithHint("Event could not be published").
			Mark(ierr.ErrSystem)
	}
	p.events = append(p.events, event)
	return nil
}

// FailPublishing makes every following publish return an error
func (p *InMemoryEventPublisher) FailPublishing(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = fail
}

// GetEvents returns all published events
func (p *InMemoryEventPublisher) GetEvents() []*events.KPIPopulated {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*events.KPIPopulated, len(p.events))
	copy(out, p.events)
	return out
}

// Clear removes all published events and resets failure mode
func (p *InMemoryEventPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = make([]*events.KPIPopulated, 0)
	p.fail = false
}
