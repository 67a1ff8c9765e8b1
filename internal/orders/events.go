package orders

import (
	"context"
	"encoding/json"
	"fmt"
)

// eventBus is the subset of the Redis client the publisher needs.
type eventBus interface {
	Publish(ctx context.Context, channel string, payload any) error
	OrdersChannel() string
}

type redisPublisher struct {
	bus eventBus
}

// NewEventPublisher builds the Redis-backed order event publisher.
func NewEventPublisher(bus eventBus) (EventPublisher, error) {
	if bus == nil {
		return nil, fmt.Errorf("event bus required")
	}
	return &redisPublisher{bus: bus}, nil
}

func (p *redisPublisher) PublishOrderEvent(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	if err := p.bus.Publish(ctx, p.bus.OrdersChannel(), string(payload)); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}
