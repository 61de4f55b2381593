package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"wbsplanner/pkg/trace"
)

// Publisher records events in the outbox instead of sending them. It has the
// same Publish signature as the broker publisher.
type Publisher struct {
	store         Store
	aggregateType string
}

func NewPublisher(store Store, aggregateType string) *Publisher {
	return &Publisher{store: store, aggregateType: aggregateType}
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}
	return p.store.Insert(ctx, &Event{
		AggregateType: p.aggregateType,
		RoutingKey:    routingKey,
		Payload:       body,
		TraceID:       trace.FromContext(ctx),
		Status:        StatusPending,
	})
}
