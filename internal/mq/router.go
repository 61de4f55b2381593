package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

type TypedHandlerFunc func(ctx context.Context, evt Event) error

// Router dispatches decoded envelopes by Type.
type Router struct {
	routes map[string]TypedHandlerFunc
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		routes: make(map[string]TypedHandlerFunc),
		logger: logger,
	}
}

func (r *Router) Register(eventType string, h TypedHandlerFunc) {
	r.routes[eventType] = h
}

// HandleRaw decodes an envelope and routes it. Unknown types are dropped.
func (r *Router) HandleRaw(ctx context.Context, raw json.RawMessage) error {
	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return fmt.Errorf("decode event envelope: %w", err)
	}
	h, ok := r.routes[evt.Type]
	if !ok {
		r.logger.Warn("No handler for event", zap.String("type", evt.Type), zap.String("id", evt.ID))
		return nil
	}
	return h(ctx, evt)
}
