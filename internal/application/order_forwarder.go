package application

import (
	"context"

	"statuspulse-integration-layer/internal/infrastructure/metrics"
	"statuspulse-integration-layer/internal/infrastructure/pubsub"
	"statuspulse-integration-layer/internal/ports"

	"github.com/rs/zerolog"
)

// OrderForwarder subscribes to completed-order events and pushes each order
// to the automation webhook. Forwarding is fire-and-forget with logging; a
// failed push never fails the inbound webhook reply.
type OrderForwarder struct {
	events *pubsub.OrderPubSub
	sink   ports.OrderSink
	logger zerolog.Logger
}

// NewOrderForwarder creates a new order forwarder
func NewOrderForwarder(events *pubsub.OrderPubSub, sink ports.OrderSink, logger zerolog.Logger) *OrderForwarder {
	return &OrderForwarder{
		events: events,
		sink:   sink,
		logger: logger,
	}
}

// Run consumes order events until the context is cancelled
func (f *OrderForwarder) Run(ctx context.Context) {
	sub := f.events.Subscribe(ctx, nil)

	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-sub.Events:
			if !ok {
				return
			}
			if err := f.sink.ForwardOrder(ctx, order); err != nil {
				metrics.OrdersForwarded.WithLabelValues("error").Inc()
				f.logger.Error().
					Err(err).
					Str("sessionId", order.SessionID).
					Msg("Failed to forward order to automation webhook")
				continue
			}
			metrics.OrdersForwarded.WithLabelValues("ok").Inc()
		}
	}
}
