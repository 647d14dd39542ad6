package ports

import (
	"context"

	"statuspulse-integration-layer/internal/domain"
)

// StatusSink reports a channel status change to the product-status endpoint.
type StatusSink interface {
	PushStatus(ctx context.Context, update *domain.StatusUpdate) error
}

// OrderSink forwards a completed order to the automation webhook.
type OrderSink interface {
	ForwardOrder(ctx context.Context, order *domain.Order) error
}

// OrderPublisher fans a completed order out to in-process subscribers.
type OrderPublisher interface {
	PublishOrder(order *domain.Order)
}
