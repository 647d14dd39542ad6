package ports

import (
	"context"
	"time"

	"statuspulse-integration-layer/internal/domain"
)

// CartRepository persists pending carts. The store expires carts one hour
// after creation via a TTL index.
type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	GetByKey(ctx context.Context, cartKey string) (*domain.Cart, error)
}

// OrderRepository persists completed orders. Create returns an error wrapping
// domain.ErrAlreadyExists when an order with the same session id exists.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Order, error)

	// AttachShopifyOrderID sets the Shopify order id on an order that does
	// not have one yet. It returns false when nothing was updated, either
	// because the order is missing or because the id was already attached.
	AttachShopifyOrderID(ctx context.Context, sessionID, shopifyOrderID string) (bool, error)
}

// ShopTokenStore correlates short-lived checkout tokens back to a shop id.
// Resolve returns an empty string when the token is unknown or expired.
type ShopTokenStore interface {
	Save(ctx context.Context, token, shopID string, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (string, error)
}
