package ports

import (
	"context"

	"statuspulse-integration-layer/internal/domain"
)

// CommerceClient is the thin surface of the commerce platform this system
// touches: rewriting a product's status tag and checking that an order id
// someone reported back to us actually exists.
type CommerceClient interface {
	SetProductStatusTag(ctx context.Context, productID string, tag domain.Tag) error
	OrderExists(ctx context.Context, orderID string) (bool, error)
}
