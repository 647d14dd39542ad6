package domain

import "time"

// Order is a completed checkout session persisted once per session id and
// later mutated exactly once to attach the Shopify order id.
type Order struct {
	SessionID      string     `json:"session_id" bson:"sessionId"`
	Email          string     `json:"email" bson:"email"`
	LineItems      []LineItem `json:"line_items" bson:"lineItems"`
	Currency       string     `json:"currency" bson:"currency"`
	TotalCents     int64      `json:"total_cents" bson:"totalCents"`
	Fulfillment    string     `json:"fulfillment" bson:"fulfillment"`
	ShopifyOrderID string     `json:"shopify_order_id,omitempty" bson:"shopifyOrderId,omitempty"`
	ShopID         string     `json:"shop_id" bson:"shopId"`
	CreatedAt      time.Time  `json:"created_at" bson:"createdAt"`
}
