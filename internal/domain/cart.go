package domain

import "time"

// LineItem is a single cart or order position. Prices are per-unit in minor
// currency units (cents).
type LineItem struct {
	Title      string `json:"title" bson:"title"`
	PriceCents int64  `json:"price_cents" bson:"priceCents"`
	Quantity   int64  `json:"quantity" bson:"quantity"`
	VariantID  string `json:"variant_id,omitempty" bson:"variantId,omitempty"`
}

// SubtotalCents is the line total before any discount.
func (li LineItem) SubtotalCents() int64 {
	return li.PriceCents * li.Quantity
}

// Cart is a pending checkout. Carts expire one hour after creation; expiry
// is enforced by the persistence layer, not the application.
type Cart struct {
	CartKey   string     `json:"cart_key" bson:"cartKey"`
	ShopID    string     `json:"shop_id" bson:"shopId"`
	Items     []LineItem `json:"items" bson:"items"`
	Currency  string     `json:"currency" bson:"currency"`
	CreatedAt time.Time  `json:"created_at" bson:"createdAt"`
}

// SubtotalCents sums all line totals.
func (c *Cart) SubtotalCents() int64 {
	var total int64
	for _, li := range c.Items {
		total += li.SubtotalCents()
	}
	return total
}
