package entity

import (
	"time"

	"statuspulse-integration-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoLineItemDoc represents a line item embedded in carts and orders
type MongoLineItemDoc struct {
	Title      string `bson:"title"`
	PriceCents int64  `bson:"priceCents"`
	Quantity   int64  `bson:"quantity"`
	VariantID  string `bson:"variantId,omitempty"`
}

func lineItemsToDomain(docs []MongoLineItemDoc) []domain.LineItem {
	items := make([]domain.LineItem, len(docs))
	for i, d := range docs {
		items[i] = domain.LineItem{
			Title:      d.Title,
			PriceCents: d.PriceCents,
			Quantity:   d.Quantity,
			VariantID:  d.VariantID,
		}
	}
	return items
}

func lineItemsFromDomain(items []domain.LineItem) []MongoLineItemDoc {
	docs := make([]MongoLineItemDoc, len(items))
	for i, li := range items {
		docs[i] = MongoLineItemDoc{
			Title:      li.Title,
			PriceCents: li.PriceCents,
			Quantity:   li.Quantity,
			VariantID:  li.VariantID,
		}
	}
	return docs
}

// MongoCartDoc represents a pending cart in MongoDB. The TTL index on
// createdAt expires carts an hour after creation.
type MongoCartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CartKey   string             `bson:"cartKey"`
	ShopID    string             `bson:"shopId"`
	Items     []MongoLineItemDoc `bson:"items"`
	Currency  string             `bson:"currency"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoCartDoc) ToDomain() *domain.Cart {
	return &domain.Cart{
		CartKey:   d.CartKey,
		ShopID:    d.ShopID,
		Items:     lineItemsToDomain(d.Items),
		Currency:  d.Currency,
		CreatedAt: d.CreatedAt,
	}
}

// MongoCartDocFromDomain converts a domain entity to a MongoDB document
func MongoCartDocFromDomain(c *domain.Cart) *MongoCartDoc {
	return &MongoCartDoc{
		CartKey:   c.CartKey,
		ShopID:    c.ShopID,
		Items:     lineItemsFromDomain(c.Items),
		Currency:  c.Currency,
		CreatedAt: c.CreatedAt,
	}
}

// MongoOrderDoc represents a completed order in MongoDB
type MongoOrderDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	SessionID      string             `bson:"sessionId"`
	Email          string             `bson:"email"`
	LineItems      []MongoLineItemDoc `bson:"lineItems"`
	Currency       string             `bson:"currency"`
	TotalCents     int64              `bson:"totalCents"`
	Fulfillment    string             `bson:"fulfillment"`
	ShopifyOrderID string             `bson:"shopifyOrderId,omitempty"`
	ShopID         string             `bson:"shopId"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoOrderDoc) ToDomain() *domain.Order {
	return &domain.Order{
		SessionID:      d.SessionID,
		Email:          d.Email,
		LineItems:      lineItemsToDomain(d.LineItems),
		Currency:       d.Currency,
		TotalCents:     d.TotalCents,
		Fulfillment:    d.Fulfillment,
		ShopifyOrderID: d.ShopifyOrderID,
		ShopID:         d.ShopID,
		CreatedAt:      d.CreatedAt,
	}
}

// MongoOrderDocFromDomain converts a domain entity to a MongoDB document
func MongoOrderDocFromDomain(o *domain.Order) *MongoOrderDoc {
	return &MongoOrderDoc{
		SessionID:      o.SessionID,
		Email:          o.Email,
		LineItems:      lineItemsFromDomain(o.LineItems),
		Currency:       o.Currency,
		TotalCents:     o.TotalCents,
		Fulfillment:    o.Fulfillment,
		ShopifyOrderID: o.ShopifyOrderID,
		ShopID:         o.ShopID,
		CreatedAt:      o.CreatedAt,
	}
}
