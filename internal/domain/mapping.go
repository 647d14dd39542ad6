package domain

import "time"

// ChannelMapping associates a chat channel with a commerce product.
// Populated by the one-time import and treated as read-only afterwards.
type ChannelMapping struct {
	ChannelID string    `json:"channel_id" bson:"channelId"`
	ProductID string    `json:"product_id" bson:"productId"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// ProductMapping associates a normalized, lowercased title with a commerce
// product. ChannelID is optional and only kept for traceability.
type ProductMapping struct {
	Title     string    `json:"title" bson:"title"`
	ProductID string    `json:"product_id" bson:"productId"`
	ChannelID string    `json:"channel_id,omitempty" bson:"channelId,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// Channel is a chat channel as reported by the chat platform.
type Channel struct {
	ID      string
	GuildID string
	Name    string
	IsText  bool
}

// StatusUpdate is the payload pushed to the product-status endpoint when a
// channel's inferred tag changes.
type StatusUpdate struct {
	Tag       Tag    `json:"tag"`
	Title     string `json:"title"`
	ProductID string `json:"productId"`
}
