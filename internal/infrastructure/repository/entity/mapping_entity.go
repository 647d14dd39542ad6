package entity

import (
	"time"

	"statuspulse-integration-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoChannelMappingDoc represents a channel mapping in MongoDB
type MongoChannelMappingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ChannelID string             `bson:"channelId"`
	ProductID string             `bson:"productId"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoChannelMappingDoc) ToDomain() *domain.ChannelMapping {
	return &domain.ChannelMapping{
		ChannelID: d.ChannelID,
		ProductID: d.ProductID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoChannelMappingDocFromDomain converts a domain entity to a MongoDB document
func MongoChannelMappingDocFromDomain(m *domain.ChannelMapping) *MongoChannelMappingDoc {
	return &MongoChannelMappingDoc{
		ChannelID: m.ChannelID,
		ProductID: m.ProductID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MongoProductMappingDoc represents a title-keyed product mapping in MongoDB
type MongoProductMappingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	ProductID string             `bson:"productId"`
	ChannelID string             `bson:"channelId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoProductMappingDoc) ToDomain() *domain.ProductMapping {
	return &domain.ProductMapping{
		Title:     d.Title,
		ProductID: d.ProductID,
		ChannelID: d.ChannelID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoProductMappingDocFromDomain converts a domain entity to a MongoDB document
func MongoProductMappingDocFromDomain(m *domain.ProductMapping) *MongoProductMappingDoc {
	return &MongoProductMappingDoc{
		Title:     m.Title,
		ProductID: m.ProductID,
		ChannelID: m.ChannelID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
