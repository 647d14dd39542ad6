package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/infrastructure/repository/entity"
	"statuspulse-integration-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMappingRepository implements MappingRepository using MongoDB
type MongoMappingRepository struct {
	channelsCollection *mongo.Collection
	productsCollection *mongo.Collection
}

// NewMongoMappingRepository creates a new MongoDB mapping repository
func NewMongoMappingRepository(db *mongo.Database) ports.MappingRepository {
	return &MongoMappingRepository{
		channelsCollection: db.Collection("channel_mappings"),
		productsCollection: db.Collection("product_mappings"),
	}
}

// GetByChannelID retrieves a channel mapping by channel id
func (r *MongoMappingRepository) GetByChannelID(ctx context.Context, channelID string) (*domain.ChannelMapping, error) {
	var doc entity.MongoChannelMappingDoc
	filter := bson.M{"channelId": channelID}

	err := r.channelsCollection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("failed to get channel mapping", err)
	}

	return doc.ToDomain(), nil
}

// GetByTitle retrieves a product mapping by its normalized title
func (r *MongoMappingRepository) GetByTitle(ctx context.Context, title string) (*domain.ProductMapping, error) {
	var doc entity.MongoProductMappingDoc
	filter := bson.M{"title": title}

	err := r.productsCollection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("failed to get product mapping", err)
	}

	return doc.ToDomain(), nil
}

// UpsertChannelMapping saves or updates a channel mapping
func (r *MongoMappingRepository) UpsertChannelMapping(ctx context.Context, mapping *domain.ChannelMapping) error {
	doc := entity.MongoChannelMappingDocFromDomain(mapping)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "channelId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = r.channelsCollection.Indexes().CreateOne(ctx, indexModel)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"channelId": mapping.ChannelID}
	update := bson.M{"$set": doc}

	_, err := r.channelsCollection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return storageErr("failed to upsert channel mapping", err)
	}

	return nil
}

// UpsertProductMapping saves or updates a title-keyed product mapping
func (r *MongoMappingRepository) UpsertProductMapping(ctx context.Context, mapping *domain.ProductMapping) error {
	doc := entity.MongoProductMappingDocFromDomain(mapping)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = r.productsCollection.Indexes().CreateOne(ctx, indexModel)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"title": mapping.Title}
	update := bson.M{"$set": doc}

	_, err := r.productsCollection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return storageErr("failed to upsert product mapping", err)
	}

	return nil
}

// storageErr wraps a driver error so callers can match domain.ErrStorageUnavailable
func storageErr(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, errors.Join(domain.ErrStorageUnavailable, err))
}
