package repository

import (
	"context"
	"time"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/infrastructure/repository/entity"
	"statuspulse-integration-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cartTTL = time.Hour

// MongoCartRepository implements CartRepository using MongoDB
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a new MongoDB cart repository
func NewMongoCartRepository(db *mongo.Database) ports.CartRepository {
	return &MongoCartRepository{
		collection: db.Collection("carts"),
	}
}

// Create persists a new cart. Carts expire via the TTL index on createdAt.
func (r *MongoCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	doc := entity.MongoCartDocFromDomain(cart)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	keyIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "cartKey", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	ttlIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(cartTTL.Seconds())),
	}
	_, _ = r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{keyIndex, ttlIndex})

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return storageErr("failed to create cart", err)
	}

	return nil
}

// GetByKey retrieves a cart by its key
func (r *MongoCartRepository) GetByKey(ctx context.Context, cartKey string) (*domain.Cart, error) {
	var doc entity.MongoCartDoc
	filter := bson.M{"cartKey": cartKey}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("failed to get cart", err)
	}

	return doc.ToDomain(), nil
}
