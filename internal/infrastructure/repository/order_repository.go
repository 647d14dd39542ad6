package repository

import (
	"context"
	"fmt"
	"time"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/infrastructure/repository/entity"
	"statuspulse-integration-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepository implements OrderRepository using MongoDB
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates a new MongoDB order repository
func NewMongoOrderRepository(db *mongo.Database) ports.OrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

// Create persists a new order. The unique index on sessionId makes duplicate
// webhook deliveries fail here; that failure is reported as ErrAlreadyExists
// and treated as benign by the caller.
func (r *MongoOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	doc := entity.MongoOrderDocFromDomain(order)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = r.collection.Indexes().CreateOne(ctx, indexModel)

	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("order for session %s: %w", order.SessionID, domain.ErrAlreadyExists)
	}
	if err != nil {
		return storageErr("failed to create order", err)
	}

	return nil
}

// GetBySessionID retrieves an order by its payment session id
func (r *MongoOrderRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	var doc entity.MongoOrderDoc
	filter := bson.M{"sessionId": sessionID}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("failed to get order", err)
	}

	return doc.ToDomain(), nil
}

// AttachShopifyOrderID sets the Shopify order id on an order that has none.
// The filter on an empty shopifyOrderId makes the mutation single-shot.
func (r *MongoOrderRepository) AttachShopifyOrderID(ctx context.Context, sessionID, shopifyOrderID string) (bool, error) {
	filter := bson.M{
		"sessionId": sessionID,
		"$or": bson.A{
			bson.M{"shopifyOrderId": ""},
			bson.M{"shopifyOrderId": bson.M{"$exists": false}},
		},
	}
	update := bson.M{"$set": bson.M{"shopifyOrderId": shopifyOrderID}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, storageErr("failed to attach shopify order id", err)
	}

	return result.ModifiedCount > 0, nil
}
