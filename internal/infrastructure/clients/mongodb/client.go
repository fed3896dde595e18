package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/retailpulse/backend/pkg/config"
)

// Client wraps a MongoDB connection scoped to the sales database.
type Client struct {
	client *mongo.Client
	cfg    *config.DatabaseConfig
}

// NewClient connects to MongoDB and verifies the connection.
func NewClient(ctx context.Context, cfg *config.DatabaseConfig) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{client: client, cfg: cfg}, nil
}

// Sales returns the sales collection.
func (c *Client) Sales() *mongo.Collection {
	return c.client.Database(c.cfg.Database).Collection(c.cfg.Collection)
}

// EnsureIndexes creates the indexes the browse and facet queries rely on.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transactionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "customerRegion", Value: 1}}},
		{Keys: bson.D{{Key: "gender", Value: 1}}},
		{Keys: bson.D{{Key: "productCategory", Value: 1}}},
		{Keys: bson.D{{Key: "paymentMethod", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "customerName", Value: 1}}},
	}

	if _, err := c.Sales().Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create sales indexes: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
