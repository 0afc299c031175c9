package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/aashari/go-ai-proxy-server/internal/logger"
)

// UsageCollection is the collection relay usage records are written to
const UsageCollection = "usage-logs"

const connectTimeout = 10 * time.Second

// Connection holds the MongoDB client and the selected database
type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
	Settings *Settings
}

// Connect opens a MongoDB connection, verifies it with a ping and ensures the
// usage collection indexes exist. Index failures are logged but not fatal.
func Connect(ctx context.Context, settings *Settings) (*Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(settings.URI)
	if settings.AppName != "" {
		clientOptions.SetAppName(settings.AppName)
	}

	logger.Info("Connecting to MongoDB",
		"component", logger.ComponentNames.Database,
		"database", settings.DatabaseName,
		"uri", settings.MaskedURI())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	conn := &Connection{
		Client:   client,
		Database: client.Database(settings.DatabaseName),
		Settings: settings,
	}

	if err := conn.createIndexes(ctx); err != nil {
		logger.Warn("Failed to create database indexes",
			"component", logger.ComponentNames.Database,
			"error", err)
	}

	logger.Info("Connected to MongoDB",
		"component", logger.ComponentNames.Database,
		"database", settings.DatabaseName)

	return conn, nil
}

// Disconnect closes the MongoDB connection
func (c *Connection) Disconnect(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Disconnect(ctx)
}

// HealthCheck pings the primary
func (c *Connection) HealthCheck(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return fmt.Errorf("MongoDB client is nil")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return nil
}

// Collection returns a collection of the selected database
func (c *Connection) Collection(name string) *mongo.Collection {
	return c.Database.Collection(name)
}

func (c *Connection) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
		{
			Keys:    bson.D{{Key: "route", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("route_created_at_desc"),
		},
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetName("request_id"),
		},
	}

	if _, err := c.Collection(UsageCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", UsageCollection, err)
	}
	return nil
}
