package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// UsageLogRepository provides operations for usage records
type UsageLogRepository struct {
	collection *mongo.Collection
}

// NewUsageLogRepository creates a repository over the given collection
func NewUsageLogRepository(collection *mongo.Collection) *UsageLogRepository {
	return &UsageLogRepository{collection: collection}
}

// InsertUsageLog inserts a usage record, stamping CreatedAt
func (r *UsageLogRepository) InsertUsageLog(ctx context.Context, entry *UsageLog) error {
	entry.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}
