package database

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsageLog is the operational record of one relay call
type UsageLog struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	RequestID string `bson:"request_id" json:"request_id"`
	Route     string `bson:"route" json:"route"`
	Vendor    string `bson:"vendor" json:"vendor"`
	Model     string `bson:"model,omitempty" json:"model,omitempty"`

	StatusCode int    `bson:"status_code" json:"status_code"`
	Outcome    string `bson:"outcome" json:"outcome"`
	DurationMs int64  `bson:"duration_ms" json:"duration_ms"`

	// Internal vendor error, never returned to clients
	ErrorMessage string `bson:"error_message,omitempty" json:"error_message,omitempty"`

	Environment string    `bson:"environment" json:"environment"`
	Version     string    `bson:"version,omitempty" json:"version,omitempty"`
	RequestedAt time.Time `bson:"requested_at" json:"requested_at"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
