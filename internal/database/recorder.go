package database

import (
	"context"
	"sync"
	"time"

	"github.com/aashari/go-ai-proxy-server/internal/logger"
)

const writeTimeout = 5 * time.Second

// UsageRecorder accepts usage records without blocking the caller
type UsageRecorder interface {
	Record(entry UsageLog)
	Close(ctx context.Context) error
}

// NoopRecorder discards every record. Used when MongoDB logging is disabled.
type NoopRecorder struct{}

func (NoopRecorder) Record(UsageLog) {}

func (NoopRecorder) Close(context.Context) error { return nil }

type usageWriter interface {
	InsertUsageLog(ctx context.Context, entry *UsageLog) error
}

// MongoRecorder writes records on detached goroutines, each with its own timeout
type MongoRecorder struct {
	writer      usageWriter
	environment string
	version     string
	timeout     time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewMongoRecorder creates a recorder backed by the usage log repository
func NewMongoRecorder(repo *UsageLogRepository, environment, version string) *MongoRecorder {
	return newMongoRecorder(repo, environment, version)
}

func newMongoRecorder(writer usageWriter, environment, version string) *MongoRecorder {
	return &MongoRecorder{
		writer:      writer,
		environment: environment,
		version:     version,
		timeout:     writeTimeout,
	}
}

// Record enqueues an asynchronous insert. Records arriving after Close are dropped.
func (r *MongoRecorder) Record(entry UsageLog) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	if entry.Environment == "" {
		entry.Environment = r.environment
	}
	if entry.Version == "" {
		entry.Version = r.version
	}

	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.writer.InsertUsageLog(ctx, &entry); err != nil {
			logger.LogError(ctx, logger.ComponentNames.Database, err, map[string]any{
				"request_id": entry.RequestID,
				"route":      entry.Route,
			})
		}
	}()
}

// Close stops accepting records and waits for in-flight writes or ctx expiry
func (r *MongoRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
