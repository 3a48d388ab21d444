package repository

import (
	"context"

	"TradeLens/internal/domain/models"
)

// EventStream is a live feed of raw journal records from the assistant
// backend (out-of-scope collaborator; we only consume it).
type EventStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.RawRecord, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// EventStore persists and serves raw journal records. The analytics engine
// itself never touches it; only the use case layer does.
type EventStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, rec *models.RawRecord) error
	StoreBatch(ctx context.Context, recs []*models.RawRecord) error
	FetchSince(ctx context.Context, sinceMs int64, limit int) ([]*models.RawRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational counters for ingestion and computation.
type Metrics interface {
	RecordEventIngested(source string)
	RecordEventDropped(reason string)
	RecordCacheHit(op string, hit bool)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
