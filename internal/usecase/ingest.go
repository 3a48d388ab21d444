package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"TradeLens/internal/analytics"
	"TradeLens/internal/domain/models"
	drepo "TradeLens/internal/domain/repository"
)

// EventIngestor validates incoming journal records and writes them to the
// event store. Records a normalizer cannot shape into an event are dropped
// before they reach storage.
type EventIngestor struct {
	store   drepo.EventStore
	metrics drepo.Metrics
}

func NewEventIngestor(store drepo.EventStore, metrics drepo.Metrics) *EventIngestor {
	return &EventIngestor{store: store, metrics: metrics}
}

// Ingest stores a single raw record.
func (p *EventIngestor) Ingest(ctx context.Context, source string, rec *models.RawRecord) error {
	if rec == nil || analytics.Normalize(rec) == nil {
		p.metrics.RecordEventDropped("unnormalizable")
		return nil
	}
	cleanRecord(rec)

	start := time.Now()
	if err := p.store.Store(ctx, rec); err != nil {
		p.metrics.RecordError("store")
		return fmt.Errorf("ingest record: %w", err)
	}
	p.metrics.RecordEventIngested(source)
	p.metrics.RecordLatency("store", time.Since(start).Seconds())
	return nil
}

// IngestBatch stores multiple raw records in one insert.
func (p *EventIngestor) IngestBatch(ctx context.Context, source string, recs []*models.RawRecord) error {
	kept := recs[:0:0]
	for _, rec := range recs {
		if rec == nil || analytics.Normalize(rec) == nil {
			p.metrics.RecordEventDropped("unnormalizable")
			continue
		}
		cleanRecord(rec)
		kept = append(kept, rec)
	}
	if len(kept) == 0 {
		return nil
	}

	start := time.Now()
	if err := p.store.StoreBatch(ctx, kept); err != nil {
		p.metrics.RecordError("store_batch")
		return fmt.Errorf("ingest batch: %w", err)
	}
	for range kept {
		p.metrics.RecordEventIngested(source)
	}
	p.metrics.RecordLatency("store_batch", time.Since(start).Seconds())
	return nil
}

func (p *EventIngestor) Close() error {
	return p.store.Close()
}

// cleanRecord trims identifying strings in place so equal records land in
// storage under one spelling.
func cleanRecord(rec *models.RawRecord) {
	rec.ID = strings.TrimSpace(rec.ID)
	rec.Key = strings.TrimSpace(rec.Key)
	rec.Kind = strings.TrimSpace(rec.Kind)
	rec.Symbol = strings.ToUpper(strings.TrimSpace(rec.Symbol))
	rec.Timeframe = strings.TrimSpace(rec.Timeframe)
}
