package usecase

import (
	"context"
	"encoding/json"

	"TradeLens/internal/domain/models"
	drepo "TradeLens/internal/domain/repository"
)

// JournalEventsHandler consumes raw journal records from Kafka and hands
// them to the ingestor. One message carries either a single record or a
// batch under "records".
type JournalEventsHandler struct {
	topic    string
	ingestor *EventIngestor
	metrics  drepo.Metrics
}

func NewJournalEventsHandler(topic string, ingestor *EventIngestor, metrics drepo.Metrics) *JournalEventsHandler {
	return &JournalEventsHandler{topic: topic, ingestor: ingestor, metrics: metrics}
}

func (h *JournalEventsHandler) Topic() string { return h.topic }

func (h *JournalEventsHandler) Handle(ctx context.Context, b []byte) error {
	var batch struct {
		Records []*models.RawRecord `json:"records"`
	}
	if err := json.Unmarshal(b, &batch); err == nil && len(batch.Records) > 0 {
		return h.ingestor.IngestBatch(ctx, "kafka", batch.Records)
	}

	var rec models.RawRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	return h.ingestor.Ingest(ctx, "kafka", &rec)
}
