package usecase

import (
	"context"
	"testing"

	"TradeLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureStore struct {
	stubStore
	stored []*models.RawRecord
}

func (s *captureStore) Store(_ context.Context, rec *models.RawRecord) error {
	s.stored = append(s.stored, rec)
	return nil
}

func (s *captureStore) StoreBatch(_ context.Context, recs []*models.RawRecord) error {
	s.stored = append(s.stored, recs...)
	return nil
}

func TestIngestNormalizesSymbolCasing(t *testing.T) {
	store := &captureStore{}
	ing := NewEventIngestor(store, nopMetrics{})

	err := ing.Ingest(context.Background(), "test", &models.RawRecord{
		ID:     " sig-1 ",
		Kind:   models.TypeSignalProposed,
		Symbol: " eurusd ",
	})
	require.NoError(t, err)
	require.Len(t, store.stored, 1)
	assert.Equal(t, "sig-1", store.stored[0].ID)
	assert.Equal(t, "EURUSD", store.stored[0].Symbol)
}

func TestIngestDropsNilRecord(t *testing.T) {
	store := &captureStore{}
	ing := NewEventIngestor(store, nopMetrics{})

	require.NoError(t, ing.Ingest(context.Background(), "test", nil))
	assert.Empty(t, store.stored)
}

func TestIngestBatchSkipsNilEntries(t *testing.T) {
	store := &captureStore{}
	ing := NewEventIngestor(store, nopMetrics{})

	err := ing.IngestBatch(context.Background(), "test", []*models.RawRecord{
		{ID: "a", Kind: models.TypeGenericEvent},
		nil,
		{ID: "b", Kind: models.TypeSignalExecuted},
	})
	require.NoError(t, err)
	require.Len(t, store.stored, 2)
	assert.Equal(t, "a", store.stored[0].ID)
	assert.Equal(t, "b", store.stored[1].ID)
}

func TestJournalHandlerAcceptsSingleAndBatch(t *testing.T) {
	store := &captureStore{}
	ing := NewEventIngestor(store, nopMetrics{})
	h := NewJournalEventsHandler("journal.events", ing, nopMetrics{})

	assert.Equal(t, "journal.events", h.Topic())

	single := []byte(`{"id":"one","kind":"signal_proposed","symbol":"EURUSD"}`)
	require.NoError(t, h.Handle(context.Background(), single))

	batch := []byte(`{"records":[{"id":"two","kind":"event"},{"id":"three","kind":"event"}]}`)
	require.NoError(t, h.Handle(context.Background(), batch))

	require.Len(t, store.stored, 3)
	assert.Equal(t, "one", store.stored[0].ID)
}

func TestJournalHandlerRejectsMalformedJSON(t *testing.T) {
	store := &captureStore{}
	ing := NewEventIngestor(store, nopMetrics{})
	h := NewJournalEventsHandler("journal.events", ing, nopMetrics{})

	err := h.Handle(context.Background(), []byte(`not json`))
	require.Error(t, err)
	assert.Empty(t, store.stored)
}
