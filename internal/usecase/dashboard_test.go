package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	recs    []*models.RawRecord
	fetches int
	err     error
}

func (s *stubStore) Init(context.Context) error                            { return nil }
func (s *stubStore) Store(context.Context, *models.RawRecord) error        { return nil }
func (s *stubStore) StoreBatch(context.Context, []*models.RawRecord) error { return nil }
func (s *stubStore) Health(context.Context) error                          { return nil }
func (s *stubStore) Close() error                                          { return nil }

func (s *stubStore) FetchSince(_ context.Context, sinceMs int64, _ int) ([]*models.RawRecord, error) {
	s.fetches++
	return s.recs, s.err
}

type nopMetrics struct{}

func (nopMetrics) RecordEventIngested(string)    {}
func (nopMetrics) RecordEventDropped(string)     {}
func (nopMetrics) RecordCacheHit(string, bool)   {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}

func resolvedRecord(id, symbol, outcome string, ts int64) *models.RawRecord {
	return &models.RawRecord{
		ID:          id,
		Kind:        models.TypeSignalResolved,
		Symbol:      symbol,
		CreatedAtMs: float64(ts),
		Payload:     &models.RawPayload{Outcome: outcome},
	}
}

func TestGetBundleComputesAllSections(t *testing.T) {
	store := &stubStore{recs: []*models.RawRecord{
		resolvedRecord("a", "EURUSD", "WIN", 1_700_000_000_000),
		resolvedRecord("b", "EURUSD", "WIN", 1_700_000_060_000),
		resolvedRecord("c", "GBPUSD", "LOSS", 1_700_000_120_000),
	}}
	uc := NewDashboardUseCase(store, nil, nopMetrics{}, 5000, time.Minute)

	bundle, err := uc.GetBundle(context.Background(), models.FilterConfig{}, 5)
	require.NoError(t, err)

	assert.Equal(t, 3, bundle.FilteredCount)
	assert.Equal(t, 2, bundle.Summary.DistinctSymbolCount)
	assert.Equal(t, 2, bundle.Streaks.MaxWinStreak)
	assert.Equal(t, 1, bundle.Streaks.MaxLossStreak)
	assert.Len(t, bundle.Sessions, 4)
	require.NotEmpty(t, bundle.TopSymbols)
	assert.Equal(t, "EURUSD", bundle.TopSymbols[0].Key)
}

func TestGetBundleMemoizesByFilter(t *testing.T) {
	store := &stubStore{recs: []*models.RawRecord{
		resolvedRecord("a", "EURUSD", "WIN", 1_700_000_000_000),
	}}
	mem := cache.NewMemoryCache()
	defer mem.Close()
	uc := NewDashboardUseCase(store, mem, nopMetrics{}, 5000, time.Minute)

	first, err := uc.GetBundle(context.Background(), models.FilterConfig{}, 5)
	require.NoError(t, err)
	second, err := uc.GetBundle(context.Background(), models.FilterConfig{}, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, store.fetches)
	assert.Equal(t, first.FilteredCount, second.FilteredCount)

	// A different filter is a different cache entry.
	_, err = uc.GetBundle(context.Background(), models.FilterConfig{Symbol: "GBPUSD"}, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, store.fetches)
}

func TestGetBundlePropagatesFetchError(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	uc := NewDashboardUseCase(store, nil, nopMetrics{}, 5000, time.Minute)

	_, err := uc.GetBundle(context.Background(), models.FilterConfig{}, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch events")
}

func TestGetTopSelectsExtractor(t *testing.T) {
	store := &stubStore{recs: []*models.RawRecord{
		{
			ID:          "a",
			Kind:        models.TypeSignalResolved,
			Symbol:      "EURUSD",
			CreatedAtMs: float64(1_700_000_000_000),
			Payload:     &models.RawPayload{Outcome: "WIN", AgentID: "scout"},
		},
	}}
	uc := NewDashboardUseCase(store, nil, nopMetrics{}, 5000, time.Minute)

	rows, err := uc.GetTop(context.Background(), models.FilterConfig{}, "agent", 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "scout", rows[0].Key)
}
