package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"TradeLens/internal/analytics"
	"TradeLens/internal/domain/models"
	drepo "TradeLens/internal/domain/repository"
	"TradeLens/pkg/cache"
)

// DashboardUseCase turns the stored journal into the metrics bundle the
// rendering layer consumes. Fetching and caching live here; every
// computation is delegated to the pure analytics passes.
type DashboardUseCase struct {
	store      drepo.EventStore
	cache      cache.Service
	metrics    drepo.Metrics
	fetchLimit int
	cacheTTL   time.Duration
	timeout    time.Duration
}

func NewDashboardUseCase(store drepo.EventStore, c cache.Service, metrics drepo.Metrics, fetchLimit int, cacheTTL time.Duration) *DashboardUseCase {
	return &DashboardUseCase{
		store:      store,
		cache:      c,
		metrics:    metrics,
		fetchLimit: fetchLimit,
		cacheTTL:   cacheTTL,
		timeout:    10 * time.Second,
	}
}

// GetBundle computes the full metrics bundle for the given filter. Results
// are memoized by filter identity: the passes are pure, so a cached bundle
// is indistinguishable from a recomputed one within the TTL.
func (uc *DashboardUseCase) GetBundle(ctx context.Context, cfg models.FilterConfig, limit int) (*models.Bundle, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	key := bundleCacheKey(cfg, limit)
	if uc.cache != nil {
		var cached models.Bundle
		err := uc.cache.Get(ctx, key, &cached)
		uc.metrics.RecordCacheHit("bundle", err == nil)
		if err == nil {
			return &cached, nil
		}
	}

	start := time.Now()
	events, err := uc.workingSet(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bundle := computeBundle(events, limit)
	uc.metrics.RecordLatency("compute_bundle", time.Since(start).Seconds())

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, bundle, uc.cacheTTL)
	}
	return bundle, nil
}

// GetTop computes a single leaderboard over the filtered set.
func (uc *DashboardUseCase) GetTop(ctx context.Context, cfg models.FilterConfig, by string, limit int) ([]models.RankRow, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	events, err := uc.workingSet(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var keyFn analytics.KeyFunc
	switch by {
	case "timeframe":
		keyFn = analytics.ByTimeframe
	case "agent":
		keyFn = analytics.ByAgent
	default:
		keyFn = analytics.BySymbol
	}
	return analytics.TopN(events, keyFn, limit), nil
}

// Health reports store connectivity for the health endpoint.
func (uc *DashboardUseCase) Health(ctx context.Context) error {
	return uc.store.Health(ctx)
}

// workingSet fetches, normalizes and filters the raw journal into the
// event set every pass shares.
func (uc *DashboardUseCase) workingSet(ctx context.Context, cfg models.FilterConfig) ([]*models.Event, error) {
	raws, err := uc.store.FetchSince(ctx, cfg.SinceMs, uc.fetchLimit)
	if err != nil {
		uc.metrics.RecordError("fetch")
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	return analytics.Filter(analytics.NormalizeAll(raws), cfg), nil
}

// computeBundle fans the independent passes out over the shared filtered
// set. None of them reads another's state, so order does not matter.
func computeBundle(events []*models.Event, limit int) *models.Bundle {
	bundle := &models.Bundle{FilteredCount: len(events)}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() { defer wg.Done(); bundle.Summary = analytics.Summarize(events) }()
	go func() { defer wg.Done(); bundle.Streaks = analytics.DetectStreaks(events) }()
	go func() { defer wg.Done(); bundle.Sessions = analytics.AnalyzeSessions(events) }()
	go func() { defer wg.Done(); bundle.Cycles = analytics.AnalyzeCycles(events) }()
	go func() {
		defer wg.Done()
		bundle.TopSymbols = analytics.TopN(events, analytics.BySymbol, limit)
		bundle.TopTimeframes = analytics.TopN(events, analytics.ByTimeframe, limit)
		bundle.TopAgents = analytics.TopN(events, analytics.ByAgent, limit)
	}()
	wg.Wait()

	return bundle
}

func bundleCacheKey(cfg models.FilterConfig, limit int) string {
	return fmt.Sprintf("bundle:%d:%s:%s:%s:%s:%d",
		cfg.SinceMs, cfg.Symbol, cfg.Type, cfg.Outcome, cfg.AgentID, limit)
}
