package analytics

import "TradeLens/internal/domain/models"

// NoOutcomeBucket collects events that carry no outcome at all.
const NoOutcomeBucket = "NONE"

// Summarize counts distinct symbols and builds the outcome histogram.
func Summarize(events []*models.Event) models.Summary {
	symbols := make(map[string]struct{})
	histogram := make(map[string]int)
	for _, ev := range events {
		if ev.Symbol != "" {
			symbols[ev.Symbol] = struct{}{}
		}
		bucket := ev.Outcome
		if bucket == "" {
			bucket = NoOutcomeBucket
		}
		histogram[bucket]++
	}
	return models.Summary{
		DistinctSymbolCount: len(symbols),
		OutcomeHistogram:    histogram,
	}
}
