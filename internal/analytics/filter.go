package analytics

import (
	"sort"
	"strings"

	"TradeLens/internal/domain/models"
)

// FilterAll is the sentinel dimension value that disables a predicate.
const FilterAll = "all"

// Filter applies the range and dimension predicates and returns a new
// slice ordered by timestamp descending. Timestamp-less events sort as the
// oldest and are never excluded by the range predicate; only explicitly
// dated events are range-filtered. The input slice is never mutated.
func Filter(events []*models.Event, cfg models.FilterConfig) []*models.Event {
	out := make([]*models.Event, 0, len(events))
	for _, ev := range events {
		if ev == nil {
			continue
		}
		if ev.StartAtMs != nil && *ev.StartAtMs < cfg.SinceMs {
			continue
		}
		if !matchDim(cfg.Symbol, ev.Symbol) ||
			!matchDim(cfg.Type, ev.Type) ||
			!matchDim(cfg.Outcome, ev.Outcome) ||
			!matchDim(cfg.AgentID, ev.AgentID) {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].When() > out[j].When()
	})
	return out
}

// matchDim implements one dimension predicate: empty or "all" disables it,
// otherwise the event field must match exactly, case-insensitively. Events
// lacking the field always fail an enabled predicate.
func matchDim(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, FilterAll) {
		return true
	}
	if got == "" {
		return false
	}
	return strings.EqualFold(want, got)
}
