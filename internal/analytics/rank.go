package analytics

import (
	"sort"

	"TradeLens/internal/domain/models"
)

// DefaultTopN is the leaderboard size when the caller does not pick one.
const DefaultTopN = 5

// KeyFunc extracts the grouping dimension from an event. An empty result
// skips the event.
type KeyFunc func(*models.Event) string

// Prebuilt extractors for the three leaderboards.
var (
	BySymbol    KeyFunc = func(ev *models.Event) string { return ev.Symbol }
	ByTimeframe KeyFunc = func(ev *models.Event) string { return ev.Timeframe }
	ByAgent     KeyFunc = func(ev *models.Event) string { return ev.AgentID }
)

// TopN groups resolved, timestamped events by keyFn and ranks the groups by
// trade count, descending. Ties keep first-seen group order (the sort is
// stable over insertion order). The result never exceeds limit entries.
func TopN(events []*models.Event, keyFn KeyFunc, limit int) []models.RankRow {
	if limit <= 0 {
		limit = DefaultTopN
	}

	index := make(map[string]int)
	rows := make([]models.RankRow, 0)
	wins := make([]int, 0)
	for _, ev := range events {
		if !ev.Resolved() || ev.StartAtMs == nil {
			continue
		}
		key := keyFn(ev)
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, models.RankRow{Key: key})
			wins = append(wins, 0)
		}
		rows[i].Trades++
		if ev.Outcome == models.OutcomeWin {
			wins[i]++
		}
	}

	for i := range rows {
		rows[i].WinRatePct = roundPct(wins[i], rows[i].Trades)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Trades > rows[j].Trades
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
