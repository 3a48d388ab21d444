package analytics

import (
	"sort"

	"TradeLens/internal/domain/models"
)

// DetectStreaks finds the longest consecutive win and loss runs over
// resolved, timestamped events in ascending time order. Equal timestamps
// keep their input order (original index is the secondary sort key), so
// streak boundaries are deterministic for a given input ordering.
func DetectStreaks(events []*models.Event) models.Streaks {
	type indexed struct {
		ev  *models.Event
		pos int
	}
	resolved := make([]indexed, 0, len(events))
	for i, ev := range events {
		if ev.Resolved() && ev.StartAtMs != nil {
			resolved = append(resolved, indexed{ev: ev, pos: i})
		}
	}
	sort.Slice(resolved, func(i, j int) bool {
		a, b := resolved[i], resolved[j]
		if *a.ev.StartAtMs != *b.ev.StartAtMs {
			return *a.ev.StartAtMs < *b.ev.StartAtMs
		}
		return a.pos < b.pos
	})

	var streaks models.Streaks
	winRun, lossRun := 0, 0
	for _, it := range resolved {
		switch it.ev.Outcome {
		case models.OutcomeWin:
			winRun++
			lossRun = 0
		case models.OutcomeLoss:
			lossRun++
			winRun = 0
		default:
			// breakeven breaks both runs
			winRun, lossRun = 0, 0
		}
		if winRun > streaks.MaxWinStreak {
			streaks.MaxWinStreak = winRun
		}
		if lossRun > streaks.MaxLossStreak {
			streaks.MaxLossStreak = lossRun
		}
	}
	return streaks
}
