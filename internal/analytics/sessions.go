package analytics

import (
	"time"

	"TradeLens/internal/domain/models"
)

// sessionWindow is one fixed intraday bucket, hours [Start, End).
type sessionWindow struct {
	Name  string
	Start int
	End   int
}

// The four windows partition every hour of the day exactly once.
// The last window doubles as the catch-all for malformed hour values.
var sessionWindows = []sessionWindow{
	{Name: "Asia", Start: 0, End: 7},
	{Name: "London", Start: 7, End: 13},
	{Name: "NY", Start: 13, End: 21},
	{Name: "After", Start: 21, End: 24},
}

// AnalyzeSessions buckets resolved, timestamped events into the fixed
// intraday windows and derives per-window win rate, average R-multiple and
// average duration. Denominators are always guarded: a window with no
// samples reports nil, never zero, so "no data" stays distinguishable.
func AnalyzeSessions(events []*models.Event) []models.SessionStats {
	type acc struct {
		rSum, durSum     float64
		rCount, durCount int
	}
	stats := make([]models.SessionStats, len(sessionWindows))
	accs := make([]acc, len(sessionWindows))
	for i, w := range sessionWindows {
		stats[i] = models.SessionStats{Name: w.Name, StartHour: w.Start, EndHour: w.End}
	}

	for _, ev := range events {
		if !ev.Resolved() || ev.StartAtMs == nil {
			continue
		}
		hour := time.UnixMilli(*ev.StartAtMs).Hour()
		idx := sessionIndex(hour)
		s, a := &stats[idx], &accs[idx]

		s.Trades++
		switch ev.Outcome {
		case models.OutcomeWin:
			s.Wins++
		case models.OutcomeLoss:
			s.Losses++
		case models.OutcomeBreakeven:
			s.Breakevens++
		}
		if ev.RMultiple != nil {
			a.rSum += *ev.RMultiple
			a.rCount++
		}
		if ev.DurationMs != nil {
			a.durSum += float64(*ev.DurationMs)
			a.durCount++
		}
	}

	for i := range stats {
		s, a := &stats[i], &accs[i]
		if s.Trades > 0 {
			pct := roundPct(s.Wins, s.Trades)
			s.WinRatePct = &pct
		}
		if a.rCount > 0 {
			avg := a.rSum / float64(a.rCount)
			s.AvgR = &avg
		}
		if a.durCount > 0 {
			mins := roundDiv(int64(a.durSum), int64(a.durCount), 60_000)
			s.AvgDurationMin = &mins
		}
	}
	return stats
}

// sessionIndex maps a local hour to its window, clamping out-of-range
// values to the last bucket rather than dropping the event.
func sessionIndex(hour int) int {
	for i, w := range sessionWindows {
		if hour >= w.Start && hour < w.End {
			return i
		}
	}
	return len(sessionWindows) - 1
}
