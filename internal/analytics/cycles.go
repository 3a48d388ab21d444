package analytics

import "TradeLens/internal/domain/models"

// AnalyzeCycles pairs lifecycle markers sharing a signal id and averages
// the elapsed time between stages, in minutes. Each of the three deltas is
// averaged independently: a cycle with corrupted or out-of-order endpoints
// is excluded from that specific average only, never from the others.
func AnalyzeCycles(events []*models.Event) models.CycleStats {
	cycles := foldCycles(events)

	var toExec, toResolve, toOutcome deltaAvg
	for _, c := range cycles {
		toExec.add(c.ProposedAtMs, c.ExecutedAtMs)
		toResolve.add(c.ExecutedAtMs, c.ResolvedAtMs)
		toOutcome.add(c.ProposedAtMs, c.ResolvedAtMs)
	}
	return models.CycleStats{
		AvgToExecuteMin: toExec.minutes(),
		AvgToResolveMin: toResolve.minutes(),
		AvgToOutcomeMin: toOutcome.minutes(),
	}
}

// foldCycles builds the signal cycle map, first-seen-wins per field.
// Proposed and executed markers use their own start then end timestamp;
// resolution markers prefer the end timestamp since that is when the
// outcome became known.
func foldCycles(events []*models.Event) map[string]*models.SignalCycle {
	cycles := make(map[string]*models.SignalCycle)
	for _, ev := range events {
		if ev.SignalID == "" {
			continue
		}
		var slot **int64
		var ts *int64
		switch ev.Type {
		case models.TypeSignalProposed:
			ts = firstTimestamp(ev.StartAtMs, ev.EndAtMs)
			slot = &cycleFor(cycles, ev.SignalID).ProposedAtMs
		case models.TypeSignalExecuted:
			ts = firstTimestamp(ev.StartAtMs, ev.EndAtMs)
			slot = &cycleFor(cycles, ev.SignalID).ExecutedAtMs
		case models.TypeSignalResolved:
			ts = firstTimestamp(ev.EndAtMs, ev.StartAtMs)
			slot = &cycleFor(cycles, ev.SignalID).ResolvedAtMs
		default:
			continue
		}
		if ts != nil && *slot == nil {
			*slot = ts
		}
	}
	return cycles
}

func cycleFor(cycles map[string]*models.SignalCycle, signalID string) *models.SignalCycle {
	c, ok := cycles[signalID]
	if !ok {
		c = &models.SignalCycle{}
		cycles[signalID] = c
	}
	return c
}

func firstTimestamp(candidates ...*int64) *int64 {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// deltaAvg accumulates valid non-negative deltas for one lifecycle pair.
type deltaAvg struct {
	sum   int64
	count int64
}

func (d *deltaAvg) add(from, to *int64) {
	if from == nil || to == nil || *to < *from {
		return
	}
	d.sum += *to - *from
	d.count++
}

func (d *deltaAvg) minutes() *int64 {
	if d.count == 0 {
		return nil
	}
	mins := roundDiv(d.sum, d.count, 60_000)
	return &mins
}
