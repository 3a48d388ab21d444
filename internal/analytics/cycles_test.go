package analytics

import (
	"testing"

	"TradeLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lifecycle(signalID, typ string, startAt, endAt *int64) *models.Event {
	return &models.Event{ID: signalID + "-" + typ, Type: typ, SignalID: signalID, StartAtMs: startAt, EndAtMs: endAt}
}

func TestAnalyzeCyclesCompleteCycle(t *testing.T) {
	events := []*models.Event{
		lifecycle("s1", models.TypeSignalProposed, i64(0), nil),
		lifecycle("s1", models.TypeSignalExecuted, i64(5*60_000), nil),
		lifecycle("s1", models.TypeSignalResolved, nil, i64(65*60_000)),
	}
	got := AnalyzeCycles(events)
	require.NotNil(t, got.AvgToExecuteMin)
	assert.Equal(t, int64(5), *got.AvgToExecuteMin)
	require.NotNil(t, got.AvgToResolveMin)
	assert.Equal(t, int64(60), *got.AvgToResolveMin)
	require.NotNil(t, got.AvgToOutcomeMin)
	assert.Equal(t, int64(65), *got.AvgToOutcomeMin)
}

func TestAnalyzeCyclesFirstSeenWins(t *testing.T) {
	events := []*models.Event{
		lifecycle("s1", models.TypeSignalProposed, i64(1000), nil),
		lifecycle("s1", models.TypeSignalProposed, i64(9999), nil), // duplicate marker ignored
		lifecycle("s1", models.TypeSignalExecuted, i64(61_000+1000), nil),
	}
	got := AnalyzeCycles(events)
	require.NotNil(t, got.AvgToExecuteMin)
	assert.Equal(t, int64(1), *got.AvgToExecuteMin)
}

func TestAnalyzeCyclesCorruptedCycleExcludedPerDelta(t *testing.T) {
	events := []*models.Event{
		// executed before proposed: invalid for the execute delta
		lifecycle("bad", models.TypeSignalProposed, i64(1000), nil),
		lifecycle("bad", models.TypeSignalExecuted, i64(500), nil),
		// a second, valid cycle still produces an average
		lifecycle("ok", models.TypeSignalProposed, i64(0), nil),
		lifecycle("ok", models.TypeSignalExecuted, i64(10*60_000), nil),
	}
	got := AnalyzeCycles(events)
	require.NotNil(t, got.AvgToExecuteMin)
	assert.Equal(t, int64(10), *got.AvgToExecuteMin)
	assert.Nil(t, got.AvgToResolveMin)
	assert.Nil(t, got.AvgToOutcomeMin)
}

func TestAnalyzeCyclesNonNegative(t *testing.T) {
	var d deltaAvg
	d.add(i64(1000), i64(500))
	assert.Nil(t, d.minutes(), "negative deltas are excluded, never reported")
	d.add(i64(500), i64(500))
	require.NotNil(t, d.minutes())
	assert.Equal(t, int64(0), *d.minutes())
}

func TestAnalyzeCyclesIgnoresNonLifecycleEvents(t *testing.T) {
	events := []*models.Event{
		{ID: "n", Type: models.TypeGenericEvent, SignalID: "s1", StartAtMs: i64(0)},
		lifecycle("", models.TypeSignalProposed, i64(0), nil), // no signal id
	}
	got := AnalyzeCycles(events)
	assert.Nil(t, got.AvgToExecuteMin)
	assert.Nil(t, got.AvgToResolveMin)
	assert.Nil(t, got.AvgToOutcomeMin)
}

func TestFoldCyclesResolvedPrefersEndTimestamp(t *testing.T) {
	cycles := foldCycles([]*models.Event{
		lifecycle("s1", models.TypeSignalResolved, i64(100), i64(200)),
	})
	require.Contains(t, cycles, "s1")
	require.NotNil(t, cycles["s1"].ResolvedAtMs)
	assert.Equal(t, int64(200), *cycles["s1"].ResolvedAtMs)
}
