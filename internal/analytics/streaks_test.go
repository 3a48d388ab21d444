package analytics

import (
	"testing"

	"TradeLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestDetectStreaksBasic(t *testing.T) {
	events := []*models.Event{
		resolvedEvent("1", "EURUSD", models.OutcomeWin, 100),
		resolvedEvent("2", "EURUSD", models.OutcomeWin, 200),
		resolvedEvent("3", "EURUSD", models.OutcomeLoss, 300),
	}
	got := DetectStreaks(events)
	assert.Equal(t, 2, got.MaxWinStreak)
	assert.Equal(t, 1, got.MaxLossStreak)
}

func TestDetectStreaksBreakevenResetsBoth(t *testing.T) {
	events := []*models.Event{
		resolvedEvent("1", "EURUSD", models.OutcomeWin, 100),
		resolvedEvent("2", "EURUSD", models.OutcomeWin, 200),
		resolvedEvent("3", "EURUSD", models.OutcomeBreakeven, 300),
		resolvedEvent("4", "EURUSD", models.OutcomeWin, 400),
	}
	got := DetectStreaks(events)
	assert.Equal(t, 2, got.MaxWinStreak, "breakeven must not extend a run")
	assert.Equal(t, 0, got.MaxLossStreak)
}

func TestDetectStreaksIgnoresUnresolvedAndUndated(t *testing.T) {
	events := []*models.Event{
		resolvedEvent("1", "EURUSD", models.OutcomeWin, 100),
		{ID: "note", Type: models.TypeGenericEvent, StartAtMs: i64(150)},
		{ID: "undated", Type: models.TypeGenericEvent, Outcome: models.OutcomeLoss},
		resolvedEvent("2", "EURUSD", models.OutcomeWin, 200),
	}
	got := DetectStreaks(events)
	assert.Equal(t, 2, got.MaxWinStreak, "unresolved events are transparent to runs")
	assert.Equal(t, 0, got.MaxLossStreak)
}

func TestDetectStreaksSortsOutOfOrderInput(t *testing.T) {
	events := []*models.Event{
		resolvedEvent("3", "EURUSD", models.OutcomeLoss, 300),
		resolvedEvent("1", "EURUSD", models.OutcomeWin, 100),
		resolvedEvent("2", "EURUSD", models.OutcomeWin, 200),
	}
	got := DetectStreaks(events)
	assert.Equal(t, 2, got.MaxWinStreak)
	assert.Equal(t, 1, got.MaxLossStreak)
}

func TestDetectStreaksEqualTimestampsKeepInputOrder(t *testing.T) {
	events := []*models.Event{
		resolvedEvent("1", "EURUSD", models.OutcomeWin, 100),
		resolvedEvent("2", "EURUSD", models.OutcomeLoss, 100),
		resolvedEvent("3", "EURUSD", models.OutcomeWin, 100),
	}
	got := DetectStreaks(events)
	// ties resolve by original index, so the run is W, L, W
	assert.Equal(t, 1, got.MaxWinStreak)
	assert.Equal(t, 1, got.MaxLossStreak)
}

func TestDetectStreaksEmpty(t *testing.T) {
	got := DetectStreaks(nil)
	assert.Zero(t, got.MaxWinStreak)
	assert.Zero(t, got.MaxLossStreak)
}
