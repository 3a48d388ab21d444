package analytics

import (
	"testing"

	"TradeLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	events := []*models.Event{
		resolvedEvent("1", "EURUSD", models.OutcomeWin, 10),
		resolvedEvent("2", "EURUSD", models.OutcomeLoss, 20),
		resolvedEvent("3", "XAUUSD", models.OutcomeWin, 30),
		{ID: "4", Type: models.TypeGenericEvent},
	}
	got := Summarize(events)
	assert.Equal(t, 2, got.DistinctSymbolCount)
	assert.Equal(t, map[string]int{
		models.OutcomeWin:  2,
		models.OutcomeLoss: 1,
		NoOutcomeBucket:    1,
	}, got.OutcomeHistogram)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	assert.Zero(t, got.DistinctSymbolCount)
	assert.Empty(t, got.OutcomeHistogram)
}
