package analytics

import (
	"math"
	"testing"

	"TradeLens/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNilRecord(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}

func TestNormalizeDefaults(t *testing.T) {
	ev := Normalize(&models.RawRecord{})
	require.NotNil(t, ev)
	assert.Equal(t, models.TypeGenericEvent, ev.Type)
	assert.NotEmpty(t, ev.ID, "id must be synthesized when every candidate is empty")
	assert.Empty(t, ev.Outcome)
	assert.Nil(t, ev.RMultiple)
	assert.Nil(t, ev.StartAtMs)
}

func TestNormalizeIDPreference(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawRecord
		want string
	}{
		{
			name: "payload id wins",
			raw: models.RawRecord{
				ID:      "raw-1",
				Key:     "key-1",
				Payload: &models.RawPayload{ID: "p-1"},
			},
			want: "p-1",
		},
		{
			name: "raw id before key",
			raw:  models.RawRecord{ID: "raw-1", Key: "key-1"},
			want: "raw-1",
		},
		{
			name: "key before title",
			raw:  models.RawRecord{Key: "key-1"},
			want: "key-1",
		},
		{
			name: "composed title as last resort",
			raw:  models.RawRecord{Payload: &models.RawPayload{Type: "note", Symbol: "EURUSD"}},
			want: "note EURUSD",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Normalize(&tt.raw)
			require.NotNil(t, ev)
			assert.Equal(t, tt.want, ev.ID)
		})
	}
}

func TestNormalizeTitleFallback(t *testing.T) {
	ev := Normalize(&models.RawRecord{
		Payload: &models.RawPayload{Type: "signal_proposed", Symbol: "XAUUSD", Timeframe: "M15"},
	})
	require.NotNil(t, ev)
	assert.Equal(t, "signal_proposed XAUUSD M15", ev.Title)

	ev = Normalize(&models.RawRecord{
		Payload: &models.RawPayload{Title: "  My note  ", Symbol: "XAUUSD"},
	})
	require.NotNil(t, ev)
	assert.Equal(t, "My note", ev.Title)
}

func TestNormalizeAgentFromTags(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawRecord
		want string
	}{
		{
			name: "payload agent wins over tags",
			raw: models.RawRecord{
				Tags:    []string{"agent:scout"},
				Payload: &models.RawPayload{AgentID: "sniper"},
			},
			want: "sniper",
		},
		{
			name: "case-insensitive tag prefix",
			raw:  models.RawRecord{Tags: []string{"setup:breakout", "Agent:scout"}},
			want: "scout",
		},
		{
			name: "empty tag value normalizes to absent",
			raw:  models.RawRecord{Tags: []string{"agent:"}},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Normalize(&tt.raw)
			require.NotNil(t, ev)
			assert.Equal(t, tt.want, ev.AgentID)
		})
	}
}

func TestNormalizeTimestampFallback(t *testing.T) {
	ev := Normalize(&models.RawRecord{
		CreatedAtMs: float64(1000),
		UpdatedAtMs: float64(2000),
		Payload:     &models.RawPayload{StartAtMs: float64(500)},
	})
	require.NotNil(t, ev)
	require.NotNil(t, ev.StartAtMs)
	assert.Equal(t, int64(500), *ev.StartAtMs)

	ev = Normalize(&models.RawRecord{CreatedAtMs: "1000", UpdatedAtMs: float64(2000)})
	require.NotNil(t, ev)
	require.NotNil(t, ev.StartAtMs)
	assert.Equal(t, int64(1000), *ev.StartAtMs, "numeric strings coerce")

	ev = Normalize(&models.RawRecord{CreatedAtMs: "not-a-number", UpdatedAtMs: float64(2000)})
	require.NotNil(t, ev)
	require.NotNil(t, ev.StartAtMs)
	assert.Equal(t, int64(2000), *ev.StartAtMs, "unusable candidate falls through")
}

func TestNormalizeRejectsNonFiniteNumbers(t *testing.T) {
	ev := Normalize(&models.RawRecord{
		Payload: &models.RawPayload{
			RMultiple:  math.NaN(),
			EndAtMs:    math.Inf(1),
			DurationMs: "oops",
		},
	})
	require.NotNil(t, ev)
	assert.Nil(t, ev.RMultiple)
	assert.Nil(t, ev.EndAtMs)
	assert.Nil(t, ev.DurationMs)
}

func TestNormalizeOutcomeUppercased(t *testing.T) {
	ev := Normalize(&models.RawRecord{Payload: &models.RawPayload{Outcome: "win"}})
	require.NotNil(t, ev)
	assert.Equal(t, models.OutcomeWin, ev.Outcome)
}

func TestNormalizeAllDropsNilRecords(t *testing.T) {
	events := NormalizeAll([]*models.RawRecord{nil, {ID: "a"}, nil})
	require.Len(t, events, 1)
	assert.Equal(t, "a", events[0].ID)
}
