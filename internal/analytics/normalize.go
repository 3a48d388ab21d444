// Package analytics is the trading outcome analytics engine: pure,
// synchronous transformations from journal event records to derived
// performance metrics. Nothing in this package does I/O, holds state
// between calls, or mutates its inputs.
package analytics

import (
	"strings"

	"TradeLens/internal/domain/models"

	"github.com/oklog/ulid/v2"
)

const agentTagPrefix = "agent:"

// Normalize maps a raw journal record into a canonical Event. It never
// panics and never returns a partially-built record: unusable input yields
// nil and the record is dropped from the canonical set.
func Normalize(raw *models.RawRecord) *models.Event {
	if raw == nil {
		return nil
	}
	payload := raw.Payload
	if payload == nil {
		payload = &models.RawPayload{}
	}

	typ := strings.TrimSpace(payload.Type)
	if typ == "" {
		typ = models.TypeGenericEvent
	}

	symbol := firstNonEmpty(payload.Symbol, raw.Symbol)
	timeframe := firstNonEmpty(payload.Timeframe, raw.Timeframe)

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		title = composeTitle(typ, symbol, timeframe)
	}

	id := firstNonEmpty(payload.ID, raw.ID, raw.Key, title)
	if id == "" {
		id = ulid.Make().String()
	}

	startAt := toMillis(payload.StartAtMs)
	if startAt == nil {
		startAt = toMillis(raw.CreatedAtMs)
	}
	if startAt == nil {
		startAt = toMillis(raw.UpdatedAtMs)
	}

	outcome := strings.TrimSpace(payload.Outcome)
	if outcome != "" {
		outcome = strings.ToUpper(outcome)
	}

	return &models.Event{
		ID:         id,
		Type:       typ,
		Title:      title,
		Symbol:     symbol,
		Timeframe:  timeframe,
		Broker:     strings.TrimSpace(payload.Broker),
		AgentID:    agentID(payload, raw.Tags),
		Outcome:    outcome,
		Status:     strings.TrimSpace(payload.Status),
		SignalID:   strings.TrimSpace(payload.SignalID),
		CaseID:     strings.TrimSpace(payload.CaseID),
		LessonID:   strings.TrimSpace(payload.LessonID),
		RMultiple:  toFloat(payload.RMultiple),
		StartAtMs:  startAt,
		EndAtMs:    toMillis(payload.EndAtMs),
		DurationMs: toMillis(payload.DurationMs),
	}
}

// NormalizeAll maps a raw batch, dropping unusable records.
func NormalizeAll(raws []*models.RawRecord) []*models.Event {
	events := make([]*models.Event, 0, len(raws))
	for _, raw := range raws {
		if ev := Normalize(raw); ev != nil {
			events = append(events, ev)
		}
	}
	return events
}

// agentID prefers the payload field, then the first "agent:<id>" tag
// (case-insensitive prefix) with the prefix stripped.
func agentID(payload *models.RawPayload, tags []string) string {
	if id := strings.TrimSpace(payload.AgentID); id != "" {
		return id
	}
	for _, tag := range tags {
		if len(tag) >= len(agentTagPrefix) && strings.EqualFold(tag[:len(agentTagPrefix)], agentTagPrefix) {
			if id := strings.TrimSpace(tag[len(agentTagPrefix):]); id != "" {
				return id
			}
		}
	}
	return ""
}

func composeTitle(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
