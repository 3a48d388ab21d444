package models

// Lifecycle event types the cycle analyzer recognizes. Calendar events carry
// free-form types and fall through to the generic "event" default.
const (
	TypeSignalProposed  = "signal_proposed"
	TypeSignalExecuted  = "signal_executed"
	TypeSignalResolved  = "signal_outcome_resolved"
	TypeGenericEvent    = "event"
)

// Resolved trade outcomes. Anything else (or empty) counts as unresolved.
const (
	OutcomeWin       = "WIN"
	OutcomeLoss      = "LOSS"
	OutcomeBreakeven = "BE"
)

// RawPayload is the nested payload of a journal record as the assistant
// backend emits it. Every field is optional; numeric fields are loosely
// typed because sources send both numbers and numeric strings.
type RawPayload struct {
	ID         string `json:"id,omitempty"`
	Type       string `json:"type,omitempty"`
	Title      string `json:"title,omitempty"`
	Symbol     string `json:"symbol,omitempty"`
	Timeframe  string `json:"timeframe,omitempty"`
	Broker     string `json:"broker,omitempty"`
	AgentID    string `json:"agentId,omitempty"`
	Outcome    string `json:"outcome,omitempty"`
	Status     string `json:"status,omitempty"`
	SignalID   string `json:"signalId,omitempty"`
	CaseID     string `json:"caseId,omitempty"`
	LessonID   string `json:"lessonId,omitempty"`
	RMultiple  any    `json:"rMultiple,omitempty"`
	StartAtMs  any    `json:"startAtMs,omitempty"`
	EndAtMs    any    `json:"endAtMs,omitempty"`
	DurationMs any    `json:"durationMs,omitempty"`
}

// RawRecord is an unnormalized record from the event store or the journal
// topic. All fields optional; the normalizer decides what is usable.
type RawRecord struct {
	ID          string      `json:"id,omitempty"`
	Key         string      `json:"key,omitempty"`
	Kind        string      `json:"kind,omitempty"`
	Symbol      string      `json:"symbol,omitempty"`
	Timeframe   string      `json:"timeframe,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	CreatedAtMs any         `json:"createdAtMs,omitempty"`
	UpdatedAtMs any         `json:"updatedAtMs,omitempty"`
	Payload     *RawPayload `json:"payload,omitempty"`
}

// Event is the canonical, immutable record every analytics pass consumes.
// Absent string fields are ""; numeric fields are nil or finite, never NaN.
type Event struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Title      string   `json:"title,omitempty"`
	Symbol     string   `json:"symbol,omitempty"`
	Timeframe  string   `json:"timeframe,omitempty"`
	Broker     string   `json:"broker,omitempty"`
	AgentID    string   `json:"agentId,omitempty"`
	Outcome    string   `json:"outcome,omitempty"`
	Status     string   `json:"status,omitempty"`
	SignalID   string   `json:"signalId,omitempty"`
	CaseID     string   `json:"caseId,omitempty"`
	LessonID   string   `json:"lessonId,omitempty"`
	RMultiple  *float64 `json:"rMultiple,omitempty"`
	StartAtMs  *int64   `json:"startAtMs,omitempty"`
	EndAtMs    *int64   `json:"endAtMs,omitempty"`
	DurationMs *int64   `json:"durationMs,omitempty"`
}

// Resolved reports whether the event carries a resolved trade outcome.
func (e *Event) Resolved() bool {
	switch e.Outcome {
	case OutcomeWin, OutcomeLoss, OutcomeBreakeven:
		return true
	default:
		return false
	}
}

// When returns the event's effective timestamp, or 0 when it has none.
// Timestamp-less events sort as the oldest and are never range-filtered.
func (e *Event) When() int64 {
	if e.StartAtMs != nil {
		return *e.StartAtMs
	}
	return 0
}

// SignalCycle holds the lifecycle timestamps folded from all events sharing
// one signal id. First seen wins per field; recomputed per call, never stored.
type SignalCycle struct {
	ProposedAtMs *int64
	ExecutedAtMs *int64
	ResolvedAtMs *int64
}

// FilterConfig selects the working set every analytics pass shares.
// Empty or "all" dimension values disable that predicate.
type FilterConfig struct {
	SinceMs int64
	Symbol  string
	Type    string
	Outcome string
	AgentID string
}
