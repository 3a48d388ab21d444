package models

// Requests for analytics HTTP endpoints. Defined in domain for consistency and reuse.

type DashboardRequest struct {
	SinceMs int64  `query:"since" json:"since" validate:"gte=0"`
	Symbol  string `query:"symbol" json:"symbol" default:"all"`
	Type    string `query:"type" json:"type" default:"all"`
	Outcome string `query:"outcome" json:"outcome" default:"all"`
	AgentID string `query:"agent" json:"agent" default:"all"`
	Limit   int    `query:"limit" json:"limit" default:"5" validate:"gte=1,lte=50"`
}

type TopRequest struct {
	SinceMs int64  `query:"since" json:"since" validate:"gte=0"`
	Symbol  string `query:"symbol" json:"symbol" default:"all"`
	Type    string `query:"type" json:"type" default:"all"`
	Outcome string `query:"outcome" json:"outcome" default:"all"`
	AgentID string `query:"agent" json:"agent" default:"all"`
	By      string `query:"by" json:"by" default:"symbol" validate:"oneof=symbol timeframe agent"`
	Limit   int    `query:"limit" json:"limit" default:"5" validate:"gte=1,lte=50"`
}

// Filter converts request fields into the engine's filter configuration.
func (r *DashboardRequest) Filter() FilterConfig {
	return FilterConfig{
		SinceMs: r.SinceMs,
		Symbol:  r.Symbol,
		Type:    r.Type,
		Outcome: r.Outcome,
		AgentID: r.AgentID,
	}
}

// Filter converts request fields into the engine's filter configuration.
func (r *TopRequest) Filter() FilterConfig {
	return FilterConfig{
		SinceMs: r.SinceMs,
		Symbol:  r.Symbol,
		Type:    r.Type,
		Outcome: r.Outcome,
		AgentID: r.AgentID,
	}
}
