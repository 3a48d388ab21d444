package models

// Summary holds the counting pass output.
type Summary struct {
	DistinctSymbolCount int            `json:"distinctSymbolCount"`
	OutcomeHistogram    map[string]int `json:"outcomeHistogram"`
}

// Streaks holds the longest consecutive win/loss runs in time order.
type Streaks struct {
	MaxWinStreak  int `json:"maxWinStreak"`
	MaxLossStreak int `json:"maxLossStreak"`
}

// SessionStats aggregates resolved trades falling into one fixed intraday
// window. Averages are nil when the window saw no usable samples.
type SessionStats struct {
	Name           string   `json:"name"`
	StartHour      int      `json:"startHour"`
	EndHour        int      `json:"endHour"`
	Trades         int      `json:"trades"`
	Wins           int      `json:"wins"`
	Losses         int      `json:"losses"`
	Breakevens     int      `json:"breakevens"`
	WinRatePct     *int     `json:"winRatePct"`
	AvgR           *float64 `json:"avgR"`
	AvgDurationMin *int64   `json:"avgDurationMin"`
}

// CycleStats holds average signal lifecycle latencies in minutes.
// Each average is nil when no cycle produced a valid sample for it.
type CycleStats struct {
	AvgToExecuteMin *int64 `json:"avgToExecuteMin"`
	AvgToResolveMin *int64 `json:"avgToResolveMin"`
	AvgToOutcomeMin *int64 `json:"avgToOutcomeMin"`
}

// RankRow is one leaderboard entry produced by the top-N pass.
type RankRow struct {
	Key        string `json:"key"`
	Trades     int    `json:"trades"`
	WinRatePct int    `json:"winRate"`
}

// Bundle is the full metrics payload the rendering layer consumes.
type Bundle struct {
	FilteredCount int            `json:"filteredCount"`
	Summary       Summary        `json:"summary"`
	Streaks       Streaks        `json:"streaks"`
	Sessions      []SessionStats `json:"sessions"`
	Cycles        CycleStats     `json:"cycles"`
	TopSymbols    []RankRow      `json:"topSymbols"`
	TopTimeframes []RankRow      `json:"topTimeframes"`
	TopAgents     []RankRow      `json:"topAgents"`
}
