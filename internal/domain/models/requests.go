package models

import "time"

// Requests for committee HTTP endpoints. Defined in domain for consistency and reuse.

// EvaluateRequest asks the committee to judge a single instrument.
// Entry, stop and target are optional; the aggregator derives defaults
// from the snapshot when they are absent.
type EvaluateRequest struct {
	Symbol   string              `json:"symbol" validate:"required"`
	Ticker   TickerSnapshot      `json:"ticker"`
	Market   MarketSnapshot      `json:"market"`
	Catalyst *CatalystDescriptor `json:"catalyst,omitempty"`
	Entry    *float64            `json:"entry,omitempty" validate:"omitempty,gt=0"`
	Stop     *float64            `json:"stop,omitempty" validate:"omitempty,gt=0"`
	Target   *float64            `json:"target,omitempty" validate:"omitempty,gt=0"`
	Capital  float64             `json:"capital" default:"500" validate:"gte=0"`
	Leverage int                 `json:"leverage" default:"5" validate:"gte=1,lte=50"`
}

// ScanCandidate is one instrument inside a batch scan. When Ticker is nil
// the scanner falls back to the latest cached snapshot for the symbol.
type ScanCandidate struct {
	Symbol   string              `json:"symbol" validate:"required"`
	Ticker   *TickerSnapshot     `json:"ticker,omitempty"`
	Catalyst *CatalystDescriptor `json:"catalyst,omitempty"`
}

// ScanRequest evaluates a watchlist of candidates against one market snapshot.
type ScanRequest struct {
	Market     MarketSnapshot  `json:"market"`
	Candidates []ScanCandidate `json:"candidates" validate:"min=1,dive"`
	Capital    float64         `json:"capital" default:"500" validate:"gte=0"`
	Leverage   int             `json:"leverage" default:"5" validate:"gte=1,lte=50"`
	TopN       int             `json:"top_n" default:"5" validate:"gte=1,lte=100"`
	WatchN     int             `json:"watch_n" default:"10" validate:"gte=1,lte=100"`
	Async      bool            `json:"async"`
}

// SkippedCandidate records why an instrument never reached the committee
// or why the committee passed on it.
type SkippedCandidate struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
	Score  int    `json:"score"`
}

// ScanResult is the outcome of one watchlist scan: BUY decisions ranked by
// score, WATCHLIST decisions ranked by score, and everything else skipped.
type ScanResult struct {
	ScanID        string              `json:"scan_id"`
	Timestamp     time.Time           `json:"timestamp"`
	Regime        RegimeResult        `json:"regime"`
	Opportunities []CommitteeDecision `json:"opportunities"`
	Watchlist     []CommitteeDecision `json:"watchlist"`
	Skipped       []SkippedCandidate  `json:"skipped"`
	TotalScanned  int                 `json:"total_scanned"`
}
