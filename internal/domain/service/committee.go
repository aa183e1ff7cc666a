package service

import "TradeCommittee/internal/domain/models"

// EvaluateInput is everything the committee needs for one verdict.
// Entry, stop and target override the derived defaults when set.
// Capital and Leverage fall back to the configured defaults when zero.
type EvaluateInput struct {
	Symbol   string
	Ticker   models.TickerSnapshot
	Market   models.MarketSnapshot
	Catalyst *models.CatalystDescriptor
	Entry    *float64
	Stop     *float64
	Target   *float64
	Capital  float64
	Leverage int
}

// Committee turns one candidate into one decision. Implementations must be
// pure: no I/O, no shared state, always a well-formed decision.
type Committee interface {
	Evaluate(in EvaluateInput) models.CommitteeDecision
}
