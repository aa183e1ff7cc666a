package committee

import (
	"fmt"
	"time"

	"TradeCommittee/internal/domain/models"
	domsvc "TradeCommittee/internal/domain/service"
)

// Aggregator convenes the committee: it derives missing trade parameters,
// runs the five evaluators on the same inputs, sums their scores, applies
// the sector adjustment, enforces the hard-reject veto and maps the final
// score to a decision.
type Aggregator struct {
	params Params
}

// NewAggregator builds an aggregator with the given committee parameters.
func NewAggregator(p Params) *Aggregator {
	return &Aggregator{params: p}
}

// Evaluate produces one CommitteeDecision. It handles every input
// combination locally; the only degenerate case is a missing price, which
// yields a zero-score SKIP with an empty breakdown.
func (a *Aggregator) Evaluate(in domsvc.EvaluateInput) models.CommitteeDecision {
	capital := in.Capital
	if capital <= 0 {
		capital = a.params.Capital
	}
	leverage := in.Leverage
	if leverage <= 0 {
		leverage = a.params.Leverage
	}

	price := in.Ticker.Price
	if price <= 0 {
		return a.degenerate(in.Symbol, "no price data")
	}

	entry, stop, target := a.deriveTradeLevels(in)

	regime := DetectRegime(in.Market)
	turtles := EvaluateTurtles(in.Ticker)
	seykota := EvaluateSeykota(in.Ticker)
	catalyst := EvaluateCatalyst(in.Ticker, in.Catalyst)
	riskReward := EvaluateRiskReward(in.Ticker, entry, stop, target, capital, leverage, a.params)

	rawScore := regime.Score + turtles.Score + seykota.Score + catalyst.Score + riskReward.Score
	finalScore := ApplySectorAdjustment(rawScore, in.Ticker.Sector, regime)
	finalScore = clampScore(finalScore, 0, 100)
	sectorAdjustment := finalScore - rawScore

	var decision models.Decision
	var reason string
	switch {
	case riskReward.HardReject:
		decision = models.DecisionReject
		reason = fmt.Sprintf("R:R below the mandatory %.0f:1 minimum", a.params.MinRiskReward)
	case finalScore >= a.params.BuyScore:
		decision = models.DecisionBuy
		reason = fmt.Sprintf("score %d/100, high-conviction opportunity", finalScore)
	case finalScore >= a.params.WatchScore:
		decision = models.DecisionWatchlist
		reason = fmt.Sprintf("score %d/100, monitor for a better entry", finalScore)
	default:
		decision = models.DecisionSkip
		reason = fmt.Sprintf("score %d/100, insufficient conviction", finalScore)
	}

	return models.CommitteeDecision{
		Symbol:         in.Symbol,
		Decision:       decision,
		DecisionReason: reason,
		FinalScore:     finalScore,
		Regime:         regime,
		Breakdown: models.ScoreBreakdown{
			Regime:           regime.Score,
			Turtles:          turtles.Score,
			Seykota:          seykota.Score,
			Catalyst:         catalyst.Score,
			RiskReward:       riskReward.Score,
			SectorAdjustment: sectorAdjustment,
			RawScore:         rawScore,
		},
		Reasoning: models.CommitteeReasoning{
			Regime:     regime.Reasoning,
			Turtles:    turtles.Reasoning,
			Seykota:    seykota.Reasoning,
			Catalyst:   catalyst.Reasoning,
			RiskReward: riskReward.Reasoning,
		},
		TradeParams: models.TradeParams{
			Entry:     round2(entry),
			Stop:      round2(stop),
			Target:    round2(target),
			RRRatio:   riskReward.Signals.RRRatio,
			Position:  riskReward.Signals.SuggestedPosition,
			StopPct:   riskReward.Signals.StopPct,
			TargetPct: round2((target - entry) / entry * 100),
		},
		Signals: models.DecisionSignals{
			RegimeType: regime.Regime,
			Turtles:    turtles.Signals,
			Seykota:    seykota.Signals,
			Catalyst:   catalyst.Signals,
			RiskReward: riskReward.Signals,
		},
		EvaluatedAt: time.Now().UTC(),
	}
}

// deriveTradeLevels fills in entry, stop and target when the caller did not
// supply them: entry a small limit-order discount off the last price, stop
// two ATRs down (or a beta-keyed percent without ATR), target 15% up or 20%
// on strong momentum.
func (a *Aggregator) deriveTradeLevels(in domsvc.EvaluateInput) (entry, stop, target float64) {
	price := in.Ticker.Price

	if in.Entry != nil {
		entry = *in.Entry
	} else {
		entry = price * 0.995
	}

	if in.Stop != nil {
		stop = *in.Stop
	} else if in.Ticker.ATR14 > 0 {
		stop = price - 2*in.Ticker.ATR14
	} else {
		beta := in.Ticker.Beta
		if beta <= 0 {
			beta = 1.5
		}
		stopPct := 6.0
		switch {
		case beta >= 2.0:
			stopPct = 10.0
		case beta >= 1.5:
			stopPct = 8.0
		}
		stop = price * (1 - stopPct/100)
	}

	if in.Target != nil {
		target = *in.Target
	} else {
		targetPct := 15.0
		if in.Ticker.ChangePct > 2 {
			targetPct = 20.0 // momentum day, stretch the target
		}
		target = price * (1 + targetPct/100)
	}
	return entry, stop, target
}

// degenerate is the SKIP result for instruments that cannot be evaluated.
func (a *Aggregator) degenerate(symbol, msg string) models.CommitteeDecision {
	return models.CommitteeDecision{
		Symbol:         symbol,
		Decision:       models.DecisionSkip,
		DecisionReason: msg,
		FinalScore:     0,
		Regime: models.RegimeResult{
			Regime:     models.RegimeUnknown,
			Score:      0,
			Reasoning:  msg,
			SectorBias: models.SectorBias{Boost: []string{}, Penalize: []string{}},
		},
		Reasoning:   models.CommitteeReasoning{Regime: msg, Turtles: []string{}, Seykota: []string{}, Catalyst: []string{}, RiskReward: []string{}},
		EvaluatedAt: time.Now().UTC(),
	}
}

var _ domsvc.Committee = (*Aggregator)(nil)
