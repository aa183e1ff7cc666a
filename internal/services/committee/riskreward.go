package committee

import (
	"fmt"

	"TradeCommittee/internal/domain/models"
)

// EvaluateRiskReward scores the statistical edge of an entry/stop/target
// triple (0-15): reward:risk ratio (8), stop structure in ATR terms (4)
// and position sizing within leveraged capacity (3).
//
// This is the only member with veto power: a reward:risk below
// p.MinRiskReward sets HardReject no matter what the rest of the
// committee scored.
func EvaluateRiskReward(t models.TickerSnapshot, entry, stop, target, capital float64, leverage int, p Params) models.RiskRewardResult {
	if entry <= 0 || stop <= 0 || target <= 0 {
		return models.RiskRewardResult{
			EvaluatorResult: models.EvaluatorResult{
				Style:     "risk_reward",
				Score:     0,
				MaxScore:  MaxRiskRewardScore,
				Reasoning: []string{"invalid prices for reward:risk calculation"},
			},
			HardReject: true,
		}
	}

	risk := entry - stop
	reward := target - entry
	if risk <= 0 {
		return models.RiskRewardResult{
			EvaluatorResult: models.EvaluatorResult{
				Style:     "risk_reward",
				Score:     0,
				MaxScore:  MaxRiskRewardScore,
				Reasoning: []string{"invalid stop (must sit below entry)"},
			},
			HardReject: true,
			Signals:    models.RiskRewardSignals{RiskAmount: capital * p.MaxRiskPct},
		}
	}

	rr := reward / risk
	price := t.Price
	if price <= 0 {
		price = entry
	}

	score := 0
	reasoning := make([]string, 0, 3)

	// 1. Reward:risk, the core of the edge.
	switch {
	case rr >= 4:
		score += 8
		reasoning = append(reasoning, fmt.Sprintf("excellent R:R %.1f:1", rr))
	case rr >= 3:
		score += 6
		reasoning = append(reasoning, fmt.Sprintf("acceptable R:R %.1f:1 (minimum required)", rr))
	case rr >= 2:
		score += 3
		reasoning = append(reasoning, fmt.Sprintf("marginal R:R %.1f:1 (under recommended minimum)", rr))
	default:
		reasoning = append(reasoning, fmt.Sprintf("insufficient R:R %.1f:1, do not trade", rr))
	}

	// 2. Stop structure. With ATR on hand the stop should sit a sane
	// number of ranges away; without it fall back to a percent sanity check.
	stopATR := 0.0
	if t.ATR14 > 0 && price > 0 {
		stopATR = risk / t.ATR14
		switch {
		case stopATR >= 1.5 && stopATR <= 2.5:
			score += 4
			reasoning = append(reasoning, fmt.Sprintf("stop at %.1fx ATR (well structured)", stopATR))
		case stopATR >= 1 && stopATR <= 3:
			score += 2
			reasoning = append(reasoning, fmt.Sprintf("stop at %.1fx ATR (acceptable)", stopATR))
		case stopATR < 1:
			reasoning = append(reasoning, fmt.Sprintf("stop at %.1fx ATR (too tight, noise will hit it)", stopATR))
		default:
			reasoning = append(reasoning, fmt.Sprintf("stop at %.1fx ATR (too wide, excessive risk)", stopATR))
		}
	} else {
		stopPct := risk / entry * 100
		if stopPct <= 7 {
			score += 2
			reasoning = append(reasoning, fmt.Sprintf("stop %.1f%% without ATR data (assuming reasonable)", stopPct))
		} else {
			reasoning = append(reasoning, fmt.Sprintf("stop %.1f%% without ATR data to validate", stopPct))
		}
	}

	// 3. Sizing: risk budget is MaxRiskPct of capital; the resulting
	// position has to fit leveraged exposure capacity.
	maxRisk := capital * p.MaxRiskPct
	capacity := capital * float64(leverage)
	shares := maxRisk / risk
	position := shares * entry
	switch {
	case position <= capacity:
		score += 3
		reasoning = append(reasoning, fmt.Sprintf("sizing viable: %.0f exposure for %.0f risk", position, maxRisk))
	case position <= capacity*1.2:
		score += 1
		reasoning = append(reasoning, fmt.Sprintf("sizing tight: %.0f (capacity %.0f)", position, capacity))
	default:
		reasoning = append(reasoning, fmt.Sprintf("sizing over capacity: needs %.0f (capacity %.0f)", position, capacity))
	}

	suggested := position
	if suggested > capacity {
		suggested = capacity
	}
	stopATRSignal := 0.0
	if t.ATR14 > 0 {
		stopATRSignal = round2(risk / t.ATR14)
	}

	return models.RiskRewardResult{
		EvaluatorResult: models.EvaluatorResult{
			Style:     "risk_reward",
			Score:     score,
			MaxScore:  MaxRiskRewardScore,
			Reasoning: reasoning,
		},
		HardReject: rr < p.MinRiskReward,
		Signals: models.RiskRewardSignals{
			RRRatio:           round2(rr),
			StopATRMultiple:   stopATRSignal,
			SuggestedPosition: round2(suggested),
			RiskAmount:        maxRisk,
			StopPct:           round2(risk / entry * 100),
		},
	}
}
