package committee

import (
	"fmt"

	"TradeCommittee/internal/domain/models"
)

// EvaluateSeykota scores trend alignment (0-20): price vs EMA20 (6),
// EMA20 vs EMA50 structure (6), EMA50 vs EMA200 long-term trend (4) and
// 10-period momentum (4).
func EvaluateSeykota(t models.TickerSnapshot) models.SeykotaResult {
	price := t.Price
	ema20, ema50, ema200 := t.EMA20, t.EMA50, t.EMA200
	price10dAgo := t.Price10DAgo
	if price10dAgo <= 0 {
		price10dAgo = price
	}

	score := 0
	reasoning := make([]string, 0, 4)

	// 1. Price versus the short average.
	if price > 0 && ema20 > 0 {
		if price > ema20 {
			score += 6
			pctAbove := (price - ema20) / ema20 * 100
			reasoning = append(reasoning, fmt.Sprintf("price above EMA20 (+%.1f%%, short-term uptrend)", pctAbove))
		} else if price >= ema20*0.97 {
			score += 3
			reasoning = append(reasoning, "price near EMA20 (key support zone)")
		} else {
			pctBelow := (ema20 - price) / ema20 * 100
			reasoning = append(reasoning, fmt.Sprintf("price below EMA20 (-%.1f%%, short-term weakness)", pctBelow))
		}
	} else {
		reasoning = append(reasoning, "no EMA20 data")
	}

	// 2. Golden cross structure.
	golden := false
	if ema20 > 0 && ema50 > 0 {
		if ema20 > ema50 {
			golden = true
			score += 6
			reasoning = append(reasoning, "EMA20 above EMA50 (bullish structure)")
		} else {
			reasoning = append(reasoning, "EMA20 below EMA50 (bearish cross)")
		}
	} else {
		reasoning = append(reasoning, "no EMA data for structure")
	}

	// 3. Long-term trend. Missing EMA200 with a live EMA50 is scored
	// neutral rather than punished.
	switch {
	case ema50 > 0 && ema200 > 0 && ema50 > ema200:
		score += 4
		reasoning = append(reasoning, "EMA50 above EMA200 (major trend up)")
	case ema50 > 0 && ema200 > 0:
		reasoning = append(reasoning, "EMA50 below EMA200 (major trend down, fighting the tape)")
	case ema50 > 0:
		score += 2
		reasoning = append(reasoning, "no EMA200, assuming neutral long-term trend")
	default:
		reasoning = append(reasoning, "no long EMA data")
	}

	// 4. Recent momentum.
	momentum := 0.0
	if price > 0 && price10dAgo > 0 {
		momentum = (price - price10dAgo) / price10dAgo * 100
		switch {
		case momentum > 5:
			score += 4
			reasoning = append(reasoning, fmt.Sprintf("strong momentum +%.1f%% in 10d", momentum))
		case momentum > 2:
			score += 3
			reasoning = append(reasoning, fmt.Sprintf("positive momentum +%.1f%% in 10d", momentum))
		case momentum > 0:
			score += 2
			reasoning = append(reasoning, fmt.Sprintf("mild momentum +%.1f%% in 10d", momentum))
		case momentum > -3:
			score += 1
			reasoning = append(reasoning, fmt.Sprintf("flat momentum %.1f%% in 10d", momentum))
		default:
			reasoning = append(reasoning, fmt.Sprintf("negative momentum %.1f%% in 10d", momentum))
		}
	} else {
		reasoning = append(reasoning, "no momentum data")
	}

	aligned := price > 0 && ema20 > 0 && ema50 > 0 && ema200 > 0 &&
		price > ema20 && ema20 > ema50 && ema50 > ema200

	return models.SeykotaResult{
		EvaluatorResult: models.EvaluatorResult{
			Style:     "seykota",
			Score:     score,
			MaxScore:  MaxSeykotaScore,
			Reasoning: reasoning,
		},
		Signals: models.SeykotaSignals{
			TrendAligned: aligned,
			Momentum10D:  momentum,
			AboveEMA20:   ema20 > 0 && price > ema20,
			EMAsGolden:   golden,
		},
	}
}
