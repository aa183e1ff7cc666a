package committee

import (
	"fmt"

	"TradeCommittee/internal/domain/models"
)

// EvaluateTurtles scores the breakout-with-volume technical setup (0-25):
// 20-day breakout (10), volume confirmation (8), extension penalty (4) and
// ATR quality for stop placement (3).
func EvaluateTurtles(t models.TickerSnapshot) models.TurtlesResult {
	price := t.Price
	high := t.High20D
	if high <= 0 {
		// no rolling high on record, treat as no breakout
		high = price
	}

	score := 0
	reasoning := make([]string, 0, 4)

	// 1. 20-day breakout. Strictly above the high; at or just under counts
	// as "near breakout".
	breakout := price > high
	if breakout {
		score += 10
		pctAbove := (price - high) / high * 100
		reasoning = append(reasoning, fmt.Sprintf("breakout: price %.2f > 20d high %.2f (+%.1f%%)", price, high, pctAbove))
	} else if high > 0 && price >= high*0.98 {
		score += 5
		pctBelow := (high - price) / high * 100
		reasoning = append(reasoning, fmt.Sprintf("near breakout: only %.1f%% under 20d high", pctBelow))
	} else if high > 0 {
		pctBelow := (high - price) / high * 100
		reasoning = append(reasoning, fmt.Sprintf("no breakout: %.1f%% under 20d high", pctBelow))
	} else {
		reasoning = append(reasoning, "no breakout: no price data")
	}

	// 2. Volume confirmation.
	volumeRatio := 1.0
	if t.AvgVolume20D > 0 {
		volumeRatio = t.Volume / t.AvgVolume20D
	}
	switch {
	case volumeRatio > 1.5:
		score += 8
		reasoning = append(reasoning, fmt.Sprintf("volume %.1fx average (strong confirmation)", volumeRatio))
	case volumeRatio > 1.2:
		score += 4
		reasoning = append(reasoning, fmt.Sprintf("volume %.1fx average (weak confirmation)", volumeRatio))
	default:
		reasoning = append(reasoning, fmt.Sprintf("insufficient volume (%.1fx)", volumeRatio))
	}

	// 3. Extension: punish chasing a breakout that already ran.
	if breakout {
		extension := (price - high) / high * 100
		switch {
		case extension < 5:
			score += 4
			reasoning = append(reasoning, fmt.Sprintf("early entry: only %.1f%% above breakout", extension))
		case extension < 10:
			score += 2
			reasoning = append(reasoning, fmt.Sprintf("moderate extension: %.1f%% above breakout", extension))
		default:
			reasoning = append(reasoning, fmt.Sprintf("overextended: %.1f%% above breakout (chase risk)", extension))
		}
	} else {
		score += 2
		reasoning = append(reasoning, "no overextension (no active breakout)")
	}

	// 4. ATR quality: enough range for a workable stop, not so much that
	// the stop is noise.
	atrPct := 0.0
	if price > 0 && t.ATR14 > 0 {
		atrPct = t.ATR14 / price * 100
		switch {
		case atrPct >= 2 && atrPct <= 6:
			score += 3
			reasoning = append(reasoning, fmt.Sprintf("ATR %.1f%%: manageable stop", atrPct))
		case atrPct >= 1 && atrPct < 2:
			score += 1
			reasoning = append(reasoning, fmt.Sprintf("ATR %.1f%%: little movement", atrPct))
		case atrPct > 6 && atrPct <= 8:
			score += 1
			reasoning = append(reasoning, fmt.Sprintf("ATR %.1f%%: volatile but manageable", atrPct))
		case atrPct > 8:
			reasoning = append(reasoning, fmt.Sprintf("ATR %.1f%%: too volatile", atrPct))
		default:
			reasoning = append(reasoning, fmt.Sprintf("ATR %.1f%%: too quiet", atrPct))
		}
	} else {
		reasoning = append(reasoning, "no ATR data")
	}

	return models.TurtlesResult{
		EvaluatorResult: models.EvaluatorResult{
			Style:     "turtles",
			Score:     score,
			MaxScore:  MaxTurtlesScore,
			Reasoning: reasoning,
		},
		Signals: models.TurtlesSignals{
			Breakout:        breakout,
			VolumeConfirmed: volumeRatio > 1.5,
			ATRPct:          atrPct,
			VolumeRatio:     volumeRatio,
		},
	}
}
