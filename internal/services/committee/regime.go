package committee

import (
	"fmt"
	"strings"

	"TradeCommittee/internal/domain/models"
)

// Sector lists behind each regime's bias. Matching is case-insensitive
// substring against the instrument's sector label.
var (
	riskOnBoost     = []string{"tech", "consumer_discretionary", "semiconductors"}
	riskOffBoost    = []string{"utilities", "healthcare", "staples"}
	riskOffPenalize = []string{"tech", "growth", "small_caps"}
)

// DetectRegime classifies the macro condition from volatility, broad index
// trend and breadth. It never fails: without a volatility reading it returns
// the unknown regime with a neutral score and no sector bias.
func DetectRegime(m models.MarketSnapshot) models.RegimeResult {
	if m.VIX == nil {
		return models.RegimeResult{
			Regime:     models.RegimeUnknown,
			Score:      10,
			Reasoning:  "no volatility data, assuming neutral conditions",
			SectorBias: models.SectorBias{Boost: []string{}, Penalize: []string{}},
		}
	}

	vix := *m.VIX
	trendUp := m.SPYTrendUp()
	breadth := m.BreadthOrNeutral()

	// Risk-on: low volatility in an uptrend. Expansive breadth confirms the
	// read but adds nothing beyond the fixed ceiling.
	if vix < 18 && trendUp && breadth >= 1.2 {
		return models.RegimeResult{
			Regime:     models.RegimeRiskOn,
			Score:      MaxRegimeScore,
			Reasoning:  fmt.Sprintf("low VIX (%.1f), index above 200 EMA, expansive breadth (%.2f): prime breakout environment", vix, breadth),
			SectorBias: models.SectorBias{Boost: riskOnBoost, Penalize: []string{}},
		}
	}
	if vix < 18 && trendUp {
		return models.RegimeResult{
			Regime:     models.RegimeRiskOn,
			Score:      MaxRegimeScore,
			Reasoning:  fmt.Sprintf("low VIX (%.1f), market in uptrend: good environment for longs", vix),
			SectorBias: models.SectorBias{Boost: riskOnBoost, Penalize: []string{}},
		}
	}

	// Risk-off: elevated volatility, or moderate volatility against a broken
	// trend. Extreme panic zeroes the score.
	if vix > 25 || (vix > 20 && !trendUp) {
		score := 5
		severity := "elevated"
		if vix >= 30 {
			score = 0
			severity = "extreme"
		}
		return models.RegimeResult{
			Regime:     models.RegimeRiskOff,
			Score:      score,
			Reasoning:  fmt.Sprintf("%s VIX (%.1f), market in defensive mode: trend following in safe havens only", severity, vix),
			SectorBias: models.SectorBias{Boost: riskOffBoost, Penalize: riskOffPenalize},
		}
	}

	return models.RegimeResult{
		Regime:     models.RegimeNeutral,
		Score:      10,
		Reasoning:  fmt.Sprintf("moderate VIX (%.1f), mixed conditions: high-conviction setups only", vix),
		SectorBias: models.SectorBias{Boost: []string{}, Penalize: []string{}},
	}
}

// ApplySectorAdjustment shifts a raw score by the regime's sector bias:
// +5 for a boosted sector (capped at 100), -10 for a penalized one
// (floored at 0). An empty or unmatched sector leaves the score unchanged.
func ApplySectorAdjustment(rawScore int, sector string, regime models.RegimeResult) int {
	if sector == "" {
		return rawScore
	}
	sectorLower := strings.ToLower(sector)

	for _, b := range regime.SectorBias.Boost {
		if strings.Contains(sectorLower, strings.ToLower(b)) {
			return clampScore(rawScore+5, 0, 100)
		}
	}
	for _, p := range regime.SectorBias.Penalize {
		if strings.Contains(sectorLower, strings.ToLower(p)) {
			return clampScore(rawScore-10, 0, 100)
		}
	}
	return rawScore
}
