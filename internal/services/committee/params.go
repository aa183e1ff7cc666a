// Package committee implements the virtual committee: five independent
// evaluators and an aggregator that combines them into a single weighted
// BUY / WATCHLIST / SKIP / REJECT decision.
//
// Every function in this package is pure. Missing optional inputs are
// absorbed by documented neutral defaults; no call ever fails.
package committee

import "math"

// Score ceilings per committee member. They sum to 100 so the raw total is
// bounded before the sector adjustment is applied.
const (
	MaxRegimeScore     = 15
	MaxTurtlesScore    = 25
	MaxSeykotaScore    = 20
	MaxCatalystScore   = 25
	MaxRiskRewardScore = 15
)

// Params are the committee's tunables. They are built once from config and
// passed in explicitly; the package holds no mutable state.
type Params struct {
	Capital       float64 // default account capital
	Leverage      int     // default leverage multiple
	MaxRiskPct    float64 // fraction of capital risked per trade
	MinRiskReward float64 // reward:risk below this is a hard reject
	BuyScore      int     // final score threshold for BUY
	WatchScore    int     // final score threshold for WATCHLIST
}

// DefaultParams returns the standing committee configuration.
func DefaultParams() Params {
	return Params{
		Capital:       500.0,
		Leverage:      5,
		MaxRiskPct:    0.02,
		MinRiskReward: 3.0,
		BuyScore:      75,
		WatchScore:    60,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
