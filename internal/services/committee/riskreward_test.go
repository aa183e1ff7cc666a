package committee

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TradeCommittee/internal/domain/models"
)

func TestEvaluateRiskReward_ExactMinimumRatio(t *testing.T) {
	// risk=5, reward=15, rr=3.0: scores 6 (not 8), no veto
	r := EvaluateRiskReward(models.TickerSnapshot{Symbol: "TEST", Price: 100},
		100, 95, 115, 500, 5, DefaultParams())

	assert.False(t, r.HardReject)
	assert.InDelta(t, 3.0, r.Signals.RRRatio, 1e-9)
	// 6 rr + 2 stop pct fallback (no ATR) + 3 sizing
	assert.Equal(t, 11, r.Score)
}

func TestEvaluateRiskReward_BelowMinimumVetoes(t *testing.T) {
	// risk=2, reward=4, rr=2.0: marginal points but hard reject
	r := EvaluateRiskReward(models.TickerSnapshot{Symbol: "TEST", Price: 100},
		100, 98, 104, 500, 5, DefaultParams())

	assert.True(t, r.HardReject)
	assert.InDelta(t, 2.0, r.Signals.RRRatio, 1e-9)
}

func TestEvaluateRiskReward_ExcellentRatio(t *testing.T) {
	r := EvaluateRiskReward(models.TickerSnapshot{Symbol: "TEST", Price: 100, ATR14: 2.5},
		100, 95, 125, 500, 5, DefaultParams())

	assert.False(t, r.HardReject)
	// 8 rr (5.0) + 4 stop at 2.0x ATR + 3 sizing
	assert.Equal(t, MaxRiskRewardScore, r.Score)
	assert.InDelta(t, 2.0, r.Signals.StopATRMultiple, 1e-9)
}

func TestEvaluateRiskReward_InvalidPrices(t *testing.T) {
	r := EvaluateRiskReward(models.TickerSnapshot{Symbol: "TEST"}, 0, 95, 115, 500, 5, DefaultParams())

	assert.True(t, r.HardReject)
	assert.Equal(t, 0, r.Score)
}

func TestEvaluateRiskReward_StopAboveEntry(t *testing.T) {
	r := EvaluateRiskReward(models.TickerSnapshot{Symbol: "TEST", Price: 100},
		100, 105, 115, 500, 5, DefaultParams())

	assert.True(t, r.HardReject)
	assert.Equal(t, 0, r.Score)
	assert.InDelta(t, 10.0, r.Signals.RiskAmount, 1e-9) // 2% of 500
}

func TestEvaluateRiskReward_SizingOverCapacity(t *testing.T) {
	// tight stop forces a huge position: 10 risk budget / 0.5 risk = 20
	// shares at 400 = 8000 exposure against 2500 capacity
	r := EvaluateRiskReward(models.TickerSnapshot{Symbol: "TEST", Price: 400},
		400, 399.5, 402, 500, 5, DefaultParams())

	assert.False(t, r.HardReject) // rr is 4, the veto is purely about ratio
	// 8 rr + 2 stop pct fallback + 0 sizing
	assert.Equal(t, 10, r.Score)
	assert.Equal(t, 2500.0, r.Signals.SuggestedPosition)
}

func TestEvaluateRiskReward_ScoreBounds(t *testing.T) {
	params := DefaultParams()
	cases := [][3]float64{
		{100, 95, 115},
		{100, 99, 130},
		{50, 47, 57.5},
		{10, 9.5, 10.5},
	}
	for _, c := range cases {
		r := EvaluateRiskReward(models.TickerSnapshot{Symbol: "TEST", Price: c[0], ATR14: 1.5},
			c[0], c[1], c[2], 500, 5, params)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, MaxRiskRewardScore)
	}
}
