package committee

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TradeCommittee/internal/domain/models"
)

func TestEvaluateSeykota_FullAlignment(t *testing.T) {
	r := EvaluateSeykota(models.TickerSnapshot{
		Symbol: "TEST", Price: 110,
		EMA20: 105, EMA50: 100, EMA200: 90,
		Price10DAgo: 100,
	})

	assert.True(t, r.Signals.TrendAligned)
	assert.True(t, r.Signals.EMAsGolden)
	assert.True(t, r.Signals.AboveEMA20)
	// 6 above EMA20 + 6 golden + 4 major trend + 4 momentum (10%)
	assert.Equal(t, MaxSeykotaScore, r.Score)
	assert.InDelta(t, 10.0, r.Signals.Momentum10D, 1e-9)
}

func TestEvaluateSeykota_NoEMAData(t *testing.T) {
	// price only: momentum defaults flat via price10dAgo=price
	r := EvaluateSeykota(models.TickerSnapshot{Symbol: "TEST", Price: 50})

	assert.False(t, r.Signals.TrendAligned)
	assert.False(t, r.Signals.EMAsGolden)
	// 0 + 0 + 0 + 1 flat momentum
	assert.Equal(t, 1, r.Score)
}

func TestEvaluateSeykota_NearEMA20Support(t *testing.T) {
	r := EvaluateSeykota(models.TickerSnapshot{
		Symbol: "TEST", Price: 98, EMA20: 100,
	})

	assert.False(t, r.Signals.AboveEMA20)
	// 3 near EMA20 + 0 + 0 + 1 flat momentum
	assert.Equal(t, 4, r.Score)
}

func TestEvaluateSeykota_MissingEMA200IsNeutral(t *testing.T) {
	r := EvaluateSeykota(models.TickerSnapshot{
		Symbol: "TEST", Price: 110, EMA20: 105, EMA50: 100,
		Price10DAgo: 106,
	})

	// 6 + 6 + 2 neutral long-term + 3 momentum (+3.77%)
	assert.Equal(t, 17, r.Score)
	assert.False(t, r.Signals.TrendAligned)
}

func TestEvaluateSeykota_Downtrend(t *testing.T) {
	r := EvaluateSeykota(models.TickerSnapshot{
		Symbol: "TEST", Price: 80,
		EMA20: 90, EMA50: 95, EMA200: 100,
		Price10DAgo: 90,
	})

	// everything below, momentum -11%
	assert.Equal(t, 0, r.Score)
}

func TestEvaluateSeykota_ScoreBounds(t *testing.T) {
	cases := []models.TickerSnapshot{
		{},
		{Price: 50, EMA20: 49, EMA50: 51},
		{Price: 50, Price10DAgo: 48},
	}
	for _, tc := range cases {
		r := EvaluateSeykota(tc)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, MaxSeykotaScore)
	}
}
