package committee

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TradeCommittee/internal/domain/models"
)

func TestEvaluateTurtles_ExactlyAtHighIsNotBreakout(t *testing.T) {
	// price == high gets the 5-pt proximity branch, never the 10-pt
	// breakout bonus (strict > comparison)
	r := EvaluateTurtles(models.TickerSnapshot{
		Symbol: "TEST", Price: 50, High20D: 50,
	})

	assert.False(t, r.Signals.Breakout)
	// 5 proximity + 0 volume + 2 no-overextension + 0 ATR
	assert.Equal(t, 7, r.Score)
}

func TestEvaluateTurtles_CleanBreakout(t *testing.T) {
	r := EvaluateTurtles(models.TickerSnapshot{
		Symbol: "TEST", Price: 102, High20D: 100,
		Volume: 2_000_000, AvgVolume20D: 1_000_000,
		ATR14: 3, // 2.9% of price
	})

	assert.True(t, r.Signals.Breakout)
	assert.True(t, r.Signals.VolumeConfirmed)
	// 10 breakout + 8 volume + 4 early entry + 3 ATR
	assert.Equal(t, MaxTurtlesScore, r.Score)
}

func TestEvaluateTurtles_OverextendedBreakout(t *testing.T) {
	r := EvaluateTurtles(models.TickerSnapshot{
		Symbol: "TEST", Price: 112, High20D: 100,
	})

	assert.True(t, r.Signals.Breakout)
	// 10 breakout + 0 volume + 0 extension (12% above) + 0 ATR
	assert.Equal(t, 10, r.Score)
}

func TestEvaluateTurtles_WeakVolume(t *testing.T) {
	r := EvaluateTurtles(models.TickerSnapshot{
		Symbol: "TEST", Price: 90, High20D: 100,
		Volume: 1_300_000, AvgVolume20D: 1_000_000,
	})

	assert.False(t, r.Signals.VolumeConfirmed)
	assert.InDelta(t, 1.3, r.Signals.VolumeRatio, 1e-9)
	// 0 breakout + 4 weak volume + 2 no-overextension
	assert.Equal(t, 6, r.Score)
}

func TestEvaluateTurtles_MissingAvgVolumeIsNeutral(t *testing.T) {
	r := EvaluateTurtles(models.TickerSnapshot{
		Symbol: "TEST", Price: 50, High20D: 60, Volume: 5_000_000,
	})

	assert.Equal(t, 1.0, r.Signals.VolumeRatio)
	assert.False(t, r.Signals.VolumeConfirmed)
}

func TestEvaluateTurtles_ScoreBounds(t *testing.T) {
	cases := []models.TickerSnapshot{
		{},
		{Price: 50},
		{Price: 50, High20D: 40, Volume: 10, AvgVolume20D: 1, ATR14: 2},
		{Price: 50, High20D: 60, ATR14: 10},
	}
	for _, tc := range cases {
		r := EvaluateTurtles(tc)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, MaxTurtlesScore)
	}
}
