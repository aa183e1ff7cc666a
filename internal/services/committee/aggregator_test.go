package committee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeCommittee/internal/domain/models"
	domsvc "TradeCommittee/internal/domain/service"
)

func riskOnMarket() models.MarketSnapshot {
	return models.MarketSnapshot{VIX: f64(15), SPYAbove200EMA: bptr(true), Breadth: 1.3}
}

func TestAggregator_NoPriceIsDegenerateSkip(t *testing.T) {
	agg := NewAggregator(DefaultParams())

	d := agg.Evaluate(domsvc.EvaluateInput{Symbol: "TEST", Market: riskOnMarket()})

	assert.Equal(t, models.DecisionSkip, d.Decision)
	assert.Equal(t, 0, d.FinalScore)
	assert.Equal(t, models.RegimeUnknown, d.Regime.Regime)
	assert.Empty(t, d.Reasoning.Turtles)
	assert.False(t, d.Actionable())
}

func TestAggregator_BreakdownMatchesComponents(t *testing.T) {
	agg := NewAggregator(DefaultParams())
	ticker := models.TickerSnapshot{
		Symbol: "TEST", Price: 102, High20D: 100,
		Volume: 2_000_000, AvgVolume20D: 1_000_000,
		EMA20: 98, EMA50: 95, EMA200: 90, Price10DAgo: 96,
		ATR14: 3, Sector: "energy",
	}
	market := riskOnMarket()
	catalyst := &models.CatalystDescriptor{Type: "earnings", DaysToEvent: iptr(5), Expectations: "low"}
	entry, stop, target := 100.0, 95.0, 115.0

	d := agg.Evaluate(domsvc.EvaluateInput{
		Symbol: "TEST", Ticker: ticker, Market: market, Catalyst: catalyst,
		Entry: &entry, Stop: &stop, Target: &target,
	})

	// the breakdown must equal independently computed component outputs
	regime := DetectRegime(market)
	turtles := EvaluateTurtles(ticker)
	seykota := EvaluateSeykota(ticker)
	cat := EvaluateCatalyst(ticker, catalyst)
	rr := EvaluateRiskReward(ticker, entry, stop, target, 500, 5, DefaultParams())

	assert.Equal(t, regime.Score, d.Breakdown.Regime)
	assert.Equal(t, turtles.Score, d.Breakdown.Turtles)
	assert.Equal(t, seykota.Score, d.Breakdown.Seykota)
	assert.Equal(t, cat.Score, d.Breakdown.Catalyst)
	assert.Equal(t, rr.Score, d.Breakdown.RiskReward)

	sum := regime.Score + turtles.Score + seykota.Score + cat.Score + rr.Score
	assert.Equal(t, sum, d.Breakdown.RawScore)
	assert.Equal(t, d.Breakdown.RawScore+d.Breakdown.SectorAdjustment, d.FinalScore)
	assert.GreaterOrEqual(t, d.FinalScore, 0)
	assert.LessOrEqual(t, d.FinalScore, 100)
}

func TestAggregator_HardRejectOverridesScore(t *testing.T) {
	// a setup that scores well everywhere still REJECTs on rr 2.0
	agg := NewAggregator(DefaultParams())
	entry, stop, target := 100.0, 98.0, 104.0

	d := agg.Evaluate(domsvc.EvaluateInput{
		Symbol: "TEST",
		Ticker: models.TickerSnapshot{
			Symbol: "TEST", Price: 102, High20D: 100,
			Volume: 2_000_000, AvgVolume20D: 1_000_000,
			EMA20: 98, EMA50: 95, EMA200: 90, Price10DAgo: 92,
			ATR14: 3, Sector: "tech", HistoricalEventReaction: 12,
		},
		Market:   riskOnMarket(),
		Catalyst: &models.CatalystDescriptor{Type: "earnings", DaysToEvent: iptr(5), Expectations: "low"},
		Entry:    &entry, Stop: &stop, Target: &target,
	})

	assert.Equal(t, models.DecisionReject, d.Decision)
	assert.True(t, d.Signals.RiskReward.RRRatio < 3.0)
	assert.False(t, d.Actionable())
	// the score itself stays high; REJECT is a veto, not a markdown
	assert.Greater(t, d.FinalScore, 60)
}

func TestAggregator_WatchlistBand(t *testing.T) {
	// neutral regime 10, near-breakout turtles 18, aligned trend 20,
	// no catalyst 12, rr exactly 3.0 scores 13: total 73, under the
	// 75 buy bar but over the 60 watch bar
	agg := NewAggregator(DefaultParams())
	entry, stop, target := 109.0, 103.5, 125.5

	d := agg.Evaluate(domsvc.EvaluateInput{
		Symbol: "TEST",
		Ticker: models.TickerSnapshot{
			Symbol: "TEST", Price: 110, High20D: 111,
			Volume: 2_000_000, AvgVolume20D: 1_000_000,
			EMA20: 105, EMA50: 100, EMA200: 90, Price10DAgo: 100,
			ATR14: 2.75, Sector: "energy",
		},
		Market: models.MarketSnapshot{VIX: f64(20), SPYAbove200EMA: bptr(true), Breadth: 1.3},
		Entry:  &entry, Stop: &stop, Target: &target,
	})

	assert.Equal(t, models.DecisionWatchlist, d.Decision)
	assert.Equal(t, 73, d.FinalScore)
	assert.False(t, d.Signals.RiskReward.RRRatio < 3.0)
	assert.True(t, d.Actionable())
}

func TestAggregator_BuyAtThreshold(t *testing.T) {
	// full-marks ticker: breakout on volume, aligned trend, prime
	// catalyst, excellent rr, boosted sector
	agg := NewAggregator(DefaultParams())
	entry, stop, target := 100.0, 95.0, 125.0

	d := agg.Evaluate(domsvc.EvaluateInput{
		Symbol: "TEST",
		Ticker: models.TickerSnapshot{
			Symbol: "TEST", Price: 102, High20D: 100,
			Volume: 2_000_000, AvgVolume20D: 1_000_000,
			EMA20: 98, EMA50: 95, EMA200: 90, Price10DAgo: 92,
			ATR14: 2.5, Sector: "tech", HistoricalEventReaction: 12,
		},
		Market:   riskOnMarket(),
		Catalyst: &models.CatalystDescriptor{Type: "fda_decision", DaysToEvent: iptr(5), Expectations: "low"},
		Entry:    &entry, Stop: &stop, Target: &target,
	})

	require.Equal(t, models.DecisionBuy, d.Decision)
	assert.Equal(t, 100, d.FinalScore) // raw 100, tech boost clamped at the cap
	assert.True(t, d.Actionable())
}

func TestAggregator_DerivedTradeLevels(t *testing.T) {
	// derived defaults: entry at a 0.5% limit discount, beta-keyed stop
	// without ATR, conservative 15% target on a flat tape
	agg := NewAggregator(DefaultParams())

	d := agg.Evaluate(domsvc.EvaluateInput{
		Symbol: "TEST",
		Ticker: models.TickerSnapshot{Symbol: "TEST", Price: 50, High20D: 50, Beta: 1.2},
		Market: riskOnMarket(),
	})

	assert.InDelta(t, 49.75, d.TradeParams.Entry, 1e-9)
	assert.InDelta(t, 47.0, d.TradeParams.Stop, 1e-9) // 6% for beta < 1.5
	assert.InDelta(t, 57.5, d.TradeParams.Target, 1e-9)
	// rr (57.5-49.75)/(49.75-47) = 2.82 rejects the derived setup
	assert.Equal(t, models.DecisionReject, d.Decision)
	assert.InDelta(t, 2.82, d.Signals.RiskReward.RRRatio, 0.01)
}

func TestAggregator_DerivedStopUsesATR(t *testing.T) {
	agg := NewAggregator(DefaultParams())

	d := agg.Evaluate(domsvc.EvaluateInput{
		Symbol: "TEST",
		Ticker: models.TickerSnapshot{Symbol: "TEST", Price: 50, ATR14: 1.5},
		Market: riskOnMarket(),
	})

	assert.InDelta(t, 47.0, d.TradeParams.Stop, 1e-9) // price - 2*ATR
}

func TestAggregator_MomentumTarget(t *testing.T) {
	agg := NewAggregator(DefaultParams())

	d := agg.Evaluate(domsvc.EvaluateInput{
		Symbol: "TEST",
		Ticker: models.TickerSnapshot{Symbol: "TEST", Price: 50, ChangePct: 3},
		Market: riskOnMarket(),
	})

	assert.InDelta(t, 60.0, d.TradeParams.Target, 1e-9) // 20% on a momentum day
}

func TestAggregator_CapitalDefaults(t *testing.T) {
	agg := NewAggregator(DefaultParams())
	entry, stop, target := 100.0, 95.0, 115.0

	d := agg.Evaluate(domsvc.EvaluateInput{
		Symbol: "TEST",
		Ticker: models.TickerSnapshot{Symbol: "TEST", Price: 100},
		Market: riskOnMarket(),
		Entry:  &entry, Stop: &stop, Target: &target,
	})

	// 2% of the default 500 capital
	assert.InDelta(t, 10.0, d.Signals.RiskReward.RiskAmount, 1e-9)
}

func TestAggregator_SectorBoostCapsAt100(t *testing.T) {
	regime := DetectRegime(riskOnMarket())

	adjusted := ApplySectorAdjustment(98, "tech", regime)
	assert.Equal(t, 100, adjusted)
}
