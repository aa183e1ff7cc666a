package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TradeCommittee/internal/domain/models"
)

func strictRules() ExclusionRules {
	return ExclusionRules{
		MinPrice:       5,
		MaxPrice:       10_000,
		MinMarketCap:   300e6,
		MaxMarketCap:   500e9,
		MinBeta:        1.0,
		SmallCapVolume: 500_000,
		MidCapVolume:   1_000_000,
		LargeCapVolume: 2_000_000,
	}
}

func TestExclusionRules_Passes(t *testing.T) {
	reason := strictRules().Check(models.TickerSnapshot{
		Symbol: "TEST", Price: 50, MarketCap: 5e9, Beta: 1.4, AvgVolume20D: 3_000_000,
	})
	assert.Empty(t, reason)
}

func TestExclusionRules_Thresholds(t *testing.T) {
	cases := []struct {
		name   string
		ticker models.TickerSnapshot
		want   string
	}{
		{
			name:   "penny stock",
			ticker: models.TickerSnapshot{Price: 2.5},
			want:   "penny stock (2.50 under 5.00)",
		},
		{
			name:   "price ceiling",
			ticker: models.TickerSnapshot{Price: 12_000},
			want:   "price too high (12000.00 over 10000.00)",
		},
		{
			name:   "micro cap",
			ticker: models.TickerSnapshot{Price: 50, MarketCap: 100e6},
			want:   "market cap too small (100M under 300M)",
		},
		{
			name:   "mega cap",
			ticker: models.TickerSnapshot{Price: 50, MarketCap: 900e9},
			want:   "mega cap (900B over 500B)",
		},
		{
			name:   "sleepy beta",
			ticker: models.TickerSnapshot{Price: 50, MarketCap: 5e9, Beta: 0.6},
			want:   "beta too low (0.60 under 1.00)",
		},
		{
			name:   "illiquid small cap",
			ticker: models.TickerSnapshot{Price: 50, MarketCap: 800e6, Beta: 1.2, AvgVolume20D: 200_000},
			want:   "insufficient volume for small cap (0.2M under 0.5M)",
		},
		{
			name:   "illiquid mid cap",
			ticker: models.TickerSnapshot{Price: 50, MarketCap: 5e9, Beta: 1.2, AvgVolume20D: 800_000},
			want:   "insufficient volume for mid cap",
		},
		{
			name:   "illiquid large cap",
			ticker: models.TickerSnapshot{Price: 50, MarketCap: 50e9, Beta: 1.2, AvgVolume20D: 1_500_000},
			want:   "insufficient volume for large cap",
		},
	}
	rules := strictRules()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules.Check(tc.ticker))
		})
	}
}

func TestExclusionRules_ZeroDisables(t *testing.T) {
	// an empty rule set lets anything through
	reason := ExclusionRules{}.Check(models.TickerSnapshot{Price: 0.4, MarketCap: 1e6, Beta: 0.1})
	assert.Empty(t, reason)
}

func TestExclusionRules_MissingDataIsNotExcluded(t *testing.T) {
	// unknown market cap or beta skips those checks instead of failing them
	reason := strictRules().Check(models.TickerSnapshot{Price: 50})
	assert.Empty(t, reason)
}
