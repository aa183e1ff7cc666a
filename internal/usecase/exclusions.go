package usecase

import (
	"fmt"

	"TradeCommittee/internal/domain/models"
)

// ExclusionRules are the cheap pre-screen filters applied before the
// committee is convened: instruments outside these bounds are not worth a
// full evaluation. A zero threshold disables that check.
type ExclusionRules struct {
	MinPrice       float64
	MaxPrice       float64
	MinMarketCap   float64
	MaxMarketCap   float64
	MinBeta        float64
	SmallCapVolume float64 // min avg volume, market cap under 1B
	MidCapVolume   float64 // min avg volume, market cap 1B-10B
	LargeCapVolume float64 // min avg volume, market cap over 10B
}

// Check returns a human-readable exclusion reason, or "" when the
// instrument qualifies for committee evaluation.
func (r ExclusionRules) Check(t models.TickerSnapshot) string {
	if r.MinPrice > 0 && t.Price > 0 && t.Price < r.MinPrice {
		return fmt.Sprintf("penny stock (%.2f under %.2f)", t.Price, r.MinPrice)
	}
	if r.MaxPrice > 0 && t.Price > r.MaxPrice {
		return fmt.Sprintf("price too high (%.2f over %.2f)", t.Price, r.MaxPrice)
	}
	if t.MarketCap > 0 {
		if r.MinMarketCap > 0 && t.MarketCap < r.MinMarketCap {
			return fmt.Sprintf("market cap too small (%.0fM under %.0fM)", t.MarketCap/1e6, r.MinMarketCap/1e6)
		}
		if r.MaxMarketCap > 0 && t.MarketCap > r.MaxMarketCap {
			return fmt.Sprintf("mega cap (%.0fB over %.0fB)", t.MarketCap/1e9, r.MaxMarketCap/1e9)
		}
	}
	if r.MinBeta > 0 && t.Beta > 0 && t.Beta < r.MinBeta {
		return fmt.Sprintf("beta too low (%.2f under %.2f)", t.Beta, r.MinBeta)
	}
	if t.MarketCap > 0 && t.AvgVolume20D > 0 {
		switch {
		case t.MarketCap < 1e9:
			if r.SmallCapVolume > 0 && t.AvgVolume20D < r.SmallCapVolume {
				return fmt.Sprintf("insufficient volume for small cap (%.1fM under %.1fM)", t.AvgVolume20D/1e6, r.SmallCapVolume/1e6)
			}
		case t.MarketCap < 10e9:
			if r.MidCapVolume > 0 && t.AvgVolume20D < r.MidCapVolume {
				return "insufficient volume for mid cap"
			}
		default:
			if r.LargeCapVolume > 0 && t.AvgVolume20D < r.LargeCapVolume {
				return "insufficient volume for large cap"
			}
		}
	}
	return ""
}
