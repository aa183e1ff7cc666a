package models

// TickerSnapshot carries the per-instrument numeric facts the committee
// evaluates. All fields are computed upstream; the committee never fetches
// or derives indicator values itself.
//
// Optional field conventions: a zero ATR14, High20D, EMA, Price10DAgo, Beta,
// MarketCap or HistoricalEventReaction means "unavailable" and each evaluator
// substitutes its documented neutral default.
type TickerSnapshot struct {
	Symbol                  string  `json:"symbol"`
	Price                   float64 `json:"price"`
	ATR14                   float64 `json:"atr_14"`
	High20D                 float64 `json:"high_20d"`
	AvgVolume20D            float64 `json:"avg_volume_20d"`
	Volume                  float64 `json:"volume"`
	EMA20                   float64 `json:"ema_20"`
	EMA50                   float64 `json:"ema_50"`
	EMA200                  float64 `json:"ema_200"`
	Price10DAgo             float64 `json:"price_10d_ago"`
	ChangePct               float64 `json:"change_pct"`
	Beta                    float64 `json:"beta"`
	Sector                  string  `json:"sector"`
	MarketCap               float64 `json:"market_cap"`
	HistoricalEventReaction float64 `json:"historical_event_reaction"`
}

// MarketSnapshot carries the macro facts used for regime detection.
// VIX and SPYAbove200EMA are pointers because "no data" and "zero/false"
// mean different things to the detector.
type MarketSnapshot struct {
	VIX            *float64 `json:"vix,omitempty"`
	SP500Change    float64  `json:"sp500_change"`
	SPYAbove200EMA *bool    `json:"spy_above_200ema,omitempty"`
	Breadth        float64  `json:"advance_decline_ratio"`
}

// SPYTrendUp reports whether the broad index trades above its 200-period
// average, assuming an uptrend when the field is absent.
func (m MarketSnapshot) SPYTrendUp() bool {
	if m.SPYAbove200EMA == nil {
		return true
	}
	return *m.SPYAbove200EMA
}

// BreadthOrNeutral returns the advance/decline ratio, defaulting to 1.0.
func (m MarketSnapshot) BreadthOrNeutral() float64 {
	if m.Breadth <= 0 {
		return 1.0
	}
	return m.Breadth
}

// CatalystDescriptor describes an optional known event expected to move the
// instrument. Type is free-form and matched against the committee's ordered
// taxonomy; a nil DaysToEvent means the date is far or unknown.
type CatalystDescriptor struct {
	Type         string `json:"type"`
	DaysToEvent  *int   `json:"days_to_event,omitempty"`
	Expectations string `json:"expectations,omitempty"` // low, neutral, high
}
