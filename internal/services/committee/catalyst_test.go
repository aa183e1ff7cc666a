package committee

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TradeCommittee/internal/domain/models"
)

func iptr(v int) *int { return &v }

func TestEvaluateCatalyst_NoneIsFixedNeutral(t *testing.T) {
	r := EvaluateCatalyst(models.TickerSnapshot{Symbol: "TEST"}, nil)

	assert.Equal(t, 12, r.Score)
	assert.Equal(t, "none", r.Signals.CatalystType)
	assert.Equal(t, 999, r.Signals.DaysToEvent)
	assert.Len(t, r.Reasoning, 1)
}

func TestEvaluateCatalyst_OptimalEarnings(t *testing.T) {
	r := EvaluateCatalyst(
		models.TickerSnapshot{Symbol: "TEST", HistoricalEventReaction: 12},
		&models.CatalystDescriptor{Type: "earnings", DaysToEvent: iptr(5), Expectations: "low"},
	)

	// 6 type + 7 timing + 5 history + 5 low expectations on asymmetric type
	assert.Equal(t, 23, r.Score)
	assert.Equal(t, "earnings", r.Signals.CatalystType)
	assert.Equal(t, 5, r.Signals.DaysToEvent)
}

func TestEvaluateCatalyst_TaxonomyOrder(t *testing.T) {
	// the ordered taxonomy makes substring matching deterministic:
	// specific patterns win over their prefixes
	cases := []struct {
		catalystType string
		typePoints   int
	}{
		{"fda_decision", 8},
		{"fda", 8},
		{"earnings_beat_history", 8},
		{"earnings", 6},
		{"m&a_rumor", 7},
		{"rumor", 2},
		{"analyst_upgrade", 5},
		{"left_field_event", 2},
	}
	for _, tc := range cases {
		r := EvaluateCatalyst(
			models.TickerSnapshot{Symbol: "TEST"},
			&models.CatalystDescriptor{Type: tc.catalystType, DaysToEvent: iptr(60)},
		)
		// isolate the type component: 60d timing adds 1, no history adds 2,
		// unknown expectations add 3
		assert.Equal(t, tc.typePoints+6, r.Score, "type %s", tc.catalystType)
	}
}

func TestEvaluateCatalyst_MissingDaysDefaultsDistant(t *testing.T) {
	r := EvaluateCatalyst(
		models.TickerSnapshot{Symbol: "TEST"},
		&models.CatalystDescriptor{Type: "earnings"},
	)

	assert.Equal(t, 999, r.Signals.DaysToEvent)
	// 6 type + 1 very distant + 2 no history + 3 unknown expectations
	assert.Equal(t, 12, r.Score)
}

func TestEvaluateCatalyst_HighExpectationsAsymmetry(t *testing.T) {
	high := EvaluateCatalyst(
		models.TickerSnapshot{Symbol: "TEST"},
		&models.CatalystDescriptor{Type: "earnings", DaysToEvent: iptr(5), Expectations: "high"},
	)
	low := EvaluateCatalyst(
		models.TickerSnapshot{Symbol: "TEST"},
		&models.CatalystDescriptor{Type: "earnings", DaysToEvent: iptr(5), Expectations: "low"},
	)

	assert.Equal(t, 4, low.Score-high.Score)
}

func TestEvaluateCatalyst_LowExpectationsNonAsymmetricType(t *testing.T) {
	// low expectations only pay on high-asymmetry catalyst types
	r := EvaluateCatalyst(
		models.TickerSnapshot{Symbol: "TEST"},
		&models.CatalystDescriptor{Type: "buyback", DaysToEvent: iptr(5), Expectations: "low"},
	)
	// 5 type + 7 timing + 2 no history + 3 default expectations
	assert.Equal(t, 17, r.Score)
}

func TestEvaluateCatalyst_ScoreBounds(t *testing.T) {
	descriptors := []*models.CatalystDescriptor{
		nil,
		{},
		{Type: "fda_decision", DaysToEvent: iptr(5), Expectations: "low"},
		{Type: "speculation", DaysToEvent: iptr(0)},
	}
	for _, d := range descriptors {
		r := EvaluateCatalyst(models.TickerSnapshot{Symbol: "TEST", HistoricalEventReaction: 15}, d)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, MaxCatalystScore)
	}
}
