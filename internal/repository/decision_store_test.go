package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeCommittee/internal/domain/models"
)

func TestDecisionRowArgs_BindsScalarsOnly(t *testing.T) {
	d := &models.CommitteeDecision{
		Symbol:         "NVDA",
		Decision:       models.DecisionBuy,
		DecisionReason: "score 80/100, high-conviction opportunity",
		FinalScore:     80,
		Regime: models.RegimeResult{
			Regime:     models.RegimeRiskOn,
			Score:      15,
			Reasoning:  "low VIX (15.0), market in uptrend: good environment for longs",
			SectorBias: models.SectorBias{Boost: []string{"tech"}, Penalize: []string{}},
		},
		Breakdown:   models.ScoreBreakdown{RawScore: 80},
		TradeParams: models.TradeParams{Entry: 99.5, Stop: 94, Target: 119.4, RRRatio: 3.62, Position: 2500},
		EvaluatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(d)
	require.NoError(t, err)

	args := decisionRowArgs(d, payload)
	require.Len(t, args, 13)

	// the regime column carries the label, never the whole result struct
	assert.Equal(t, models.RegimeRiskOn, args[6])

	// the driver splices args into SQL text; anything non-scalar would be
	// rendered with fmt.Sprint and corrupt the statement
	for i, a := range args {
		switch a.(type) {
		case string, int32, float64, time.Time:
		default:
			t.Errorf("arg %d is %T, want a scalar", i, a)
		}
	}
}

func TestDecisionRowArgs_PayloadRoundTrips(t *testing.T) {
	d := &models.CommitteeDecision{
		Symbol:     "NVDA",
		Decision:   models.DecisionWatchlist,
		FinalScore: 66,
	}
	payload, err := json.Marshal(d)
	require.NoError(t, err)

	args := decisionRowArgs(d, payload)

	var got models.CommitteeDecision
	require.NoError(t, json.Unmarshal([]byte(args[12].(string)), &got))
	assert.Equal(t, d.Symbol, got.Symbol)
	assert.Equal(t, d.Decision, got.Decision)
	assert.Equal(t, d.FinalScore, got.FinalScore)
}
