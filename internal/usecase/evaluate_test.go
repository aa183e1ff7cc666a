package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeCommittee/internal/domain/models"
)

func TestCommitteeEvaluator_RoutesDecision(t *testing.T) {
	comm := &fakeCommittee{decisions: map[string]models.CommitteeDecision{
		"TEST": decision("TEST", models.DecisionBuy, 80),
	}}
	pub := &fakePublisher{}
	proc := NewDecisionProcessor(pub, &fakeStore{}, &fakeMetrics{}, "kafka")
	e := NewCommitteeEvaluator(comm, ExclusionRules{}, proc, &fakeMetrics{}, testLogger(t))

	d := e.Evaluate(context.Background(), &models.EvaluateRequest{
		Symbol: "TEST",
		Ticker: models.TickerSnapshot{Symbol: "TEST", Price: 50},
	})

	require.NotNil(t, d)
	assert.Equal(t, models.DecisionBuy, d.Decision)
	assert.Equal(t, 1, pub.published)
}

func TestCommitteeEvaluator_ExclusionShortCircuits(t *testing.T) {
	comm := &fakeCommittee{}
	e := NewCommitteeEvaluator(comm, ExclusionRules{MinPrice: 5}, nil, &fakeMetrics{}, testLogger(t))

	d := e.Evaluate(context.Background(), &models.EvaluateRequest{
		Symbol: "PENNY",
		Ticker: models.TickerSnapshot{Symbol: "PENNY", Price: 2},
	})

	require.NotNil(t, d)
	assert.Equal(t, models.DecisionSkip, d.Decision)
	assert.Contains(t, d.DecisionReason, "penny stock")
	assert.Zero(t, comm.calls())
}
