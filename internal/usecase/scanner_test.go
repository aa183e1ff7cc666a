package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeCommittee/internal/domain/models"
	domsvc "TradeCommittee/internal/domain/service"
	applogger "TradeCommittee/pkg/logger"
)

// fakeCommittee replays canned decisions and records every input it saw.
// Workers call it concurrently, so it carries its own lock.
type fakeCommittee struct {
	mu        sync.Mutex
	decisions map[string]models.CommitteeDecision
	inputs    []domsvc.EvaluateInput
}

func (f *fakeCommittee) Evaluate(in domsvc.EvaluateInput) models.CommitteeDecision {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	d, ok := f.decisions[in.Symbol]
	if !ok {
		d = models.CommitteeDecision{Symbol: in.Symbol, Decision: models.DecisionSkip, DecisionReason: "unscripted"}
	}
	return d
}

func (f *fakeCommittee) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inputs)
}

type fakeSnapshots struct {
	mu      sync.Mutex
	tickers map[string]models.TickerSnapshot
	market  *models.MarketSnapshot
}

func (f *fakeSnapshots) PutTicker(_ context.Context, t models.TickerSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tickers == nil {
		f.tickers = map[string]models.TickerSnapshot{}
	}
	f.tickers[t.Symbol] = t
	return nil
}

func (f *fakeSnapshots) GetTicker(_ context.Context, symbol string) (models.TickerSnapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickers[symbol]
	return t, ok, nil
}

func (f *fakeSnapshots) PutMarket(_ context.Context, m models.MarketSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.market = &m
	return nil
}

func (f *fakeSnapshots) GetMarket(_ context.Context) (models.MarketSnapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.market == nil {
		return models.MarketSnapshot{}, false, nil
	}
	return *f.market, true, nil
}

type fakeCatalysts struct {
	events map[string]*models.CatalystDescriptor
}

func (f *fakeCatalysts) Upcoming(_ context.Context, symbol string) (*models.CatalystDescriptor, error) {
	return f.events[symbol], nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	decisions int
	errors    int
}

func (f *fakeMetrics) RecordDecision(string, models.Decision) {
	f.mu.Lock()
	f.decisions++
	f.mu.Unlock()
}
func (f *fakeMetrics) RecordScore(string, int) {}
func (f *fakeMetrics) RecordError(string) {
	f.mu.Lock()
	f.errors++
	f.mu.Unlock()
}
func (f *fakeMetrics) RecordLatency(string, float64) {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func decision(symbol string, d models.Decision, score int) models.CommitteeDecision {
	return models.CommitteeDecision{Symbol: symbol, Decision: d, FinalScore: score, DecisionReason: "scripted"}
}

func inlineCandidate(symbol string, price float64) models.ScanCandidate {
	return models.ScanCandidate{Symbol: symbol, Ticker: &models.TickerSnapshot{Symbol: symbol, Price: price}}
}

func riskOnSnapshot() models.MarketSnapshot {
	vix := 15.0
	above := true
	return models.MarketSnapshot{VIX: &vix, SPYAbove200EMA: &above, Breadth: 1.3}
}

func TestScanner_RanksAndCaps(t *testing.T) {
	comm := &fakeCommittee{decisions: map[string]models.CommitteeDecision{
		"AAA": decision("AAA", models.DecisionBuy, 80),
		"BBB": decision("BBB", models.DecisionBuy, 92),
		"CCC": decision("CCC", models.DecisionBuy, 85),
		"DDD": decision("DDD", models.DecisionWatchlist, 66),
		"EEE": decision("EEE", models.DecisionWatchlist, 71),
		"FFF": decision("FFF", models.DecisionSkip, 40),
	}}
	s := NewScanner(comm, nil, nil, ExclusionRules{}, nil, &fakeMetrics{}, testLogger(t), 3)

	res, err := s.Scan(context.Background(), &models.ScanRequest{
		Market: riskOnSnapshot(),
		Candidates: []models.ScanCandidate{
			inlineCandidate("AAA", 50), inlineCandidate("BBB", 50), inlineCandidate("CCC", 50),
			inlineCandidate("DDD", 50), inlineCandidate("EEE", 50), inlineCandidate("FFF", 50),
		},
		TopN: 2,
	})

	require.NoError(t, err)
	require.Len(t, res.Opportunities, 2)
	assert.Equal(t, "BBB", res.Opportunities[0].Symbol)
	assert.Equal(t, "CCC", res.Opportunities[1].Symbol)

	require.Len(t, res.Watchlist, 2)
	assert.Equal(t, "EEE", res.Watchlist[0].Symbol)
	assert.Equal(t, "DDD", res.Watchlist[1].Symbol)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "FFF", res.Skipped[0].Symbol)
	assert.Equal(t, 40, res.Skipped[0].Score)
	assert.Equal(t, "scripted", res.Skipped[0].Reason)

	assert.Equal(t, 6, res.TotalScanned)
	assert.Equal(t, models.RegimeRiskOn, res.Regime.Regime)
	assert.NotEmpty(t, res.ScanID)
}

func TestScanner_ExclusionsSkipBeforeEvaluation(t *testing.T) {
	comm := &fakeCommittee{decisions: map[string]models.CommitteeDecision{
		"GOOD": decision("GOOD", models.DecisionBuy, 80),
	}}
	rules := ExclusionRules{MinPrice: 5}
	s := NewScanner(comm, nil, nil, rules, nil, &fakeMetrics{}, testLogger(t), 1)

	res, err := s.Scan(context.Background(), &models.ScanRequest{
		Market: riskOnSnapshot(),
		Candidates: []models.ScanCandidate{
			inlineCandidate("PENNY", 2.5),
			inlineCandidate("GOOD", 50),
		},
	})

	require.NoError(t, err)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "PENNY", res.Skipped[0].Symbol)
	assert.Contains(t, res.Skipped[0].Reason, "penny stock")
	// the excluded instrument never reached the committee
	assert.Equal(t, 1, comm.calls())
}

func TestScanner_ResolvesCachedSnapshots(t *testing.T) {
	comm := &fakeCommittee{decisions: map[string]models.CommitteeDecision{
		"CACHED": decision("CACHED", models.DecisionBuy, 80),
	}}
	snaps := &fakeSnapshots{tickers: map[string]models.TickerSnapshot{
		"CACHED": {Symbol: "CACHED", Price: 42},
	}}
	metrics := &fakeMetrics{}
	s := NewScanner(comm, snaps, nil, ExclusionRules{}, nil, metrics, testLogger(t), 1)

	res, err := s.Scan(context.Background(), &models.ScanRequest{
		Market: riskOnSnapshot(),
		Candidates: []models.ScanCandidate{
			{Symbol: "CACHED"},
			{Symbol: "UNKNOWN"},
		},
	})

	require.NoError(t, err)
	require.Len(t, res.Opportunities, 1)
	assert.Equal(t, "CACHED", res.Opportunities[0].Symbol)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "UNKNOWN", res.Skipped[0].Symbol)
	assert.Contains(t, res.Skipped[0].Reason, "no cached snapshot")
	assert.Equal(t, 1, metrics.errors)

	require.Equal(t, 1, comm.calls())
	assert.InDelta(t, 42.0, comm.inputs[0].Ticker.Price, 1e-9)
}

func TestScanner_MarketFallsBackToStore(t *testing.T) {
	comm := &fakeCommittee{decisions: map[string]models.CommitteeDecision{}}
	snaps := &fakeSnapshots{}
	require.NoError(t, snaps.PutMarket(context.Background(), riskOnSnapshot()))
	s := NewScanner(comm, snaps, nil, ExclusionRules{}, nil, &fakeMetrics{}, testLogger(t), 1)

	res, err := s.Scan(context.Background(), &models.ScanRequest{
		Candidates: []models.ScanCandidate{inlineCandidate("TEST", 50)},
	})

	require.NoError(t, err)
	assert.Equal(t, models.RegimeRiskOn, res.Regime.Regime)
	require.Equal(t, 1, comm.calls())
	require.NotNil(t, comm.inputs[0].Market.VIX)
	assert.InDelta(t, 15.0, *comm.inputs[0].Market.VIX, 1e-9)
}

func TestScanner_AttachesCalendarCatalyst(t *testing.T) {
	comm := &fakeCommittee{decisions: map[string]models.CommitteeDecision{}}
	days := 5
	cats := &fakeCatalysts{events: map[string]*models.CatalystDescriptor{
		"EVT": {Type: "earnings", DaysToEvent: &days},
	}}
	s := NewScanner(comm, nil, cats, ExclusionRules{}, nil, &fakeMetrics{}, testLogger(t), 1)

	_, err := s.Scan(context.Background(), &models.ScanRequest{
		Market:     riskOnSnapshot(),
		Candidates: []models.ScanCandidate{inlineCandidate("EVT", 50), inlineCandidate("QUIET", 50)},
	})

	require.NoError(t, err)
	require.Equal(t, 2, comm.calls())
	bySymbol := map[string]domsvc.EvaluateInput{}
	for _, in := range comm.inputs {
		bySymbol[in.Symbol] = in
	}
	require.NotNil(t, bySymbol["EVT"].Catalyst)
	assert.Equal(t, "earnings", bySymbol["EVT"].Catalyst.Type)
	assert.Nil(t, bySymbol["QUIET"].Catalyst)
}

func TestScanner_NoCandidates(t *testing.T) {
	s := NewScanner(&fakeCommittee{}, nil, nil, ExclusionRules{}, nil, &fakeMetrics{}, testLogger(t), 1)

	_, err := s.Scan(context.Background(), &models.ScanRequest{Market: riskOnSnapshot()})
	assert.Error(t, err)
}
