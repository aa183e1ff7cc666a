package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"TradeCommittee/internal/domain/models"
	drepo "TradeCommittee/internal/domain/repository"
	domsvc "TradeCommittee/internal/domain/service"
	"TradeCommittee/internal/services/committee"
	applogger "TradeCommittee/pkg/logger"
)

// Scanner evaluates a whole watchlist against one market snapshot.
// Candidates are independent, so the work is spread across a bounded
// worker pool; ranking is a plain sort applied after collection.
type Scanner struct {
	committee domsvc.Committee
	snapshots drepo.SnapshotStore
	catalysts drepo.CatalystSource
	rules     ExclusionRules
	proc      *DecisionProcessor
	metrics   drepo.Metrics
	logger    *applogger.Logger
	workers   int
}

func NewScanner(
	c domsvc.Committee,
	snapshots drepo.SnapshotStore,
	catalysts drepo.CatalystSource,
	rules ExclusionRules,
	proc *DecisionProcessor,
	metrics drepo.Metrics,
	l *applogger.Logger,
	workers int,
) *Scanner {
	if workers <= 0 {
		workers = 4
	}
	return &Scanner{
		committee: c,
		snapshots: snapshots,
		catalysts: catalysts,
		rules:     rules,
		proc:      proc,
		metrics:   metrics,
		logger:    l,
		workers:   workers,
	}
}

type candidateOutcome struct {
	decision *models.CommitteeDecision
	skipped  *models.SkippedCandidate
}

// Scan evaluates every candidate and splits the outcomes into ranked BUY
// opportunities, a ranked watchlist, and skipped instruments with reasons.
func (s *Scanner) Scan(ctx context.Context, req *models.ScanRequest) (*models.ScanResult, error) {
	if len(req.Candidates) == 0 {
		return nil, fmt.Errorf("scan: no candidates")
	}
	start := time.Now()

	// Fall back to the last stored market snapshot when the request
	// carries none; a nil VIX marks the market struct as unset.
	if req.Market.VIX == nil && s.snapshots != nil {
		if m, ok, err := s.snapshots.GetMarket(ctx); err == nil && ok {
			req.Market = m
		}
	}

	jobs := make(chan models.ScanCandidate)
	outcomes := make([]candidateOutcome, 0, len(req.Candidates))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				out := s.evaluateCandidate(ctx, req, cand)
				mu.Lock()
				outcomes = append(outcomes, out)
				mu.Unlock()
			}
		}()
	}

	for _, cand := range req.Candidates {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- cand:
		}
	}
	close(jobs)
	wg.Wait()

	result := s.assemble(req, outcomes)

	if s.proc != nil {
		all := make([]*models.CommitteeDecision, 0, len(outcomes))
		for _, o := range outcomes {
			if o.decision != nil {
				all = append(all, o.decision)
			}
		}
		if err := s.proc.ProcessBatch(ctx, all); err != nil {
			s.logger.Warn("scan decision routing failed", applogger.Error(err))
		}
	}

	s.metrics.RecordLatency("scan", time.Since(start).Seconds())
	s.logger.Info("scan complete",
		applogger.Int("scanned", result.TotalScanned),
		applogger.Int("opportunities", len(result.Opportunities)),
		applogger.Int("watchlist", len(result.Watchlist)),
		applogger.String("regime", result.Regime.Regime))
	return result, nil
}

func (s *Scanner) evaluateCandidate(ctx context.Context, req *models.ScanRequest, cand models.ScanCandidate) candidateOutcome {
	ticker, err := s.resolveTicker(ctx, cand)
	if err != nil {
		s.metrics.RecordError("scan_snapshot")
		return candidateOutcome{skipped: &models.SkippedCandidate{Symbol: cand.Symbol, Reason: err.Error()}}
	}

	if reason := s.rules.Check(ticker); reason != "" {
		return candidateOutcome{skipped: &models.SkippedCandidate{Symbol: cand.Symbol, Reason: reason}}
	}

	catalyst := cand.Catalyst
	if catalyst == nil && s.catalysts != nil {
		if c, err := s.catalysts.Upcoming(ctx, cand.Symbol); err == nil {
			catalyst = c
		}
	}

	d := s.committee.Evaluate(domsvc.EvaluateInput{
		Symbol:   cand.Symbol,
		Ticker:   ticker,
		Market:   req.Market,
		Catalyst: catalyst,
		Capital:  req.Capital,
		Leverage: req.Leverage,
	})
	s.metrics.RecordDecision(d.Symbol, d.Decision)
	s.metrics.RecordScore(d.Symbol, d.FinalScore)
	return candidateOutcome{decision: &d}
}

func (s *Scanner) resolveTicker(ctx context.Context, cand models.ScanCandidate) (models.TickerSnapshot, error) {
	if cand.Ticker != nil {
		t := *cand.Ticker
		if t.Symbol == "" {
			t.Symbol = cand.Symbol
		}
		return t, nil
	}
	if s.snapshots == nil {
		return models.TickerSnapshot{}, fmt.Errorf("no snapshot supplied for %s", cand.Symbol)
	}
	t, ok, err := s.snapshots.GetTicker(ctx, cand.Symbol)
	if err != nil {
		return models.TickerSnapshot{}, fmt.Errorf("snapshot lookup %s: %w", cand.Symbol, err)
	}
	if !ok {
		return models.TickerSnapshot{}, fmt.Errorf("no cached snapshot for %s", cand.Symbol)
	}
	return t, nil
}

func (s *Scanner) assemble(req *models.ScanRequest, outcomes []candidateOutcome) *models.ScanResult {
	opportunities := make([]models.CommitteeDecision, 0)
	watchlist := make([]models.CommitteeDecision, 0)
	skipped := make([]models.SkippedCandidate, 0)

	for _, o := range outcomes {
		switch {
		case o.skipped != nil:
			skipped = append(skipped, *o.skipped)
		case o.decision.Decision == models.DecisionBuy:
			opportunities = append(opportunities, *o.decision)
		case o.decision.Decision == models.DecisionWatchlist:
			watchlist = append(watchlist, *o.decision)
		default:
			skipped = append(skipped, models.SkippedCandidate{
				Symbol: o.decision.Symbol,
				Reason: o.decision.DecisionReason,
				Score:  o.decision.FinalScore,
			})
		}
	}

	byScore := func(ds []models.CommitteeDecision) {
		sort.SliceStable(ds, func(i, j int) bool { return ds[i].FinalScore > ds[j].FinalScore })
	}
	byScore(opportunities)
	byScore(watchlist)

	topN := req.TopN
	if topN <= 0 {
		topN = 5
	}
	watchN := req.WatchN
	if watchN <= 0 {
		watchN = 10
	}
	if len(opportunities) > topN {
		opportunities = opportunities[:topN]
	}
	if len(watchlist) > watchN {
		watchlist = watchlist[:watchN]
	}

	return &models.ScanResult{
		ScanID:        fmt.Sprintf("scan-%d", time.Now().UnixNano()),
		Timestamp:     time.Now().UTC(),
		Regime:        committee.DetectRegime(req.Market),
		Opportunities: opportunities,
		Watchlist:     watchlist,
		Skipped:       skipped,
		TotalScanned:  len(req.Candidates),
	}
}
