package usecase

import (
	"context"
	"time"

	"TradeCommittee/internal/domain/models"
	drepo "TradeCommittee/internal/domain/repository"
	domsvc "TradeCommittee/internal/domain/service"
	applogger "TradeCommittee/pkg/logger"
)

// CommitteeEvaluator is the single-instrument entry point: exclusion
// pre-screen, committee evaluation, metrics, and best-effort routing of
// the decision to the configured backend.
type CommitteeEvaluator struct {
	committee domsvc.Committee
	rules     ExclusionRules
	proc      *DecisionProcessor
	metrics   drepo.Metrics
	logger    *applogger.Logger
}

func NewCommitteeEvaluator(c domsvc.Committee, rules ExclusionRules, proc *DecisionProcessor, metrics drepo.Metrics, l *applogger.Logger) *CommitteeEvaluator {
	return &CommitteeEvaluator{committee: c, rules: rules, proc: proc, metrics: metrics, logger: l}
}

// Evaluate runs one candidate through the pre-screen and the committee.
// The committee itself cannot fail; persistence failures are logged and
// counted but never block the verdict.
func (e *CommitteeEvaluator) Evaluate(ctx context.Context, req *models.EvaluateRequest) *models.CommitteeDecision {
	start := time.Now()

	var d models.CommitteeDecision
	if reason := e.rules.Check(req.Ticker); reason != "" {
		d = excludedDecision(req.Symbol, reason)
	} else {
		d = e.committee.Evaluate(domsvc.EvaluateInput{
			Symbol:   req.Symbol,
			Ticker:   req.Ticker,
			Market:   req.Market,
			Catalyst: req.Catalyst,
			Entry:    req.Entry,
			Stop:     req.Stop,
			Target:   req.Target,
			Capital:  req.Capital,
			Leverage: req.Leverage,
		})
	}

	e.metrics.RecordDecision(d.Symbol, d.Decision)
	e.metrics.RecordScore(d.Symbol, d.FinalScore)
	e.metrics.RecordLatency("evaluate", time.Since(start).Seconds())

	if e.proc != nil {
		if err := e.proc.Process(ctx, &d); err != nil {
			e.logger.Warn("decision routing failed",
				applogger.String("symbol", d.Symbol),
				applogger.Error(err))
		}
	}
	return &d
}

// excludedDecision is the SKIP verdict for instruments filtered out before
// the committee convenes.
func excludedDecision(symbol, reason string) models.CommitteeDecision {
	return models.CommitteeDecision{
		Symbol:         symbol,
		Decision:       models.DecisionSkip,
		DecisionReason: reason,
		FinalScore:     0,
		Regime: models.RegimeResult{
			Regime:     models.RegimeUnknown,
			SectorBias: models.SectorBias{Boost: []string{}, Penalize: []string{}},
		},
		Reasoning:   models.CommitteeReasoning{Turtles: []string{}, Seykota: []string{}, Catalyst: []string{}, RiskReward: []string{}},
		EvaluatedAt: time.Now().UTC(),
	}
}
