package metrics

import (
	"TradeCommittee/internal/domain/models"
	"TradeCommittee/internal/domain/repository"
	pkgmetrics "TradeCommittee/pkg/metrics"
)

// Adapter bridges the domain Metrics interface to the Prometheus recorder.
type Adapter struct {
	rec *pkgmetrics.Recorder
}

// NewAdapter wraps a Prometheus recorder for domain use.
func NewAdapter(rec *pkgmetrics.Recorder) *Adapter {
	return &Adapter{rec: rec}
}

func (a *Adapter) RecordDecision(symbol string, decision models.Decision) {
	a.rec.RecordDecision(symbol, string(decision))
}

func (a *Adapter) RecordScore(symbol string, score int) {
	a.rec.RecordScore(symbol, score)
}

func (a *Adapter) RecordError(kind string) {
	a.rec.RecordError(kind)
}

func (a *Adapter) RecordLatency(op string, seconds float64) {
	a.rec.RecordLatency(op, seconds)
}

var _ repository.Metrics = (*Adapter)(nil)
