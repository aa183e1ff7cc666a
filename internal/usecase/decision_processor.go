package usecase

import (
	"context"
	"fmt"
	"time"

	"TradeCommittee/internal/domain/models"
	drepo "TradeCommittee/internal/domain/repository"
)

// DecisionProcessor routes finished decisions to the configured backend:
// a ClickHouse audit table or a Kafka decisions topic.
type DecisionProcessor struct {
	pub     drepo.DecisionPublisher
	store   drepo.DecisionStore
	metrics drepo.Metrics
	backend string
}

// NewDecisionProcessor creates a new DecisionProcessor instance.
func NewDecisionProcessor(pub drepo.DecisionPublisher, store drepo.DecisionStore, metrics drepo.Metrics, backend string) *DecisionProcessor {
	return &DecisionProcessor{pub: pub, store: store, metrics: metrics, backend: backend}
}

// Process routes a single decision to the configured backend.
func (p *DecisionProcessor) Process(ctx context.Context, d *models.CommitteeDecision) error {
	if d == nil {
		return fmt.Errorf("decision is nil")
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, d)
	case "clickhouse":
		err = p.store.Store(ctx, d)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}
	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process decision: %w", err)
	}

	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

// ProcessBatch routes multiple decisions in one call.
func (p *DecisionProcessor) ProcessBatch(ctx context.Context, ds []*models.CommitteeDecision) error {
	if len(ds) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, ds)
	case "clickhouse":
		err = p.store.StoreBatch(ctx, ds)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}
	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())
	return nil
}

// Close flushes and closes the publisher. The decision store's connection
// belongs to the ClickHouse client and is closed with it on app shutdown.
func (p *DecisionProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
}
