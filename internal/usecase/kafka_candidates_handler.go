package usecase

import (
	"context"
	"encoding/json"
	"time"

	"TradeCommittee/internal/domain/models"
	domrepo "TradeCommittee/internal/domain/repository"
	pkgkafka "TradeCommittee/pkg/kafka"
)

// KafkaCandidatesHandler consumes candidate evaluation requests and runs
// them through the committee.
type KafkaCandidatesHandler struct {
	topic     string
	evaluator *CommitteeEvaluator
	metrics   domrepo.Metrics
}

func NewKafkaCandidatesHandler(topic string, evaluator *CommitteeEvaluator, metrics domrepo.Metrics) *KafkaCandidatesHandler {
	return &KafkaCandidatesHandler{topic: topic, evaluator: evaluator, metrics: metrics}
}

func (h *KafkaCandidatesHandler) Topic() string { return h.topic }

// incoming message schema matches models.EvaluateRequest
func (h *KafkaCandidatesHandler) Handle(ctx context.Context, b []byte) error {
	var req models.EvaluateRequest
	if err := json.Unmarshal(b, &req); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if req.Capital <= 0 {
		req.Capital = 500
	}
	if req.Leverage <= 0 {
		req.Leverage = 5
	}

	start := time.Now()
	h.evaluator.Evaluate(ctx, &req)
	h.metrics.RecordLatency("consume_evaluate_seconds", time.Since(start).Seconds())
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaCandidatesHandler)(nil)
