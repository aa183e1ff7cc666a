package repository

import (
	"context"

	"TradeCommittee/internal/domain/models"
	"TradeCommittee/internal/domain/repository"
	pkgkafka "TradeCommittee/pkg/kafka"
)

// KafkaDecisionPublisher implements DecisionPublisher for Kafka.
// Messages are keyed by symbol so a consumer sees each instrument's
// decisions in order.
type KafkaDecisionPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaDecisionPublisher creates a Kafka decision publisher.
func NewKafkaDecisionPublisher(producer *pkgkafka.Producer, topic string) repository.DecisionPublisher {
	return &KafkaDecisionPublisher{producer: producer, topic: topic}
}

func (p *KafkaDecisionPublisher) Publish(ctx context.Context, d *models.CommitteeDecision) error {
	return p.producer.Publish(ctx, p.topic, []byte(d.Symbol), d)
}

func (p *KafkaDecisionPublisher) PublishBatch(ctx context.Context, decisions []*models.CommitteeDecision) error {
	if len(decisions) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(decisions))
	for i, d := range decisions {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(d.Symbol),
			Value: d,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaDecisionPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
