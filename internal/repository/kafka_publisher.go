package repository

import (
	"context"

	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	xkafka "StockLens/pkg/kafka"
)

// KafkaAnalysisPublisher emits AnalysisCompleted events keyed by symbol so
// that events for one symbol stay ordered within a partition.
type KafkaAnalysisPublisher struct {
	producer *xkafka.Producer
	topic    string
}

var _ drepo.AnalysisPublisher = (*KafkaAnalysisPublisher)(nil)

func NewKafkaAnalysisPublisher(producer *xkafka.Producer, topic string) *KafkaAnalysisPublisher {
	return &KafkaAnalysisPublisher{producer: producer, topic: topic}
}

func (p *KafkaAnalysisPublisher) PublishAnalysis(ctx context.Context, ev models.AnalysisCompleted) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev)
}

func (p *KafkaAnalysisPublisher) Close() error {
	return p.producer.Close()
}
