package repository

import (
	"context"
	"strconv"

	"RankPull/internal/domain/models"
	drepo "RankPull/internal/domain/repository"
	pkgkafka "RankPull/pkg/kafka"
)

// KafkaResultPublisher publishes finished result sets to a Kafka topic for
// downstream consumers.
type KafkaResultPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaResultPublisher creates a Kafka-backed result publisher.
func NewKafkaResultPublisher(producer *pkgkafka.Producer, topic string) drepo.Publisher {
	return &KafkaResultPublisher{producer: producer, topic: topic}
}

// PublishResult publishes one ResultSet as JSON, keyed by generation time.
func (p *KafkaResultPublisher) PublishResult(ctx context.Context, rs *models.ResultSet) error {
	key := []byte(strconv.FormatInt(rs.GeneratedAt.Unix(), 10))
	return p.producer.Publish(ctx, p.topic, key, rs)
}

// Close closes the underlying producer.
func (p *KafkaResultPublisher) Close() error {
	return p.producer.Close()
}
