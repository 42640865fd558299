// internal/infrastructure/messaging/kafka/kafka.go
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/infrastructure/messaging"
)

type publisher struct {
	writer *kafkaGo.Writer
	logger *logrus.Logger
}

// NewPublisher creates a Kafka publisher for the configured brokers, or a
// no-op publisher when none are configured
func NewPublisher(cfg *config.Config, logger *logrus.Logger) messaging.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("No Kafka brokers configured, order events are disabled")
		return messaging.Noop{}
	}

	logger.WithField("brokers", cfg.Kafka.Brokers).Info("✅ Kafka publisher configured")
	return &publisher{
		writer: &kafkaGo.Writer{
			Addr:         kafkaGo.TCP(cfg.Kafka.Brokers...),
			Balancer:     &kafkaGo.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkaGo.RequireOne,
		},
		logger: logger,
	}
}

// PublishEvent marshals event as JSON and writes it to topic under key
func (p *publisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	p.logger.WithFields(logrus.Fields{
		"topic": topic,
		"key":   key,
	}).Debug("Event published")
	return nil
}

// Close flushes pending writes
func (p *publisher) Close() error {
	return p.writer.Close()
}
