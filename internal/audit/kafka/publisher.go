// Package kafka mirrors audit entries to a Kafka topic for SIEM ingestion.
// Delivery is best-effort: the file store remains the source of truth and a
// broker outage only surfaces on the diagnostic logger.
package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"breakpoint/internal/audit"
)

type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func New(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

// Publish produces one entry asynchronously. Errors are logged, not returned;
// audit durability is the file store's job.
func (p *Publisher) Publish(ctx context.Context, e audit.Entry) {
	payload, err := e.MarshalJSON()
	if err != nil {
		p.logger.Error("marshal audit entry for kafka", "error", err)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(e.Action),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("kafka audit publish failed", "action", string(e.Action), "error", err)
		}
	})
}

func (p *Publisher) Close() {
	p.client.Close()
}
