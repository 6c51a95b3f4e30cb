// Package events carries settled-investment events from the transactional
// outbox to the broker.
package events

import (
	"context"
	"log/slog"
)

// LoggingPublisher is the no-broker fallback: events are logged instead of
// published. Used when no Kafka brokers are configured, keeping single-node
// deployments runnable without messaging infrastructure.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingPublisher{logger: logger.With("module", "events", "layer", "adapter")}
}

func (p *LoggingPublisher) Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error {
	p.logger.InfoContext(ctx, "event published (logging sink)",
		"operation", "publish",
		"outcome", "success",
		"event_type", eventType,
		"partition_key", partitionKey,
		"payload_bytes", len(payload),
	)
	return nil
}
