package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/venturehub/investment-service/internal/domain"
)

// topicByEvent routes each event type to its Kafka topic. Unknown event
// types are rejected rather than silently dropped.
var topicByEvent = map[string]string{
	domain.EventInvestmentSettled: "investments.settled",
}

// KafkaPublisher writes domain events keyed by partition key so all events
// for one funding target stay ordered on one partition.
type KafkaPublisher struct {
	writers map[string]*kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	writers := make(map[string]*kafka.Writer, len(topicByEvent))
	for _, topic := range topicByEvent {
		writers[topic] = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		}
	}
	return &KafkaPublisher{writers: writers}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error {
	topic, ok := topicByEvent[eventType]
	if !ok {
		return fmt.Errorf("no topic mapped for event type %q", eventType)
	}
	writer := p.writers[topic]
	return writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(partitionKey),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	var firstErr error
	for _, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
