package events

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/ports"
)

type memOutbox struct {
	records map[uuid.UUID]*ports.OutboxRecord
}

func newMemOutbox() *memOutbox {
	return &memOutbox{records: map[uuid.UUID]*ports.OutboxRecord{}}
}

func (m *memOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	m.records[event.EventID] = &ports.OutboxRecord{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      event.Payload,
		CreatedAt:    event.OccurredAt,
		FirstSeenAt:  event.OccurredAt,
	}
	return nil
}

func (m *memOutbox) ClaimUnpublished(_ context.Context, limit int, claimToken string, claimUntil time.Time) ([]ports.OutboxRecord, error) {
	now := time.Now().UTC()
	out := make([]ports.OutboxRecord, 0)
	for _, rec := range m.records {
		if len(out) >= limit {
			break
		}
		if rec.PublishedAt != nil || rec.DeadLetteredAt != nil {
			continue
		}
		if rec.ClaimUntil != nil && rec.ClaimUntil.After(now) {
			continue
		}
		token := claimToken
		until := claimUntil
		rec.ClaimToken = &token
		rec.ClaimUntil = &until
		out = append(out, *rec)
	}
	return out, nil
}

func (m *memOutbox) MarkPublished(_ context.Context, outboxID uuid.UUID, claimToken string, at time.Time) error {
	rec := m.records[outboxID]
	if rec == nil || rec.ClaimToken == nil || *rec.ClaimToken != claimToken {
		return fmt.Errorf("claim mismatch")
	}
	published := at
	rec.PublishedAt = &published
	rec.ClaimToken = nil
	rec.ClaimUntil = nil
	return nil
}

func (m *memOutbox) MarkFailed(_ context.Context, outboxID uuid.UUID, claimToken, errMsg string, at time.Time) error {
	rec := m.records[outboxID]
	if rec == nil || rec.ClaimToken == nil || *rec.ClaimToken != claimToken {
		return fmt.Errorf("claim mismatch")
	}
	rec.RetryCount++
	msg := errMsg
	failedAt := at
	rec.LastError = &msg
	rec.LastErrorAt = &failedAt
	rec.ClaimToken = nil
	rec.ClaimUntil = nil
	return nil
}

func (m *memOutbox) MarkDeadLettered(_ context.Context, outboxID uuid.UUID, claimToken, errMsg string, at time.Time) error {
	if err := m.MarkFailed(context.Background(), outboxID, claimToken, errMsg, at); err != nil {
		return err
	}
	deadAt := at
	m.records[outboxID].DeadLetteredAt = &deadAt
	return nil
}

type flakyPublisher struct {
	failures int
	calls    int
}

func (p *flakyPublisher) Publish(context.Context, string, []byte, string) error {
	p.calls++
	if p.calls <= p.failures {
		return fmt.Errorf("broker unavailable")
	}
	return nil
}

func seedEvent(t *testing.T, outbox *memOutbox) uuid.UUID {
	t.Helper()
	eventID := uuid.New()
	if err := outbox.Enqueue(context.Background(), ports.OutboxEvent{
		EventID:      eventID,
		EventType:    "investment.settled",
		PartitionKey: "target-1",
		Payload:      []byte(`{"amount":1000}`),
		OccurredAt:   time.Now().UTC(),
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	return eventID
}

func TestOutboxWorkerPublishesAndMarks(t *testing.T) {
	t.Parallel()

	outbox := newMemOutbox()
	eventID := seedEvent(t, outbox)
	publisher := &flakyPublisher{}
	worker := NewOutboxWorker(outbox, publisher, nil, OutboxWorkerConfig{})

	worker.drainOnce(context.Background())

	rec := outbox.records[eventID]
	if rec.PublishedAt == nil {
		t.Fatalf("event not marked published")
	}
	if publisher.calls != 1 {
		t.Fatalf("expected one publish call, got %d", publisher.calls)
	}

	// A published event must not be re-delivered.
	worker.drainOnce(context.Background())
	if publisher.calls != 1 {
		t.Fatalf("published event re-delivered")
	}
}

func TestOutboxWorkerRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	outbox := newMemOutbox()
	eventID := seedEvent(t, outbox)
	publisher := &flakyPublisher{failures: 2}
	worker := NewOutboxWorker(outbox, publisher, nil, OutboxWorkerConfig{MaxRetries: 5})

	worker.drainOnce(context.Background())
	worker.drainOnce(context.Background())
	if rec := outbox.records[eventID]; rec.PublishedAt != nil || rec.RetryCount != 2 {
		t.Fatalf("expected two failed attempts, got %+v", rec)
	}

	worker.drainOnce(context.Background())
	if rec := outbox.records[eventID]; rec.PublishedAt == nil {
		t.Fatalf("event never published after broker recovery")
	}
}

func TestOutboxWorkerDeadLettersAfterBudget(t *testing.T) {
	t.Parallel()

	outbox := newMemOutbox()
	eventID := seedEvent(t, outbox)
	publisher := &flakyPublisher{failures: 100}
	worker := NewOutboxWorker(outbox, publisher, nil, OutboxWorkerConfig{MaxRetries: 3})

	for i := 0; i < 5; i++ {
		worker.drainOnce(context.Background())
	}

	rec := outbox.records[eventID]
	if rec.DeadLetteredAt == nil {
		t.Fatalf("event not dead-lettered after exhausting retries")
	}
	if rec.RetryCount != 3 {
		t.Fatalf("retry count = %d, want 3", rec.RetryCount)
	}
	if publisher.calls != 3 {
		t.Fatalf("dead-lettered event still being delivered: %d calls", publisher.calls)
	}
}
