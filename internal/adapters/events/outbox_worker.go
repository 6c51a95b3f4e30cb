package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/ports"
)

// OutboxWorker drains the transactional outbox on a fixed interval. Each
// batch is claimed under a unique token with a lease so a crashed worker's
// claims expire and another instance picks them up. Events that keep failing
// past the retry budget are dead-lettered and left in the table for
// inspection.
type OutboxWorker struct {
	outbox     ports.OutboxRepository
	publisher  ports.EventPublisher
	logger     *slog.Logger
	interval   time.Duration
	batchSize  int
	claimLease time.Duration
	maxRetries int
}

type OutboxWorkerConfig struct {
	Interval   time.Duration
	BatchSize  int
	ClaimLease time.Duration
	MaxRetries int
}

func NewOutboxWorker(outbox ports.OutboxRepository, publisher ports.EventPublisher, logger *slog.Logger, cfg OutboxWorkerConfig) *OutboxWorker {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.ClaimLease <= 0 {
		cfg.ClaimLease = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 8
	}
	return &OutboxWorker{
		outbox:     outbox,
		publisher:  publisher,
		logger:     logger.With("module", "events", "layer", "worker"),
		interval:   cfg.Interval,
		batchSize:  cfg.BatchSize,
		claimLease: cfg.ClaimLease,
		maxRetries: cfg.MaxRetries,
	}
}

// Run blocks until ctx is canceled, draining one batch per tick.
func (w *OutboxWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.InfoContext(ctx, "outbox worker started",
		"operation", "run",
		"interval", w.interval.String(),
		"batch_size", w.batchSize,
	)
	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "outbox worker stopped", "operation", "run")
			return
		case <-ticker.C:
			w.drainOnce(ctx)
		}
	}
}

func (w *OutboxWorker) drainOnce(ctx context.Context) {
	claimToken := uuid.NewString()
	claimUntil := time.Now().UTC().Add(w.claimLease)

	records, err := w.outbox.ClaimUnpublished(ctx, w.batchSize, claimToken, claimUntil)
	if err != nil {
		w.logger.ErrorContext(ctx, "claim unpublished events failed",
			"operation", "claim",
			"outcome", "failure",
			"error", err,
		)
		return
	}
	for _, rec := range records {
		w.deliver(ctx, rec, claimToken)
	}
}

func (w *OutboxWorker) deliver(ctx context.Context, rec ports.OutboxRecord, claimToken string) {
	now := time.Now().UTC()
	if err := w.publisher.Publish(ctx, rec.EventType, rec.Payload, rec.PartitionKey); err != nil {
		if rec.RetryCount+1 >= w.maxRetries {
			if dlErr := w.outbox.MarkDeadLettered(ctx, rec.OutboxID, claimToken, err.Error(), now); dlErr != nil {
				w.logger.ErrorContext(ctx, "dead-letter mark failed",
					"operation", "deliver", "outcome", "failure",
					"outbox_id", rec.OutboxID, "error", dlErr,
				)
				return
			}
			w.logger.ErrorContext(ctx, "event dead-lettered",
				"operation", "deliver",
				"outcome", "dead_lettered",
				"outbox_id", rec.OutboxID,
				"event_type", rec.EventType,
				"retry_count", rec.RetryCount+1,
				"error", err,
			)
			return
		}
		if failErr := w.outbox.MarkFailed(ctx, rec.OutboxID, claimToken, err.Error(), now); failErr != nil {
			w.logger.ErrorContext(ctx, "failure mark failed",
				"operation", "deliver", "outcome", "failure",
				"outbox_id", rec.OutboxID, "error", failErr,
			)
			return
		}
		w.logger.WarnContext(ctx, "event publish failed, will retry",
			"operation", "deliver",
			"outcome", "retry",
			"outbox_id", rec.OutboxID,
			"event_type", rec.EventType,
			"retry_count", rec.RetryCount+1,
			"error", err,
		)
		return
	}

	if err := w.outbox.MarkPublished(ctx, rec.OutboxID, claimToken, now); err != nil {
		w.logger.ErrorContext(ctx, "publish mark failed",
			"operation", "deliver", "outcome", "failure",
			"outbox_id", rec.OutboxID, "error", err,
		)
		return
	}
	w.logger.InfoContext(ctx, "event delivered",
		"operation", "deliver",
		"outcome", "success",
		"outbox_id", rec.OutboxID,
		"event_type", rec.EventType,
	)
}
