package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, accountID uuid.UUID) (domain.Account, error)
}

// TargetQuery pages the public funding-target catalog.
type TargetQuery struct {
	Status string
	Limit  int
	Offset int
}

type FundingTargetRepository interface {
	GetByID(ctx context.Context, targetID uuid.UUID) (domain.FundingTarget, error)
	List(ctx context.Context, query TargetQuery) ([]domain.FundingTarget, int, error)
}

// SettleParams is the atomic settlement unit: the investment row, the
// raised-amount increment on its funding target, and the settled event, all
// committed in one transaction.
type SettleParams struct {
	Investment domain.Investment
	Outbox     OutboxEvent
}

type InvestmentRepository interface {
	// Settle persists the investment and increments the target's raised
	// amount. When a record with the same gateway payment id already exists
	// it returns that record with alreadySettled=true and mutates nothing.
	Settle(ctx context.Context, params SettleParams) (rec domain.Investment, alreadySettled bool, err error)
	GetByPaymentID(ctx context.Context, gatewayPaymentID string) (domain.Investment, error)
	ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]domain.PortfolioItem, error)
}

// OutboxEvent is a pending domain event written in the same transaction as
// the state change it describes.
type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

// OutboxRecord is the persisted delivery state of an outbox event.
type OutboxRecord struct {
	OutboxID       uuid.UUID
	EventType      string
	PartitionKey   string
	Payload        []byte
	RetryCount     int
	LastError      *string
	CreatedAt      time.Time
	FirstSeenAt    time.Time
	PublishedAt    *time.Time
	LastErrorAt    *time.Time
	ClaimToken     *string
	ClaimUntil     *time.Time
	DeadLetteredAt *time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	ClaimUnpublished(ctx context.Context, limit int, claimToken string, claimUntil time.Time) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, claimToken string, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, claimToken, errMsg string, at time.Time) error
	MarkDeadLettered(ctx context.Context, outboxID uuid.UUID, claimToken, errMsg string, at time.Time) error
}
