package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvestmentStatusCompleted is the only persisted status: records exist only
// after a successful signature verification. Failed or abandoned payment
// attempts leave no local trace.
const InvestmentStatusCompleted = "completed"

// Investment is one verified, settled payment. GatewayPaymentID is the
// gateway's opaque payment identifier and is unique per real-world payment;
// it anchors settlement idempotency.
type Investment struct {
	InvestmentID     uuid.UUID
	InvestorID       uuid.UUID
	TargetID         uuid.UUID
	Amount           float64
	Status           string
	GatewayPaymentID string
	CreatedAt        time.Time
}

// PortfolioItem is an investment joined with the descriptive fields of its
// funding target, as served by the read-side listing.
type PortfolioItem struct {
	Investment
	CompanyName string
	Industry    string
	Stage       string
}
