package application

import (
	"errors"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/domain"
)

// Actor is the authenticated identity attached to a request.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type CreateOrderInput struct {
	Amount          float64
	FundingTargetID string
}

type CreateOrderResult struct {
	OrderID     string
	KeyID       string
	AmountMinor int64
	Currency    string
}

type VerifyPaymentInput struct {
	OrderID         string
	PaymentID       string
	Signature       string
	FundingTargetID string
	Amount          float64
}

type SettleResult struct {
	Investment     domain.Investment
	AlreadySettled bool
}

type TargetListInput struct {
	Limit  int
	Offset int
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
