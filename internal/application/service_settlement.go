package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/contracts"
	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
)

// VerifyAndSettle checks the gateway callback signature and, on success,
// records the investment and bumps the target's raised amount atomically.
// Every verification failure mode (missing target, unresolvable credentials,
// signature mismatch) collapses into ErrVerification: the flow fails closed
// and the client cannot probe which part was wrong.
func (s *Service) VerifyAndSettle(ctx context.Context, actor Actor, input VerifyPaymentInput) (SettleResult, error) {
	if actor.UserID == uuid.Nil {
		return SettleResult{}, domain.ErrUnauthorized
	}
	input.OrderID = strings.TrimSpace(input.OrderID)
	input.PaymentID = strings.TrimSpace(input.PaymentID)
	input.Signature = strings.TrimSpace(input.Signature)
	if input.OrderID == "" || input.PaymentID == "" || input.Signature == "" {
		return SettleResult{}, fmt.Errorf("%w: order_id, payment_id and signature are required", domain.ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return SettleResult{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	targetID, err := uuid.Parse(strings.TrimSpace(input.FundingTargetID))
	if err != nil {
		return SettleResult{}, fmt.Errorf("%w: invalid funding_target_id", domain.ErrInvalidInput)
	}

	if !s.verify(ctx, targetID, input.OrderID, input.PaymentID, input.Signature) {
		return SettleResult{}, domain.ErrVerification
	}

	result, err := s.settle(ctx, actor.UserID, targetID, input.Amount, input.PaymentID)
	if err != nil {
		// Verification already passed, so the money has moved at the
		// gateway. The caller must see a failure, never a silent success.
		s.logger.ErrorContext(ctx, "settlement persistence failed after verification",
			"operation", "settle",
			"outcome", "failure",
			"target_id", targetID,
			"payment_id", input.PaymentID,
			"error", err,
		)
		return SettleResult{}, fmt.Errorf("%w: %v", domain.ErrSettlement, err)
	}

	if !result.AlreadySettled && s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx, actor.UserID); err != nil {
			s.logger.WarnContext(ctx, "stats cache invalidation failed",
				"operation", "settle",
				"outcome", "failure",
				"investor_id", actor.UserID,
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "investment settled",
		"operation", "settle",
		"outcome", "success",
		"investment_id", result.Investment.InvestmentID,
		"target_id", targetID,
		"payment_id", input.PaymentID,
		"duplicate", result.AlreadySettled,
	)
	return result, nil
}

// verify recomputes the expected signature with freshly resolved credentials
// and compares in constant time. It has no side effects and is safe to call
// repeatedly for the same payment.
func (s *Service) verify(ctx context.Context, targetID uuid.UUID, orderID, paymentID, supplied string) bool {
	target, err := s.targets.GetByID(ctx, targetID)
	if err != nil {
		s.logger.WarnContext(ctx, "verification target lookup failed",
			"operation", "verify_payment",
			"outcome", "failure",
			"target_id", targetID,
			"error", err,
		)
		return false
	}
	creds, err := s.resolveCredentials(ctx, target)
	if err != nil {
		// Unresolvable credentials report as failure-to-verify, identical
		// to a signature mismatch from the caller's point of view.
		return false
	}
	if !domain.VerifySignature(creds.KeySecret, orderID, paymentID, supplied) {
		s.logger.WarnContext(ctx, "payment signature mismatch",
			"operation", "verify_payment",
			"outcome", "failure",
			"target_id", targetID,
			"order_id", orderID,
			"payment_id", paymentID,
		)
		return false
	}
	return true
}

func (s *Service) settle(ctx context.Context, investorID, targetID uuid.UUID, amount float64, paymentID string) (SettleResult, error) {
	now := s.nowFn()
	investment := domain.Investment{
		InvestmentID:     uuid.New(),
		InvestorID:       investorID,
		TargetID:         targetID,
		Amount:           amount,
		Status:           domain.InvestmentStatusCompleted,
		GatewayPaymentID: paymentID,
		CreatedAt:        now,
	}

	payload, err := json.Marshal(contracts.InvestmentSettledEvent{
		InvestmentID:     investment.InvestmentID.String(),
		InvestorID:       investorID.String(),
		TargetID:         targetID.String(),
		Amount:           amount,
		Currency:         s.cfg.Currency,
		GatewayPaymentID: paymentID,
		SettledAt:        now,
	})
	if err != nil {
		return SettleResult{}, fmt.Errorf("marshal settled event: %w", err)
	}

	rec, already, err := s.investments.Settle(ctx, ports.SettleParams{
		Investment: investment,
		Outbox: ports.OutboxEvent{
			EventID:      uuid.New(),
			EventType:    domain.EventInvestmentSettled,
			PartitionKey: targetID.String(),
			Payload:      payload,
			OccurredAt:   now,
		},
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// A concurrent settlement for the same payment id won the
			// unique-index race; surface its record instead.
			existing, getErr := s.investments.GetByPaymentID(ctx, paymentID)
			if getErr == nil {
				return SettleResult{Investment: existing, AlreadySettled: true}, nil
			}
		}
		return SettleResult{}, err
	}
	return SettleResult{Investment: rec, AlreadySettled: already}, nil
}
