package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
)

// CreateOrder opens a gateway order for an investment. Nothing is persisted
// locally: an abandoned checkout leaves no record, and the order lives only
// on the gateway and in the client's in-flight state.
func (s *Service) CreateOrder(ctx context.Context, actor Actor, input CreateOrderInput) (CreateOrderResult, error) {
	if actor.UserID == uuid.Nil {
		return CreateOrderResult{}, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleInvestor && actor.Role != domain.RoleFounder {
		return CreateOrderResult{}, fmt.Errorf("%w: only investors and founders can create orders", domain.ErrForbidden)
	}
	if input.Amount <= 0 {
		return CreateOrderResult{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	targetID, err := uuid.Parse(strings.TrimSpace(input.FundingTargetID))
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("%w: invalid funding_target_id", domain.ErrInvalidInput)
	}

	target, err := s.targets.GetByID(ctx, targetID)
	if err != nil {
		return CreateOrderResult{}, err
	}
	creds, err := s.resolveCredentials(ctx, target)
	if err != nil {
		return CreateOrderResult{}, err
	}

	now := s.nowFn()
	order, err := s.gateway.CreateOrder(ctx, creds, ports.CreateOrderParams{
		AmountMinor: int64(math.Round(input.Amount * 100)),
		Currency:    s.cfg.Currency,
		Receipt:     buildReceipt(now.UnixMilli(), actor.UserID),
		Notes: map[string]string{
			"investor_id": actor.UserID.String(),
			"target_id":   target.TargetID.String(),
		},
	})
	if err != nil {
		if !errors.Is(err, domain.ErrGatewayUpstream) {
			err = fmt.Errorf("%w: %v", domain.ErrGatewayUpstream, err)
		}
		s.logger.ErrorContext(ctx, "gateway order creation failed",
			"operation", "create_order",
			"outcome", "failure",
			"target_id", target.TargetID,
			"error", err,
		)
		return CreateOrderResult{}, err
	}

	s.logger.InfoContext(ctx, "gateway order created",
		"operation", "create_order",
		"outcome", "success",
		"order_id", order.OrderID,
		"target_id", target.TargetID,
		"amount_minor", order.AmountMinor,
	)
	return CreateOrderResult{
		OrderID:     order.OrderID,
		KeyID:       creds.KeyID, // public half only; the secret never crosses the boundary
		AmountMinor: order.AmountMinor,
		Currency:    order.Currency,
	}, nil
}

// buildReceipt synthesizes a receipt reference inside the gateway's 40 ASCII
// character cap: a unix-millis fragment plus an investor-id fragment keeps it
// unique enough for audit without persisting anything.
func buildReceipt(unixMilli int64, investorID uuid.UUID) string {
	ts := strconv.FormatInt(unixMilli, 10)
	if len(ts) > 10 {
		ts = ts[len(ts)-10:]
	}
	id := strings.ReplaceAll(investorID.String(), "-", "")
	return fmt.Sprintf("rcpt_%s_%s", ts, id[len(id)-4:])
}
