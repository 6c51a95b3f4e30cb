package application

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
)

// ListInvestments returns the actor's settled investments, newest first,
// joined with each funding target's descriptive fields.
func (s *Service) ListInvestments(ctx context.Context, actor Actor) ([]domain.PortfolioItem, error) {
	if actor.UserID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	return s.investments.ListByInvestor(ctx, actor.UserID)
}

// InvestorStats derives the portfolio aggregates, serving a cached snapshot
// when one is fresh. Monthly buckets are keyed by calendar month regardless
// of year; investments from different years share a bucket. That collapse is
// accepted behavior, not a defect to fix here.
func (s *Service) InvestorStats(ctx context.Context, actor Actor) (ports.InvestorStats, error) {
	if actor.UserID == uuid.Nil {
		return ports.InvestorStats{}, domain.ErrUnauthorized
	}

	if s.statsCache != nil {
		if cached, err := s.statsCache.Get(ctx, actor.UserID); err == nil && cached != nil {
			return *cached, nil
		}
	}

	items, err := s.investments.ListByInvestor(ctx, actor.UserID)
	if err != nil {
		return ports.InvestorStats{}, err
	}

	stats := ports.InvestorStats{
		ActiveAllocations: len(items),
		Categories:        map[string]float64{},
		ComputedAt:        s.nowFn(),
	}
	for _, item := range items {
		stats.TotalInvested += item.Amount
		stats.Monthly[int(item.CreatedAt.Month())-1] += item.Amount
		if category := strings.TrimSpace(item.Industry); category != "" {
			stats.Categories[category] += item.Amount
		}
	}

	if s.statsCache != nil {
		if err := s.statsCache.Put(ctx, actor.UserID, stats, s.cfg.StatsCacheTTL); err != nil {
			s.logger.WarnContext(ctx, "stats cache write failed",
				"operation", "investor_stats",
				"outcome", "failure",
				"investor_id", actor.UserID,
				"error", err,
			)
		}
	}
	return stats, nil
}

// ListTargets serves the public catalog of active funding targets.
func (s *Service) ListTargets(ctx context.Context, input TargetListInput) ([]domain.FundingTarget, int, error) {
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}
	return s.targets.List(ctx, ports.TargetQuery{Status: domain.TargetStatusActive, Limit: limit, Offset: offset})
}

// GetTarget fetches one funding target by id for the public detail view.
func (s *Service) GetTarget(ctx context.Context, rawID string) (domain.FundingTarget, error) {
	targetID, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return domain.FundingTarget{}, domain.ErrInvalidInput
	}
	return s.targets.GetByID(ctx, targetID)
}
