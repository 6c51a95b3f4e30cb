package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvestorStats is the cached aggregate snapshot for one investor. Monthly is
// keyed by calendar month (January = 0) regardless of year.
type InvestorStats struct {
	TotalInvested     float64            `json:"total_invested"`
	ActiveAllocations int                `json:"active_allocations"`
	Monthly           [12]float64        `json:"monthly"`
	Categories        map[string]float64 `json:"categories"`
	ComputedAt        time.Time          `json:"computed_at"`
}

// StatsCache holds short-lived portfolio aggregates so the stats endpoint
// does not rescan the ledger on every dashboard load.
type StatsCache interface {
	Get(ctx context.Context, investorID uuid.UUID) (*InvestorStats, error)
	Put(ctx context.Context, investorID uuid.UUID, stats InvestorStats, ttl time.Duration) error
	Invalidate(ctx context.Context, investorID uuid.UUID) error
}
