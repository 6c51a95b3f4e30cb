package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	TargetStatusDraft  = "draft"
	TargetStatusActive = "active"
	TargetStatusClosed = "closed"
)

// FundingTarget is a posted venture seeking capital. RaisedAmount is
// monotonically non-decreasing and mutated only by settlement; descriptive
// fields belong to the owning account's profile flow.
type FundingTarget struct {
	TargetID     uuid.UUID
	AccountID    uuid.UUID
	CompanyName  string
	Description  string
	Industry     string
	Stage        string
	Status       string
	Location     string
	Website      string
	FundingGoal  float64
	RaisedAmount float64
	CreatedAt    time.Time
}
