package postgres

import (
	"time"

	"github.com/google/uuid"
)

type accountModel struct {
	AccountID        uuid.UUID `gorm:"column:account_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string    `gorm:"column:name"`
	Email            string    `gorm:"column:email"`
	Role             string    `gorm:"column:role"`
	GatewayKeyID     *string   `gorm:"column:gateway_key_id"`
	GatewayKeySecret *string   `gorm:"column:gateway_key_secret"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (accountModel) TableName() string { return "accounts" }

type fundingTargetModel struct {
	TargetID     uuid.UUID `gorm:"column:target_id;type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID    uuid.UUID `gorm:"column:account_id"`
	CompanyName  string    `gorm:"column:company_name"`
	Description  string    `gorm:"column:description"`
	Industry     string    `gorm:"column:industry"`
	Stage        string    `gorm:"column:stage"`
	Status       string    `gorm:"column:status"`
	Location     string    `gorm:"column:location"`
	Website      string    `gorm:"column:website"`
	FundingGoal  float64   `gorm:"column:funding_goal"`
	RaisedAmount float64   `gorm:"column:raised_amount"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (fundingTargetModel) TableName() string { return "funding_targets" }

type investmentModel struct {
	InvestmentID     uuid.UUID `gorm:"column:investment_id;type:uuid;primaryKey"`
	InvestorID       uuid.UUID `gorm:"column:investor_id"`
	TargetID         uuid.UUID `gorm:"column:target_id"`
	Amount           float64   `gorm:"column:amount"`
	Status           string    `gorm:"column:status"`
	GatewayPaymentID string    `gorm:"column:gateway_payment_id"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (investmentModel) TableName() string { return "investments" }

// portfolioRow is the join projection behind the investor's portfolio view.
type portfolioRow struct {
	investmentModel
	CompanyName string `gorm:"column:company_name"`
	Industry    string `gorm:"column:industry"`
	Stage       string `gorm:"column:stage"`
}

type outboxModel struct {
	OutboxID       uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType      string     `gorm:"column:event_type"`
	PartitionKey   string     `gorm:"column:partition_key"`
	Payload        string     `gorm:"column:payload;type:jsonb"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	FirstSeenAt    time.Time  `gorm:"column:first_seen_at"`
	PublishedAt    *time.Time `gorm:"column:published_at"`
	RetryCount     int        `gorm:"column:retry_count"`
	LastError      *string    `gorm:"column:last_error"`
	LastErrorAt    *time.Time `gorm:"column:last_error_at"`
	ClaimToken     *string    `gorm:"column:claim_token"`
	ClaimUntil     *time.Time `gorm:"column:claim_until"`
	DeadLetteredAt *time.Time `gorm:"column:dead_lettered_at"`
}

func (outboxModel) TableName() string { return "investment_outbox" }
