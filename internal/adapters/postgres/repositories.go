package postgres

import "gorm.io/gorm"

// Repositories bundles the gorm-backed implementations of the storage ports.
type Repositories struct {
	Accounts    *AccountRepository
	Targets     *FundingTargetRepository
	Investments *InvestmentRepository
	Outbox      *OutboxRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Accounts:    &AccountRepository{db: db},
		Targets:     &FundingTargetRepository{db: db},
		Investments: &InvestmentRepository{db: db},
		Outbox:      &OutboxRepository{db: db},
	}
}
