package domain

// Event types emitted through the transactional outbox.
const (
	EventInvestmentSettled = "investment.settled"
)
