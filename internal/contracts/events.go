package contracts

import "time"

// InvestmentSettledEvent is the payload of the investment.settled outbox
// event, consumed by analytics and notification services.
type InvestmentSettledEvent struct {
	InvestmentID     string    `json:"investment_id"`
	InvestorID       string    `json:"investor_id"`
	TargetID         string    `json:"target_id"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	SettledAt        time.Time `json:"settled_at"`
}
