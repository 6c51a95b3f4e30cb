package contracts

// Envelope shapes. Every response carries a success flag; failures carry one
// generic message and never upstream or credential detail.

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CreateOrderRequest struct {
	Amount          float64 `json:"amount"`
	FundingTargetID string  `json:"funding_target_id"`
}

type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	KeyID       string `json:"key_id"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

type VerifyPaymentRequest struct {
	OrderID         string  `json:"order_id"`
	PaymentID       string  `json:"payment_id"`
	Signature       string  `json:"signature"`
	FundingTargetID string  `json:"funding_target_id"`
	Amount          float64 `json:"amount"`
}

type InvestmentResponse struct {
	InvestmentID     string  `json:"investment_id"`
	TargetID         string  `json:"target_id"`
	CompanyName      string  `json:"company_name,omitempty"`
	Industry         string  `json:"industry,omitempty"`
	Stage            string  `json:"stage,omitempty"`
	Amount           float64 `json:"amount"`
	Status           string  `json:"status"`
	GatewayPaymentID string  `json:"gateway_payment_id"`
	CreatedAt        string  `json:"created_at"`
}

type MonthlyBucket struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type CategorySlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type InvestorStatsResponse struct {
	TotalInvested     float64         `json:"total_invested"`
	ActiveAllocations int             `json:"active_allocations"`
	MonthlyData       []MonthlyBucket `json:"monthly_data"`
	PortfolioDiversity []CategorySlice `json:"portfolio_diversity"`
}

type FundingTargetResponse struct {
	TargetID     string  `json:"target_id"`
	CompanyName  string  `json:"company_name"`
	Description  string  `json:"description"`
	Industry     string  `json:"industry"`
	Stage        string  `json:"stage"`
	Status       string  `json:"status"`
	Location     string  `json:"location,omitempty"`
	Website      string  `json:"website,omitempty"`
	FundingGoal  float64 `json:"funding_goal"`
	RaisedAmount float64 `json:"raised_amount"`
	CreatedAt    string  `json:"created_at"`
}

type TargetListResponse struct {
	Targets []FundingTargetResponse `json:"targets"`
	Total   int                     `json:"total"`
}
