// Package gateway implements the payment-gateway order client against the
// Razorpay-compatible orders REST API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
)

const defaultBaseURL = "https://api.razorpay.com"

// RazorpayClient creates orders over HTTP with per-call credentials. No
// credential state is held on the client; every order is authenticated with
// the pair resolved for its funding target, so tenants never share a session.
type RazorpayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRazorpayClient builds the order client with an explicit request timeout.
// A timeout is mandatory: a hung gateway call must surface as a retryable
// upstream failure, not block the request worker.
func NewRazorpayClient(baseURL string, timeout time.Duration) *RazorpayClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &RazorpayClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type createOrderBody struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type gatewayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, creds domain.CredentialPair, params ports.CreateOrderParams) (ports.GatewayOrder, error) {
	if !creds.Usable() {
		return ports.GatewayOrder{}, domain.ErrGatewayConfig
	}

	raw, err := json.Marshal(createOrderBody{
		Amount:   params.AmountMinor,
		Currency: params.Currency,
		Receipt:  params.Receipt,
		Notes:    params.Notes,
	})
	if err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(raw))
	if err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(creds.KeyID, creds.KeySecret)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("%w: %v", domain.ErrGatewayUpstream, err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("%w: read response: %v", domain.ErrGatewayUpstream, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var gatewayErr gatewayErrorResponse
		_ = json.Unmarshal(body, &gatewayErr)
		return ports.GatewayOrder{}, fmt.Errorf("%w: status %d code %q",
			domain.ErrGatewayUpstream, res.StatusCode, gatewayErr.Error.Code)
	}

	var order orderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return ports.GatewayOrder{}, fmt.Errorf("%w: decode response: %v", domain.ErrGatewayUpstream, err)
	}
	if order.ID == "" {
		return ports.GatewayOrder{}, fmt.Errorf("%w: response missing order id", domain.ErrGatewayUpstream)
	}
	return ports.GatewayOrder{
		OrderID:     order.ID,
		AmountMinor: order.Amount,
		Currency:    order.Currency,
	}, nil
}
