package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/application"
	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
)

type stubAccounts struct{ accounts map[uuid.UUID]domain.Account }

func (s *stubAccounts) GetByID(_ context.Context, id uuid.UUID) (domain.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return account, nil
}

type stubTargets struct{ targets map[uuid.UUID]domain.FundingTarget }

func (s *stubTargets) GetByID(_ context.Context, id uuid.UUID) (domain.FundingTarget, error) {
	target, ok := s.targets[id]
	if !ok {
		return domain.FundingTarget{}, domain.ErrNotFound
	}
	return target, nil
}

func (s *stubTargets) List(_ context.Context, query ports.TargetQuery) ([]domain.FundingTarget, int, error) {
	out := make([]domain.FundingTarget, 0, len(s.targets))
	for _, target := range s.targets {
		if query.Status != "" && target.Status != query.Status {
			continue
		}
		out = append(out, target)
	}
	return out, len(out), nil
}

type stubInvestments struct {
	byPaymentID map[string]domain.Investment
}

func (s *stubInvestments) Settle(_ context.Context, params ports.SettleParams) (domain.Investment, bool, error) {
	if existing, ok := s.byPaymentID[params.Investment.GatewayPaymentID]; ok {
		return existing, true, nil
	}
	s.byPaymentID[params.Investment.GatewayPaymentID] = params.Investment
	return params.Investment, false, nil
}

func (s *stubInvestments) GetByPaymentID(_ context.Context, paymentID string) (domain.Investment, error) {
	inv, ok := s.byPaymentID[paymentID]
	if !ok {
		return domain.Investment{}, domain.ErrNotFound
	}
	return inv, nil
}

func (s *stubInvestments) ListByInvestor(_ context.Context, investorID uuid.UUID) ([]domain.PortfolioItem, error) {
	out := make([]domain.PortfolioItem, 0)
	for _, inv := range s.byPaymentID {
		if inv.InvestorID == investorID {
			out = append(out, domain.PortfolioItem{Investment: inv, CompanyName: "Acme", Industry: "Robotics"})
		}
	}
	return out, nil
}

type stubGateway struct{}

func (stubGateway) CreateOrder(_ context.Context, _ domain.CredentialPair, params ports.CreateOrderParams) (ports.GatewayOrder, error) {
	return ports.GatewayOrder{OrderID: "order_http_1", AmountMinor: params.AmountMinor, Currency: params.Currency}, nil
}

type stubSigner struct{ claims ports.AuthClaims }

func (s *stubSigner) Sign(ports.AuthClaims) (string, error) { return "token", nil }

func (s *stubSigner) ParseAndValidate(raw string) (ports.AuthClaims, error) {
	if raw != "valid-token" {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	return s.claims, nil
}

type testEnv struct {
	router     http.Handler
	investorID uuid.UUID
	targetID   uuid.UUID
	secret     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	investorID := uuid.New()
	ownerID := uuid.New()
	targetID := uuid.New()
	secret := "platform_secret"

	svc := application.NewService(application.Dependencies{
		Config: application.Config{PlatformKeyID: "rzp_test_platform", PlatformKeySecret: secret},
		Accounts: &stubAccounts{accounts: map[uuid.UUID]domain.Account{
			ownerID: {AccountID: ownerID, Role: domain.RoleFounder},
		}},
		Targets: &stubTargets{targets: map[uuid.UUID]domain.FundingTarget{
			targetID: {
				TargetID:    targetID,
				AccountID:   ownerID,
				CompanyName: "Acme Robotics",
				Industry:    "Robotics",
				Status:      domain.TargetStatusActive,
				FundingGoal: 500000,
				CreatedAt:   time.Now().UTC(),
			},
		}},
		Investments: &stubInvestments{byPaymentID: map[string]domain.Investment{}},
		Gateway:     stubGateway{},
		TokenSigner: &stubSigner{claims: ports.AuthClaims{
			UserID: investorID,
			Email:  "investor@example.com",
			Role:   domain.RoleInvestor,
		}},
	})

	return &testEnv{
		router:     NewRouter(NewHandler(svc)),
		investorID: investorID,
		targetID:   targetID,
		secret:     secret,
	}
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := e.do(http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, rec.Code)
		}
		if env := decodeEnvelope(t, rec); !env.Success {
			t.Fatalf("%s envelope not successful: %s", path, rec.Body.String())
		}
	}
}

func TestListTargetsPublic(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	rec := e.do(http.MethodGet, "/v1/targets", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list targets returned %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("expected success envelope")
	}
	var data struct {
		Targets []map[string]any `json:"targets"`
		Total   int              `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Total != 1 || len(data.Targets) != 1 {
		t.Fatalf("expected one target, got %+v", data)
	}
	if data.Targets[0]["company_name"] != "Acme Robotics" {
		t.Fatalf("snake_case company_name missing: %+v", data.Targets[0])
	}
}

func TestGetTargetNotFound(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	rec := e.do(http.MethodGet, "/v1/targets/"+uuid.NewString(), "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatalf("error envelope must carry success=false")
	}
	if env.Message == "" {
		t.Fatalf("error envelope must carry a message")
	}
}

func TestOrdersRequireAuth(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	body := `{"amount": 1000, "funding_target_id": "` + e.targetID.String() + `"}`

	if rec := e.do(http.MethodPost, "/v1/orders", "", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}
	if rec := e.do(http.MethodPost, "/v1/orders", "wrong-token", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", rec.Code)
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	body := `{"amount": 1000, "funding_target_id": "` + e.targetID.String() + `"}`
	rec := e.do(http.MethodPost, "/v1/orders", "valid-token", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	var data struct {
		OrderID     string `json:"order_id"`
		KeyID       string `json:"key_id"`
		AmountMinor int64  `json:"amount_minor"`
		Currency    string `json:"currency"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.OrderID != "order_http_1" || data.AmountMinor != 100000 || data.Currency != "INR" {
		t.Fatalf("unexpected order payload %+v", data)
	}
	if data.KeyID != "rzp_test_platform" {
		t.Fatalf("key id must be exposed for checkout, got %q", data.KeyID)
	}
}

func TestCreateOrderRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	body := `{"amount": 1000, "funding_target_id": "` + e.targetID.String() + `", "extra": true}`
	rec := e.do(http.MethodPost, "/v1/orders", "valid-token", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	sig := domain.ComputeSignature(e.secret, "order_http_1", "pay_abc")
	body := `{"order_id":"order_http_1","payment_id":"pay_abc","signature":"` + sig + `","funding_target_id":"` + e.targetID.String() + `","amount":1000}`

	rec := e.do(http.MethodPost, "/v1/payments/verify", "valid-token", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var data struct {
		Status           string  `json:"status"`
		Amount           float64 `json:"amount"`
		GatewayPaymentID string  `json:"gateway_payment_id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Status != "completed" || data.Amount != 1000 || data.GatewayPaymentID != "pay_abc" {
		t.Fatalf("unexpected settlement payload %+v", data)
	}

	// Replay of the same callback is acknowledged, not re-recorded.
	rec = e.do(http.MethodPost, "/v1/payments/verify", "valid-token", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on duplicate verify, got %d", rec.Code)
	}
}

func TestVerifyPaymentGenericFailureMessage(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	body := `{"order_id":"order_http_1","payment_id":"pay_abc","signature":"` + strings.Repeat("0", 64) + `","funding_target_id":"` + e.targetID.String() + `","amount":1000}`

	rec := e.do(http.MethodPost, "/v1/payments/verify", "valid-token", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatalf("expected failure envelope")
	}
	if env.Message != "payment verification failed" {
		t.Fatalf("message must stay generic, got %q", env.Message)
	}
}

func TestInvestmentsAndStatsEndpoints(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	sig := domain.ComputeSignature(e.secret, "order_http_1", "pay_abc")
	body := `{"order_id":"order_http_1","payment_id":"pay_abc","signature":"` + sig + `","funding_target_id":"` + e.targetID.String() + `","amount":1000}`
	if rec := e.do(http.MethodPost, "/v1/payments/verify", "valid-token", body); rec.Code != http.StatusCreated {
		t.Fatalf("seed settle failed: %d", rec.Code)
	}

	rec := e.do(http.MethodGet, "/v1/investments", "valid-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list investments returned %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	var listData struct {
		Investments []map[string]any `json:"investments"`
	}
	if err := json.Unmarshal(env.Data, &listData); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(listData.Investments) != 1 {
		t.Fatalf("expected one investment, got %d", len(listData.Investments))
	}

	rec = e.do(http.MethodGet, "/v1/investments/stats", "valid-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats returned %d: %s", rec.Code, rec.Body.String())
	}
	env = decodeEnvelope(t, rec)
	var stats struct {
		TotalInvested      float64          `json:"total_invested"`
		ActiveAllocations  int              `json:"active_allocations"`
		MonthlyData        []map[string]any `json:"monthly_data"`
		PortfolioDiversity []map[string]any `json:"portfolio_diversity"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalInvested != 1000 || stats.ActiveAllocations != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(stats.MonthlyData) != 12 {
		t.Fatalf("expected 12 monthly buckets, got %d", len(stats.MonthlyData))
	}
	if len(stats.PortfolioDiversity) != 1 {
		t.Fatalf("expected one diversity slice, got %d", len(stats.PortfolioDiversity))
	}
}

func TestRequestIDHeaderEcho(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("request id not echoed: %q", got)
	}
}
