package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
)

func TestCreateOrderSendsBasicAuthAndBody(t *testing.T) {
	t.Parallel()

	var gotPath, gotUser, gotPass string
	var gotBody createOrderBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(orderResponse{ID: "order_live_1", Amount: gotBody.Amount, Currency: gotBody.Currency})
	}))
	defer srv.Close()

	client := NewRazorpayClient(srv.URL, 2*time.Second)
	order, err := client.CreateOrder(context.Background(), domain.CredentialPair{KeyID: "rzp_test_key", KeySecret: "secret"}, ports.CreateOrderParams{
		AmountMinor: 100000,
		Currency:    "INR",
		Receipt:     "rcpt_5689600123_c8ef",
		Notes:       map[string]string{"target_id": "t1"},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if gotPath != "/v1/orders" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotUser != "rzp_test_key" || gotPass != "secret" {
		t.Fatalf("basic auth not forwarded: %q/%q", gotUser, gotPass)
	}
	if gotBody.Amount != 100000 || gotBody.Currency != "INR" || gotBody.Receipt != "rcpt_5689600123_c8ef" {
		t.Fatalf("unexpected body %+v", gotBody)
	}
	if gotBody.Notes["target_id"] != "t1" {
		t.Fatalf("notes not forwarded")
	}
	if order.OrderID != "order_live_1" || order.AmountMinor != 100000 {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestCreateOrderNonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"key mismatch"}}`))
	}))
	defer srv.Close()

	client := NewRazorpayClient(srv.URL, 2*time.Second)
	_, err := client.CreateOrder(context.Background(), domain.CredentialPair{KeyID: "k", KeySecret: "s"}, ports.CreateOrderParams{AmountMinor: 100, Currency: "INR"})
	if !errors.Is(err, domain.ErrGatewayUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestCreateOrderMissingOrderID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewRazorpayClient(srv.URL, 2*time.Second)
	_, err := client.CreateOrder(context.Background(), domain.CredentialPair{KeyID: "k", KeySecret: "s"}, ports.CreateOrderParams{AmountMinor: 100, Currency: "INR"})
	if !errors.Is(err, domain.ErrGatewayUpstream) {
		t.Fatalf("expected upstream error for missing id, got %v", err)
	}
}

func TestCreateOrderUnreachableGateway(t *testing.T) {
	t.Parallel()

	client := NewRazorpayClient("http://127.0.0.1:1", time.Second)
	_, err := client.CreateOrder(context.Background(), domain.CredentialPair{KeyID: "k", KeySecret: "s"}, ports.CreateOrderParams{AmountMinor: 100, Currency: "INR"})
	if !errors.Is(err, domain.ErrGatewayUpstream) {
		t.Fatalf("expected upstream error for unreachable host, got %v", err)
	}
}

func TestCreateOrderRejectsUnusableCredentials(t *testing.T) {
	t.Parallel()

	client := NewRazorpayClient("http://example.invalid", time.Second)
	_, err := client.CreateOrder(context.Background(), domain.CredentialPair{KeyID: "k"}, ports.CreateOrderParams{AmountMinor: 100, Currency: "INR"})
	if !errors.Is(err, domain.ErrGatewayConfig) {
		t.Fatalf("expected config error for half a credential pair, got %v", err)
	}
}
