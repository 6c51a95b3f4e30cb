package ports

import (
	"context"

	"github.com/venturehub/investment-service/internal/domain"
)

// CreateOrderParams is the narrow order-creation contract the application
// depends on, decoupled from any concrete gateway SDK response shape.
type CreateOrderParams struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// GatewayOrder is the gateway-side order as echoed back on creation. The
// order is never persisted locally; it lives on the gateway and in the
// client's in-flight checkout state.
type GatewayOrder struct {
	OrderID     string
	AmountMinor int64
	Currency    string
}

// OrderClient opens gateway orders. Credentials are passed per call because
// each funding target may resolve to a different tenant pair; a shared
// long-lived client would leak one tenant's keys into another's orders.
type OrderClient interface {
	CreateOrder(ctx context.Context, creds domain.CredentialPair, params CreateOrderParams) (GatewayOrder, error)
}
