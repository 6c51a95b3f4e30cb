package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")

	// ErrVerification covers every failure mode of the payment-verification
	// step: signature mismatch, missing funding target, unresolvable
	// credentials. Callers must not distinguish between them.
	ErrVerification = errors.New("payment verification failed")

	// ErrGatewayConfig means neither the funding target's owner nor the
	// platform has usable gateway credentials. Operator-correctable.
	ErrGatewayConfig = errors.New("payment gateway configuration error")

	// ErrGatewayUpstream means the gateway rejected a request or was
	// unreachable. The order flow mutates no local state, so the client may
	// retry safely.
	ErrGatewayUpstream = errors.New("payment gateway request failed")

	// ErrSettlement means verification succeeded but recording the
	// investment failed. The money has already moved at the gateway, so the
	// caller must be told reconciliation may be required.
	ErrSettlement = errors.New("settlement recording failed")
)
