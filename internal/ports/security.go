package ports

import (
	"time"

	"github.com/google/uuid"
)

// AuthClaims is the verified identity attached to a request.
type AuthClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	KeyID     string
}

// TokenSigner signs and validates bearer tokens. Keys live in the security
// adapter so the application stays crypto-library agnostic.
type TokenSigner interface {
	Sign(claims AuthClaims) (string, error)
	ParseAndValidate(raw string) (AuthClaims, error)
}
