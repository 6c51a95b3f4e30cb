package security

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/ports"
)

func TestEphemeralSignerRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralJWTSigner("test-key-1")
	if err != nil {
		t.Fatalf("build signer: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	claims := ports.AuthClaims{
		UserID:    uuid.New(),
		Email:     "investor@example.com",
		Role:      "INVESTOR",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	token, err := signer.Sign(claims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parsed, err := signer.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID != claims.UserID || parsed.Email != claims.Email || parsed.Role != claims.Role {
		t.Fatalf("claims mismatch: %+v", parsed)
	}
	if parsed.KeyID != "test-key-1" {
		t.Fatalf("kid not propagated: %q", parsed.KeyID)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralJWTSigner("")
	if err != nil {
		t.Fatalf("build signer: %v", err)
	}
	now := time.Now().UTC()
	token, err := signer.Sign(ports.AuthClaims{
		UserID:    uuid.New(),
		Role:      "INVESTOR",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := signer.ParseAndValidate(tampered); err == nil {
		t.Fatalf("tampered token accepted")
	}
}

func TestParseRejectsForeignKey(t *testing.T) {
	t.Parallel()

	a, _ := NewEphemeralJWTSigner("a")
	b, _ := NewEphemeralJWTSigner("b")
	now := time.Now().UTC()
	token, err := a.Sign(ports.AuthClaims{
		UserID:    uuid.New(),
		Role:      "INVESTOR",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := b.ParseAndValidate(token); err == nil {
		t.Fatalf("token signed by another key accepted")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, _ := NewEphemeralJWTSigner("")
	past := time.Now().UTC().Add(-2 * time.Hour)
	token, err := signer.Sign(ports.AuthClaims{
		UserID:    uuid.New(),
		Role:      "INVESTOR",
		IssuedAt:  past,
		ExpiresAt: past.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.ParseAndValidate(token); err == nil {
		t.Fatalf("expired token accepted")
	}
}
