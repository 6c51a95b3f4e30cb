package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CredentialPair is a point-in-time snapshot of the gateway credentials
// governing one transaction. Order creation and verification must resolve to
// the identical pair for the same funding target; a rotation in between makes
// the signature check fail, which is the intended fail-closed outcome.
type CredentialPair struct {
	KeyID     string
	KeySecret string
}

// Usable reports whether both halves of the pair are present.
func (c CredentialPair) Usable() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// ComputeSignature renders the gateway's canonical payment signature:
// lowercase-hex HMAC-SHA256 over "orderID|paymentID" keyed by the secret.
func ComputeSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a supplied signature in constant time. Timing-safe
// comparison is part of the contract, not an optimization.
func VerifySignature(secret, orderID, paymentID, supplied string) bool {
	expected := ComputeSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
