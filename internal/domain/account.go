package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleFounder  = "FOUNDER"
	RoleInvestor = "INVESTOR"
	RoleAdmin    = "ADMIN"
)

// Account is a platform user. Founders may carry a gateway credential pair so
// funds route directly to them instead of the platform account (BYOK). The
// secret half never leaves the domain layer except toward the gateway itself.
type Account struct {
	AccountID        uuid.UUID
	Name             string
	Email            string
	Role             string
	GatewayKeyID     string
	GatewayKeySecret string
	CreatedAt        time.Time
}

// Credentials returns the account's gateway pair, usable or not.
func (a Account) Credentials() CredentialPair {
	return CredentialPair{KeyID: a.GatewayKeyID, KeySecret: a.GatewayKeySecret}
}
