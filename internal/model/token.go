package model

import "time"

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and verifies session tokens.
type TokenManager interface {
	// Issue signs claims. IssuedAt and ExpiresAt are set by the manager.
	Issue(claims SessionClaims) (string, error)
	Verify(token string) (SessionClaims, error)
}
