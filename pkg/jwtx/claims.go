package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the session lifecycle.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the lifetime for refresh tokens. It is not
	// configurable, the refresh cookie Max-Age is derived from it.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Scope separates what a token may be used for. An access token authorizes
// API calls, a refresh token can only mint new access tokens.
type Scope string

const (
	ScopeAccess  Scope = "access"
	ScopeRefresh Scope = "refresh"
)

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	return s == ScopeAccess || s == ScopeRefresh
}

func (s Scope) String() string { return string(s) }

// Claims are the signed contents of every bearer token we issue.
type Claims struct {
	jwt.RegisteredClaims

	// Scope is fixed at issue time and never rewritten.
	Scope Scope `json:"scope"`
}

// NewClaims builds claims for subject with the given scope, valid from now
// until now+ttl. Timestamps are truncated to whole seconds, which is what
// survives the round trip through the token anyway.
func NewClaims(subject string, scope Scope, ttl time.Duration, issuer string, now time.Time) Claims {
	now = now.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: scope,
	}
}

// IssuedAtTime returns iat or the zero time.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns exp or the zero time.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ValidateShape checks the structural invariants that do not depend on the
// clock: a subject, a known scope, and exp strictly after iat.
func (c *Claims) ValidateShape() error {
	if c.Subject == "" {
		return ErrMalformed
	}
	if !c.Scope.Valid() {
		return ErrMalformed
	}
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return ErrMalformed
	}
	if !c.ExpiresAt.After(c.IssuedAt.Time) {
		return ErrMalformed
	}
	return nil
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}
