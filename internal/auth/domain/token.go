package domain

import "time"

// BearerToken is a signed token string plus the expiry encoded inside it.
// Only the token codec builds or opens the string.
type BearerToken struct {
	Token     string
	ExpiresAt time.Time
}

// SessionPair is what a successful login produces: a short-lived access
// token and a long-lived refresh token for the same subject.
type SessionPair struct {
	Subject Identity
	Access  BearerToken
	Refresh BearerToken
}
