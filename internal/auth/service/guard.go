package service

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/sessiond/internal/auth/domain"
	"github.com/aussiebroadwan/sessiond/pkg/jwtx"
)

const bearerPrefix = "Bearer "

// AccessGuard admits callers presenting a valid access-scoped bearer token.
type AccessGuard struct {
	Codec jwtx.Decoder
}

// NewAccessGuard returns a guard verifying tokens with codec.
func NewAccessGuard(codec jwtx.Decoder) *AccessGuard {
	return &AccessGuard{Codec: codec}
}

// Authorize checks an Authorization header value and returns the subject.
//
// The scope check always runs after signature and expiry pass. It is what
// stops a refresh token from being replayed as an access token.
func (g *AccessGuard) Authorize(rawHeader string) (domain.Identity, error) {
	token, ok := strings.CutPrefix(rawHeader, bearerPrefix)
	if !ok {
		return "", ErrMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}

	claims, err := g.Codec.Decode(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if claims.Scope != jwtx.ScopeAccess {
		return "", ErrWrongScope
	}

	return domain.Identity(claims.Subject), nil
}
