package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/sessiond/internal/auth/domain"
	"github.com/aussiebroadwan/sessiond/pkg/jwtx"
)

// Codec is the subset of jwtx.Codec the token services need.
type Codec interface {
	jwtx.Encoder
	jwtx.Decoder
	Now() time.Time
}

// SessionIssuer mints the access+refresh pair handed out at login. It does no
// I/O and holds no mutable state.
type SessionIssuer struct {
	Codec      jwtx.Encoder
	Clock      func() time.Time
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewSessionIssuer wires an issuer to codec with the given access TTL. The
// refresh TTL is always jwtx.RefreshTokenTTL.
func NewSessionIssuer(codec Codec, accessTTL time.Duration) *SessionIssuer {
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	return &SessionIssuer{
		Codec:      codec,
		Clock:      codec.Now,
		AccessTTL:  accessTTL,
		RefreshTTL: jwtx.RefreshTokenTTL,
	}
}

// Issue produces a matched session pair for id. Both tokens share the subject
// and issue time but differ in scope and expiry.
//
// Encoding failures mean the codec is broken, callers treat them as fatal for
// the request and log them.
func (s *SessionIssuer) Issue(id domain.Identity) (domain.SessionPair, error) {
	if id.IsZero() {
		return domain.SessionPair{}, ErrInvalidIdentity
	}

	now := s.now()

	access, err := mint(s.Codec, id, jwtx.ScopeAccess, s.AccessTTL, now)
	if err != nil {
		return domain.SessionPair{}, err
	}

	refresh, err := mint(s.Codec, id, jwtx.ScopeRefresh, s.RefreshTTL, now)
	if err != nil {
		return domain.SessionPair{}, err
	}

	return domain.SessionPair{
		Subject: id,
		Access:  access,
		Refresh: refresh,
	}, nil
}

func (s *SessionIssuer) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// RefreshRotator exchanges a refresh token for a fresh access token.
//
// The refresh token itself is not reissued and no server-side state is
// consulted, so a refresh token stays usable until its own exp. There is no
// way to revoke one early.
type RefreshRotator struct {
	Codec     Codec
	AccessTTL time.Duration
}

// NewRefreshRotator wires a rotator to codec.
func NewRefreshRotator(codec Codec, accessTTL time.Duration) *RefreshRotator {
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	return &RefreshRotator{Codec: codec, AccessTTL: accessTTL}
}

// Rotate validates refreshToken and returns a new access token for the same
// subject.
func (r *RefreshRotator) Rotate(refreshToken string) (domain.BearerToken, error) {
	if refreshToken == "" {
		return domain.BearerToken{}, ErrMissingToken
	}

	claims, err := r.Codec.Decode(refreshToken)
	if err != nil {
		return domain.BearerToken{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if claims.Scope != jwtx.ScopeRefresh {
		return domain.BearerToken{}, ErrWrongScope
	}

	return mint(r.Codec, domain.Identity(claims.Subject), jwtx.ScopeAccess, r.AccessTTL, r.Codec.Now())
}

func mint(
	enc jwtx.Encoder,
	id domain.Identity,
	scope jwtx.Scope,
	ttl time.Duration,
	now time.Time,
) (domain.BearerToken, error) {
	claims := jwtx.NewClaims(id.String(), scope, ttl, "", now)

	token, err := enc.Encode(claims)
	if err != nil {
		return domain.BearerToken{}, fmt.Errorf("encode %s token: %w", scope, err)
	}

	return domain.BearerToken{
		Token:     token,
		ExpiresAt: claims.ExpiresAtTime(),
	}, nil
}
