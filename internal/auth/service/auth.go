package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/sessiond/internal/auth/domain"
	"github.com/aussiebroadwan/sessiond/internal/auth/store"
	"github.com/aussiebroadwan/sessiond/pkg/slogx"
)

// PasswordVerifier is the opaque one-way comparison used at login. It
// returns nil only when password matches encodedHash.
type PasswordVerifier interface {
	VerifyPassword(password, encodedHash string) error
}

// AuthService checks credentials against the user store and hands out a
// session pair on success.
type AuthService struct {
	Users    store.Users
	Verifier PasswordVerifier
	Issuer   *SessionIssuer

	// DummyHash is compared against when the email is unknown so that both
	// failure paths cost one hash verification.
	DummyHash string
}

// Login authenticates creds and issues a session pair.
//
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.User, domain.SessionPair, error) {
	l := slogx.FromContext(ctx)

	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return domain.User{}, domain.SessionPair{}, ErrInvalidCredentials
	}

	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if s.DummyHash != "" {
				_ = s.Verifier.VerifyPassword(creds.Password, s.DummyHash)
			}
			return domain.User{}, domain.SessionPair{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.SessionPair{}, err
	}

	if err := s.Verifier.VerifyPassword(creds.Password, user.PasswordHash); err != nil {
		l.Debug("password verification failed", slog.String("user_id", user.ID.String()))
		return domain.User{}, domain.SessionPair{}, ErrInvalidCredentials
	}

	pair, err := s.Issuer.Issue(user.ID)
	if err != nil {
		return domain.User{}, domain.SessionPair{}, err
	}

	return user, pair, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
