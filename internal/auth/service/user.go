package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/sessiond/internal/auth/domain"
	"github.com/aussiebroadwan/sessiond/internal/auth/store"
	"github.com/aussiebroadwan/sessiond/pkg/idx"
)

// PasswordHasher produces the stored form of a password.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type UserService struct {
	Store  store.Store
	Hasher PasswordHasher
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, id domain.Identity) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// Register creates a user from an already validated registration payload.
func (s *UserService) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	hash, err := s.Hasher.HashPassword(reg.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           domain.Identity(idx.New().String()),
		Name:         strings.TrimSpace(reg.Name),
		Email:        normalizeEmail(reg.Email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	return u, nil
}
