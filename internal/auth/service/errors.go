package service

import "errors"

var (
	// ErrMissingToken means no token was presented, or the Authorization
	// header is not of the form "Bearer <token>".
	ErrMissingToken = errors.New("missing_token")

	// ErrUnauthorized wraps any codec failure (malformed, bad signature,
	// expired, wrong issuer). The codec error stays in the chain so
	// errors.Is(err, jwtx.ErrExpired) still works for logging and metrics.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrWrongScope means the token is genuine and unexpired but was issued
	// for the other purpose, e.g. a refresh token presented as access.
	ErrWrongScope = errors.New("wrong_scope")

	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	// Callers must never be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidIdentity is returned when asked to issue tokens for an empty
	// subject.
	ErrInvalidIdentity = errors.New("invalid_identity")

	// ErrEmailTaken is returned by registration for a duplicate email.
	ErrEmailTaken = errors.New("email_taken")

	// ErrUserNotFound is returned when a verified identity no longer maps to
	// a user record.
	ErrUserNotFound = errors.New("user_not_found")
)
