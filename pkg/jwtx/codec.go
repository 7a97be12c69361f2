package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("jwtx: malformed token")
	ErrInvalidSignature = errors.New("jwtx: invalid signature")
	ErrExpired          = errors.New("jwtx: token expired")
	ErrIssuer           = errors.New("jwtx: issuer mismatch")

	// ErrEmptySecret is a configuration error, a codec is never built
	// without key material.
	ErrEmptySecret = errors.New("jwtx: empty signing secret")
)

// MinSecretLength is the smallest secret we consider sane for HS256. Shorter
// secrets are accepted by NewCodec but flagged by WeakSecret.
const MinSecretLength = 32

// Encoder turns claims into a signed bearer string.
type Encoder interface {
	Encode(Claims) (string, error)
}

// Decoder opens a bearer string and gives you back the claims if it's legit.
type Decoder interface {
	Decode(token string) (Claims, error)
}

// Codec signs and verifies HS256 tokens with a single process-wide secret.
// The secret is copied at construction and never changes afterwards, so a
// Codec is safe for concurrent use.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithIssuer stamps iss on encode and enforces it on decode.
func WithIssuer(issuer string) Option {
	return func(c *Codec) { c.issuer = issuer }
}

// WithClock replaces time.Now, tests use it to move across expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec builds a codec bound to secret.
func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	c := &Codec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WeakSecret reports whether the configured secret is shorter than
// MinSecretLength.
func (c *Codec) WeakSecret() bool { return len(c.secret) < MinSecretLength }

// Issuer returns the configured issuer, possibly empty.
func (c *Codec) Issuer() string { return c.issuer }

// Now returns the codec's notion of the current time.
func (c *Codec) Now() time.Time { return c.now() }

// Encode signs claims. The output only depends on the claims and the secret.
func (c *Codec) Encode(claims Claims) (string, error) {
	if err := claims.ValidateShape(); err != nil {
		return "", fmt.Errorf("jwtx: refusing to sign: %w", err)
	}
	if c.issuer != "" && claims.Issuer == "" {
		claims.Issuer = c.issuer
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of token and returns its claims.
//
// Every failure is classified as exactly one of ErrMalformed,
// ErrInvalidSignature, ErrExpired or ErrIssuer. The signature is checked
// before any claim, so a forged token never reports Expired.
func (c *Codec) Decode(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	)

	var claims Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	if !parsed.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateShape(); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// classify maps golang-jwt errors onto our terminal token states.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
