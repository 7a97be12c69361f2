package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/sessiond/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	SecretKey      string        `env:"SECRET_KEY"`                       // Required for serve: HS256 signing secret
	Issuer         string        `env:"AUTH_ISSUER"      envDefault:"sessiond"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`

	RateLimitWindow time.Duration `env:"RATELIMIT_WINDOW" envDefault:"60s"`
	RateLimitQuota  int           `env:"RATELIMIT_QUOTA"  envDefault:"5"`
	RedisURL        string        `env:"REDIS_URL"` // Optional: share limiter counters across replicas

	DatabaseFile   string   `env:"DATABASE_FILE"   envDefault:"auth.db"`
	PasswordPepper string   `env:"PASSWORD_PEPPER"` // Optional: appended before argon2id hashing
	CookieSecure   bool     `env:"COOKIE_SECURE"   envDefault:"true"`
	CORSOrigins    []string `env:"CORS_ORIGIN"     envDefault:"http://localhost:5173" envSeparator:","`
	TrustProxy     bool     `env:"TRUST_PROXY"     envDefault:"false"`

	Env                 string        `env:"ENV"                   envDefault:"dev"`  // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"` // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"` // json, text
	Port                int           `env:"PORT"                  envDefault:"4000"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig reads Config from the environment. It does not validate.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks everything serve needs. The other commands only need
// DatabaseFile.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.SecretKey) == "" {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	// Token timestamps have one second resolution, anything shorter signs
	// an exp equal to iat.
	if c.AccessTokenTTL < time.Second {
		errs = append(errs, fmt.Errorf("ACCESS_TOKEN_TTL must be at least 1s, got %s", c.AccessTokenTTL))
	}
	if c.AccessTokenTTL >= jwtx.RefreshTokenTTL {
		errs = append(errs, fmt.Errorf("ACCESS_TOKEN_TTL must be shorter than the refresh lifetime %s", jwtx.RefreshTokenTTL))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Errorf("RATELIMIT_WINDOW must be positive, got %s", c.RateLimitWindow))
	}
	if c.RateLimitQuota <= 0 {
		errs = append(errs, fmt.Errorf("RATELIMIT_QUOTA must be positive, got %d", c.RateLimitQuota))
	}
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("DATABASE_FILE is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
