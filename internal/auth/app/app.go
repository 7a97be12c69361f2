package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/sessiond/internal/auth/http"
	"github.com/aussiebroadwan/sessiond/internal/auth/service"
	"github.com/aussiebroadwan/sessiond/internal/auth/store"
	"github.com/aussiebroadwan/sessiond/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/sessiond/pkg/cryptox"
	"github.com/aussiebroadwan/sessiond/pkg/httpx"
	"github.com/aussiebroadwan/sessiond/pkg/jwtx"
	"github.com/aussiebroadwan/sessiond/pkg/ratelimit"
	"github.com/aussiebroadwan/sessiond/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application holds the session service and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	codec   *jwtx.Codec
	hasher  *cryptox.Hasher
	limiter ratelimit.Limiter
	redis   *redis.Client // nil unless REDIS_URL is set

	authService *service.AuthService
	userService *service.UserService
	guard       *service.AccessGuard
	rotator     *service.RefreshRotator

	server *http.Server
	router *httpapi.Router
}

// Option customises an Application.
type Option func(*Application)

func WithLogger(l *slog.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// New validates cfg and wires the application. Nothing listens until Run.
func New(cfg Config, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = slogx.New(slogx.Config{
			Service: "sessiond",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		})
	}

	db, err := OpenStore(cfg.DatabaseFile)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully")
	app.warnIfNoUsers()

	if err := app.initCodec(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initLimiter(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		app.closeBackends()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// warnIfNoUsers points operators at account creation when the store is empty.
func (app *Application) warnIfNoUsers() {
	empty, err := app.db.Users().IsEmpty(context.Background())
	switch {
	case err != nil:
		app.logger.Warn("could not check for registered users", "error", err)
	case empty:
		app.logger.Warn("no users registered; create one with `sessiond user add` or POST /users")
	}
}

// OpenStore opens the sqlite database at path and brings its schema up to
// date.
func OpenStore(path string) (store.Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// Handler exposes the fully wired router.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the server and blocks until it fails or a shutdown signal
// arrives.
func (app *Application) Run() error {
	app.logger.Info("sessiond starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.closeBackends()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests then closes the backends.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down sessiond...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.closeBackends(); err != nil {
		return err
	}

	app.logger.Info("sessiond stopped")
	return nil
}

func (app *Application) closeBackends() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

func (app *Application) initCodec() error {
	codec, err := jwtx.NewCodec([]byte(app.cfg.SecretKey), jwtx.WithIssuer(app.cfg.Issuer))
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	if codec.WeakSecret() {
		app.logger.Warn("SECRET_KEY is shorter than recommended",
			"min_length", jwtx.MinSecretLength,
		)
	}
	app.codec = codec
	return nil
}

// initLimiter uses Redis when REDIS_URL is set so every replica shares one
// set of counters, otherwise counters live in this process.
func (app *Application) initLimiter() error {
	rl := ratelimit.Config{Quota: app.cfg.RateLimitQuota, Window: app.cfg.RateLimitWindow}

	if app.cfg.RedisURL == "" {
		limiter, err := ratelimit.NewMemory(rl)
		if err != nil {
			return fmt.Errorf("failed to initialize rate limiter: %w", err)
		}
		app.limiter = limiter
		app.logger.Info("rate limiter using in-process counters",
			"quota", rl.Quota, "window", rl.Window)
		return nil
	}

	opts, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	limiter, err := ratelimit.NewRedis(client, rl, ratelimit.DefaultRedisPrefix)
	if err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// Requests fail closed until Redis comes back.
		app.logger.Warn("redis not reachable at startup", "error", err)
	}

	app.redis = client
	app.limiter = limiter
	app.logger.Info("rate limiter using redis", "addr", opts.Addr,
		"quota", rl.Quota, "window", rl.Window)
	return nil
}

func (app *Application) initServices() error {
	app.hasher = cryptox.NewHasher(app.cfg.PasswordPepper)

	dummy, err := app.hasher.DummyHash()
	if err != nil {
		return fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	issuer := service.NewSessionIssuer(app.codec, app.cfg.AccessTokenTTL)

	app.authService = &service.AuthService{
		Users:     app.db.Users(),
		Verifier:  app.hasher,
		Issuer:    issuer,
		DummyHash: dummy,
	}
	app.userService = &service.UserService{
		Store:  app.db,
		Hasher: app.hasher,
	}
	app.guard = service.NewAccessGuard(app.codec)
	app.rotator = service.NewRefreshRotator(app.codec, app.cfg.AccessTokenTTL)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.Guard = app.guard
	router.Rotator = app.rotator
	router.Limiter = app.limiter
	router.Channel = httpapi.CookieChannel{Secure: app.cfg.CookieSecure}
	router.ClientIP = httpx.ClientIP(app.cfg.TrustProxy)
	router.CORSOrigins = app.cfg.CORSOrigins
	router.SignerReady = func() bool { return app.codec != nil }
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
