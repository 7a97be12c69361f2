package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/sessiond/internal/auth/metrics"
	"github.com/aussiebroadwan/sessiond/internal/auth/service"
	"github.com/aussiebroadwan/sessiond/internal/auth/store"
	"github.com/aussiebroadwan/sessiond/pkg/authsdk"
	"github.com/aussiebroadwan/sessiond/pkg/httpx"
	"github.com/aussiebroadwan/sessiond/pkg/ratelimit"
	"github.com/aussiebroadwan/sessiond/pkg/slogx"

	_ "github.com/aussiebroadwan/sessiond/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// authWindowScope is the key prefix shared by /login and /auth/refresh, so
// both routes draw from one budget per client.
const authWindowScope = "auth:"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService *service.AuthService
	UserService *service.UserService
	Guard       *service.AccessGuard
	Rotator     *service.RefreshRotator

	// Limiter is the fixed-window limiter for /login and /auth/refresh.
	Limiter ratelimit.Limiter
	Channel SecureChannel
	Metrics *metrics.Metrics

	// ClientIP keys every per-client limit.
	ClientIP    httpx.KeyExtractor
	CORSOrigins []string
	SignerReady func() bool

	// Clock drives Retry-After on the fixed window.
	Clock func() time.Time
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Channel:      CookieChannel{Secure: true},
		Metrics:      metrics.New(),
		ClientIP:     httpx.IPKeyExtractor,
		Clock:        time.Now,
	}
}

func (r *Router) ApplyRoutes() {
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(func(req *http.Request, v any) {
			slogx.FromContext(req.Context()).Error("handler panicked", "panic", v)
		}),
		httpx.CORS(httpx.CORSConfig{AllowedOrigins: r.CORSOrigins, MaxAge: 600}),
	}

	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			sessiond
//	@version		0.1.0
//	@description	Stateless session service. Login returns a short-lived HS256 access token in the body
//	@description	and a seven-day refresh token in an HttpOnly cookie. Protected routes take the access
//	@description	token as a Bearer credential.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/sessiond
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:4000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	window := httpx.FixedWindow(httpx.WindowConfig{
		Limiter:            r.Limiter,
		Key:                r.ClientIP,
		Scope:              authWindowScope,
		Message:            authsdk.MsgTooManyAttempts,
		UnavailableMessage: authsdk.MsgUnavailable,
		Now:                r.Clock,
		OnReject: func(req *http.Request, err error) {
			reason := metrics.OutcomeUnavailable
			if httpx.IsRateLimited(err) {
				reason = metrics.OutcomeRateLimited
			}
			r.Metrics.RateLimited.WithLabelValues(req.URL.Path, reason).Inc()
		},
	})

	// POST /login - fixed window shared with refresh (brute force prevention)
	loginHandler := &LoginHandler{
		AuthService: r.AuthService,
		Channel:     r.Channel,
		Metrics:     r.Metrics,
	}
	r.Mux.Handle("POST /login", httpx.Chain(loginHandler, window))

	// POST /auth/refresh - same window instance as login
	refreshHandler := &RefreshHandler{
		Rotator: r.Rotator,
		Channel: r.Channel,
		Metrics: r.Metrics,
	}
	r.Mux.Handle("POST /auth/refresh", httpx.Chain(refreshHandler, window))

	// POST /logout - no credentials involved, lenient limit by IP
	r.Mux.Handle("POST /logout",
		httpx.Chain(LogoutHandler(r.Channel),
			httpx.RateLimitMiddleware(httpx.LenientLimit, r.ClientIP),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService: r.UserService,
		Metrics:     r.Metrics,
	}

	// Authenticated endpoint - lenient rate limit by user
	r.Mux.Handle("GET /users-me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			RequireAccess(r.Guard, r.Metrics),
			httpx.RateLimitByUser(httpx.LenientLimit, r.ClientIP),
		),
	)

	// POST /users - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /users",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitMiddleware(httpx.StrictLimit, r.ClientIP),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitMiddleware(httpx.LenientLimit, r.ClientIP),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.SignerReady),
			httpx.RateLimitMiddleware(httpx.LenientLimit, r.ClientIP),
		),
	)
	r.Mux.Handle("GET /metrics", r.Metrics.Handler())
}
