package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/sessiond/pkg/ratelimit"
	"github.com/aussiebroadwan/sessiond/pkg/slogx"
)

// WindowConfig wires a fixed-window limiter into a route.
type WindowConfig struct {
	Limiter ratelimit.Limiter
	Key     KeyExtractor
	// Scope prefixes the key so one limiter can serve unrelated groups.
	Scope string
	// Message is the body of the 429 response.
	Message string
	// UnavailableMessage is the body of the 503 sent when the limiter fails.
	UnavailableMessage string
	// OnReject is called for every rejected or failed admission.
	OnReject func(r *http.Request, err error)
	Now      func() time.Time
}

// FixedWindow counts every request, admitted or not, against the key's
// window. Over quota requests get 429 and never reach next. When the
// counter store fails the request is refused with 503.
func FixedWindow(cfg WindowConfig) Middleware {
	if cfg.Key == nil {
		cfg.Key = IPKeyExtractor
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Message == "" {
		cfg.Message = "Too many requests. Try again later."
	}
	if cfg.UnavailableMessage == "" {
		cfg.UnavailableMessage = "Service temporarily unavailable"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			key := cfg.Scope + cfg.Key(r)

			d, err := cfg.Limiter.Admit(ctx, key)
			if err != nil {
				log.Error("rate limit backend failed", "err", err)
				if cfg.OnReject != nil {
					cfg.OnReject(r, err)
				}
				WriteMessage(w, http.StatusServiceUnavailable, cfg.UnavailableMessage)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if err := d.Err(); err != nil {
				retryAfter := d.RetryAfter(cfg.Now())
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter/time.Second)))

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter.Seconds(),
				)
				if cfg.OnReject != nil {
					cfg.OnReject(r, err)
				}
				WriteMessage(w, http.StatusTooManyRequests, cfg.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IsRateLimited reports whether err came from a rejected admission.
func IsRateLimited(err error) bool {
	return errors.Is(err, ratelimit.ErrRateLimited)
}
