package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/sessiond/internal/auth/metrics"
	"github.com/aussiebroadwan/sessiond/internal/auth/service"
	"github.com/aussiebroadwan/sessiond/pkg/authsdk"
	"github.com/aussiebroadwan/sessiond/pkg/httpx"
	"github.com/aussiebroadwan/sessiond/pkg/jwtx"
	"github.com/aussiebroadwan/sessiond/pkg/slogx"
)

// RequireAccess admits requests carrying a valid access token and puts the
// subject on the context for httpx.UserIDFromContext.
func RequireAccess(guard *service.AccessGuard, m *metrics.Metrics) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, err := guard.Authorize(r.Header.Get("Authorization"))
			if err != nil {
				outcome, msg := guardFailure(err)
				m.GuardDecision.WithLabelValues(outcome).Inc()
				slogx.FromContext(ctx).Warn("access denied", "outcome", outcome, "err", err)
				writeBearerError(w, msg)
				return
			}

			m.GuardDecision.WithLabelValues(metrics.OutcomeSuccess).Inc()
			ctx = httpx.WithUserID(ctx, id.String())
			ctx = slogx.With(ctx, "user_id", id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func guardFailure(err error) (outcome, msg string) {
	switch {
	case errors.Is(err, service.ErrMissingToken):
		return metrics.OutcomeMissing, authsdk.MsgMissingToken
	case errors.Is(err, service.ErrWrongScope):
		return metrics.OutcomeWrongScope, authsdk.MsgUnauthorized
	case errors.Is(err, jwtx.ErrExpired):
		return metrics.OutcomeExpired, authsdk.MsgInvalidToken
	default:
		return metrics.OutcomeInvalid, authsdk.MsgInvalidToken
	}
}

// RFC 6750 error response for bearer auth.
func writeBearerError(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	httpx.WriteMessage(w, http.StatusUnauthorized, msg)
}
