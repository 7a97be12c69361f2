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

type RefreshHandler struct {
	Rotator *service.RefreshRotator
	Channel SecureChannel
	Metrics *metrics.Metrics
}

// ServeHTTP trades the refresh cookie for a new access token.
//
//	@Summary		Refresh access token
//	@Description	Reads the refresh token from the refreshToken cookie only. The cookie is not reissued,
//	@Description	so a session ends seven days after login regardless of activity.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.RefreshResponse	"message, accessToken"
//	@Failure		401	{object}	authsdk.MessageResponse	"No refresh cookie, or invalid or expired refresh token"
//	@Failure		403	{object}	authsdk.MessageResponse	"Token is not a refresh token"
//	@Failure		429	{object}	authsdk.MessageResponse	"Too many login attempts"
//	@Router			/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	access, err := h.Rotator.Rotate(h.Channel.ReadRefresh(r))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingToken):
		h.Metrics.Refreshes.WithLabelValues(metrics.OutcomeMissing).Inc()
		httpx.WriteMessage(w, http.StatusUnauthorized, authsdk.MsgNoRefreshToken)
		return
	case errors.Is(err, service.ErrWrongScope):
		h.Metrics.Refreshes.WithLabelValues(metrics.OutcomeWrongScope).Inc()
		httpx.WriteMessage(w, http.StatusForbidden, authsdk.MsgInvalidTokenScope)
		return
	case errors.Is(err, service.ErrUnauthorized):
		outcome := metrics.OutcomeInvalid
		if errors.Is(err, jwtx.ErrExpired) {
			outcome = metrics.OutcomeExpired
		}
		h.Metrics.Refreshes.WithLabelValues(outcome).Inc()
		log.Warn("refresh rejected", "err", err)
		httpx.WriteMessage(w, http.StatusUnauthorized, authsdk.MsgInvalidRefreshToken)
		return
	default:
		h.Metrics.Refreshes.WithLabelValues(metrics.OutcomeInternalFail).Inc()
		log.Error("refresh failed", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, authsdk.MsgInternal)
		return
	}

	h.Metrics.Refreshes.WithLabelValues(metrics.OutcomeSuccess).Inc()
	httpx.WriteJSON(w, http.StatusOK, authsdk.RefreshResponse{
		Message:     authsdk.MsgRefreshSuccess,
		AccessToken: access.Token,
	})
}
