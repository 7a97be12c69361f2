package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/sessiond/internal/auth/domain"
	"github.com/aussiebroadwan/sessiond/internal/auth/metrics"
	"github.com/aussiebroadwan/sessiond/internal/auth/service"
	"github.com/aussiebroadwan/sessiond/pkg/authsdk"
	"github.com/aussiebroadwan/sessiond/pkg/httpx"
	"github.com/aussiebroadwan/sessiond/pkg/slogx"
	"github.com/aussiebroadwan/sessiond/pkg/validx"
)

var credentialsBody = validx.MustFor[domain.Credentials]()

type LoginHandler struct {
	AuthService *service.AuthService
	Channel     SecureChannel
	Metrics     *metrics.Metrics
}

// ServeHTTP authenticates a user and starts a session.
//
//	@Summary		Log in
//	@Description	Verifies email and password. On success returns the user and a short-lived access token,
//	@Description	and sets the refresh token in the HttpOnly refreshToken cookie.
//	@Description	Shares a fixed-window rate limit with /auth/refresh.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest			true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse			"message, user, accessToken"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"Malformed body"
//	@Failure		401		{object}	authsdk.MessageResponse			"Invalid credentials"
//	@Failure		429		{object}	authsdk.MessageResponse			"Too many login attempts"
//	@Failure		500		{object}	authsdk.MessageResponse			"Internal server error"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	creds, err := credentialsBody.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.Metrics.Logins.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		writeDecodeError(w, err)
		return
	}

	user, pair, err := h.AuthService.Login(ctx, creds)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		h.Metrics.Logins.WithLabelValues(metrics.OutcomeInvalid).Inc()
		httpx.WriteMessage(w, http.StatusUnauthorized, authsdk.MsgInvalidCredentials)
		return
	case err != nil:
		h.Metrics.Logins.WithLabelValues(metrics.OutcomeInternalFail).Inc()
		log.Error("login failed", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, authsdk.MsgInternal)
		return
	}

	h.Channel.SetRefresh(w, pair.Refresh.Token, pair.Refresh.ExpiresAt)

	h.Metrics.Logins.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("user logged in", "user_id", user.ID.String())

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Message:     authsdk.MsgLoginSuccess,
		User:        toSDKUser(user),
		AccessToken: pair.Access.Token,
	})
}
