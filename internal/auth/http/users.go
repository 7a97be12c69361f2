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

var registrationBody = validx.MustFor[domain.Registration]()

type UsersHandler struct {
	UserService *service.UserService
	Metrics     *metrics.Metrics
}

// HandleMe returns the authenticated user.
//
//	@Summary		Current user
//	@Description	Returns the user the access token was issued to.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"message, user"
//	@Failure		401	{object}	authsdk.MessageResponse	"Missing, invalid or expired token, or the user no longer exists"
//	@Failure		500	{object}	authsdk.MessageResponse	"Internal server error"
//	@Router			/users-me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeBearerError(w, authsdk.MsgMissingToken)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, domain.Identity(userID))
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteMessage(w, http.StatusUnauthorized, authsdk.MsgUserNotFound)
		return
	case err != nil:
		log.Error("failed to load user", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, authsdk.MsgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{
		Message: authsdk.MsgUserFetched,
		User:    toSDKUser(user),
	})
}

// HandleRegister creates a user.
//
//	@Summary		Register
//	@Description	Creates a user. Name needs at least 2 characters, password at least 6. Does not log in.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest			true	"New user"
//	@Success		201		{object}	authsdk.UserResponse			"message, user"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"message, errors"
//	@Failure		409		{object}	authsdk.MessageResponse			"Email already registered"
//	@Failure		429		{object}	authsdk.MessageResponse			"Too many requests"
//	@Failure		500		{object}	authsdk.MessageResponse			"Internal server error"
//	@Router			/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	reg, err := registrationBody.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.Metrics.Registrations.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		writeDecodeError(w, err)
		return
	}

	user, err := h.UserService.Register(ctx, reg)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		h.Metrics.Registrations.WithLabelValues(metrics.OutcomeConflict).Inc()
		httpx.WriteMessage(w, http.StatusConflict, authsdk.MsgEmailTaken)
		return
	case err != nil:
		h.Metrics.Registrations.WithLabelValues(metrics.OutcomeInternalFail).Inc()
		log.Error("failed to register user", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, authsdk.MsgInternal)
		return
	}

	h.Metrics.Registrations.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("user registered", "user_id", user.ID.String())

	httpx.WriteJSON(w, http.StatusCreated, authsdk.UserResponse{
		Message: authsdk.MsgUserCreated,
		User:    toSDKUser(user),
	})
}
