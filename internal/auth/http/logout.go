package http

import (
	"net/http"

	"github.com/aussiebroadwan/sessiond/pkg/authsdk"
	"github.com/aussiebroadwan/sessiond/pkg/httpx"
)

// LogoutHandler godoc
//
//	@Summary		Log out
//	@Description	Clears the refresh cookie. Always succeeds. Tokens already issued remain valid until they expire.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse	"Logged out successfully"
//	@Router			/logout [post].
func LogoutHandler(ch SecureChannel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ch.ClearRefresh(w)
		httpx.WriteMessage(w, http.StatusOK, authsdk.MsgLogoutSuccess)
	}
}
