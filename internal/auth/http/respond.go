package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/sessiond/internal/auth/domain"
	"github.com/aussiebroadwan/sessiond/pkg/authsdk"
	"github.com/aussiebroadwan/sessiond/pkg/httpx"
	"github.com/aussiebroadwan/sessiond/pkg/validx"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

func toSDKUser(u domain.User) authsdk.User {
	return authsdk.User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// writeDecodeError maps a validx failure to 400.
func writeDecodeError(w http.ResponseWriter, err error) {
	var ve *validx.ValidationError
	if errors.As(err, &ve) {
		fields := make([]authsdk.FieldError, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			fields = append(fields, authsdk.FieldError{Field: f.Field, Message: f.Message})
		}
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ValidationErrorResponse{
			Message: authsdk.MsgValidationFailed,
			Errors:  fields,
		})
		return
	}
	httpx.WriteMessage(w, http.StatusBadRequest, authsdk.MsgInvalidBody)
}
