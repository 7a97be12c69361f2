package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Messages the server returns. Handlers and clients compare against these.
const (
	MsgLoginSuccess        = "Login successful"
	MsgRefreshSuccess      = "New access token"
	MsgLogoutSuccess       = "Logged out successfully"
	MsgUserFetched         = "User found"
	MsgUserCreated         = "User created successfully"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgMissingToken        = "Missing or invalid token"
	MsgInvalidToken        = "Invalid or expired token"
	MsgUnauthorized        = "Unauthorized"
	MsgNoRefreshToken      = "No Refresh token found!"
	MsgInvalidRefreshToken = "Invalid or expired refresh token"
	MsgInvalidTokenScope   = "Invalid token scope"
	MsgTooManyAttempts     = "Too many login attempts. Try again later."
	MsgUserNotFound        = "User not found"
	MsgEmailTaken          = "Email already registered"
	MsgValidationFailed    = "Validation failed"
	MsgInvalidBody         = "Invalid request body"
	MsgInternal            = "Internal server error"
	MsgUnavailable         = "Service temporarily unavailable"
)

// ErrNotLoggedIn is returned by calls that need an access token before
// Login has succeeded.
var ErrNotLoggedIn = errors.New("authsdk: not logged in")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sessiond: %d %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsRateLimited reports whether err is a 429 from the server.
func IsRateLimited(err error) bool { return hasStatus(err, http.StatusTooManyRequests) }

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var v ValidationErrorResponse
	if err := json.Unmarshal(body, &v); err == nil && v.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: v.Message, Fields: v.Errors}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
