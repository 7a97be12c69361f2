package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/sessiond/pkg/authsdk"
)

// SecureChannel carries the refresh token between server and browser
// without exposing it to scripts.
type SecureChannel interface {
	SetRefresh(w http.ResponseWriter, token string, expiresAt time.Time)
	ReadRefresh(r *http.Request) string
	ClearRefresh(w http.ResponseWriter)
}

// CookieChannel stores the refresh token in an HttpOnly, SameSite=Strict
// cookie.
type CookieChannel struct {
	// Secure should only be false for local development over plain HTTP.
	Secure bool
	Now    func() time.Time
}

var _ SecureChannel = CookieChannel{}

func (c CookieChannel) SetRefresh(w http.ResponseWriter, token string, expiresAt time.Time) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authsdk.RefreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   max(int(expiresAt.Sub(now()).Seconds()), 1),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieChannel) ReadRefresh(r *http.Request) string {
	ck, err := r.Cookie(authsdk.RefreshCookieName)
	if err != nil {
		return ""
	}
	return ck.Value
}

// ClearRefresh expires the cookie with the same attributes it was set with,
// otherwise browsers keep it.
func (c CookieChannel) ClearRefresh(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authsdk.RefreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
