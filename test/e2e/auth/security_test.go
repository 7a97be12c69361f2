//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/sessiond/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRefreshTokenIsNotAnAccessToken replays the refresh cookie value as a
// bearer credential.
func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	ctx := t.Context()
	baseURL := setupContainer(t, nil)
	c := newClient(t, baseURL)
	seedUser(t, c)

	_, err := c.Login(ctx, testEmail, testPassword)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	require.NoError(t, err)

	var refresh string
	for _, ck := range c.HTTPClient.Jar.Cookies(req.URL) {
		if ck.Name == authsdk.RefreshCookieName {
			refresh = ck.Value
		}
	}
	require.NotEmpty(t, refresh, "login should set the refresh cookie")

	c.SetAccessToken(refresh)
	_, err = c.Me(ctx)
	assertStatus(t, err, http.StatusUnauthorized, authsdk.MsgUnauthorized)
}

func TestGarbageBearerRejected(t *testing.T) {
	c := newClient(t, setupContainer(t, nil))

	c.SetAccessToken("not-a-token")
	_, err := c.Me(t.Context())
	assertStatus(t, err, http.StatusUnauthorized, authsdk.MsgInvalidToken)
}
