package service_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/sessiond/internal/auth/domain"
	"github.com/aussiebroadwan/sessiond/internal/auth/service"
	"github.com/aussiebroadwan/sessiond/pkg/jwtx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// testClock is a settable clock shared by a codec and the services on top.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newCodec(t *testing.T) (*jwtx.Codec, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec, err := jwtx.NewCodec([]byte(testSecret), jwtx.WithIssuer("sessiond"), jwtx.WithClock(clock.Now))
	require.NoError(t, err)
	return codec, clock
}

func TestSessionIssuer_Issue(t *testing.T) {
	codec, clock := newCodec(t)
	issuer := service.NewSessionIssuer(codec, 0)

	pair, err := issuer.Issue("user-1")
	require.NoError(t, err)

	assert.Equal(t, domain.Identity("user-1"), pair.Subject)
	assert.NotEqual(t, pair.Access.Token, pair.Refresh.Token)
	assert.Equal(t, clock.now.Add(jwtx.DefaultAccessTokenTTL), pair.Access.ExpiresAt)
	assert.Equal(t, clock.now.Add(jwtx.RefreshTokenTTL), pair.Refresh.ExpiresAt)

	access, err := codec.Decode(pair.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, jwtx.ScopeAccess, access.Scope)
	assert.Equal(t, "user-1", access.Subject)
	assert.Equal(t, "sessiond", access.Issuer)

	refresh, err := codec.Decode(pair.Refresh.Token)
	require.NoError(t, err)
	assert.Equal(t, jwtx.ScopeRefresh, refresh.Scope)
	assert.Equal(t, access.IssuedAtTime(), refresh.IssuedAtTime())
}

func TestSessionIssuer_CustomAccessTTL(t *testing.T) {
	codec, clock := newCodec(t)
	issuer := service.NewSessionIssuer(codec, 5*time.Minute)

	pair, err := issuer.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(5*time.Minute), pair.Access.ExpiresAt)
}

func TestSessionIssuer_RejectsEmptyIdentity(t *testing.T) {
	codec, _ := newCodec(t)

	_, err := service.NewSessionIssuer(codec, 0).Issue("")
	require.ErrorIs(t, err, service.ErrInvalidIdentity)
}

func TestRefreshRotator_Rotate(t *testing.T) {
	codec, clock := newCodec(t)
	pair, err := service.NewSessionIssuer(codec, 0).Issue("user-1")
	require.NoError(t, err)

	rotator := service.NewRefreshRotator(codec, 0)

	clock.Advance(time.Hour)
	fresh, err := rotator.Rotate(pair.Refresh.Token)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(jwtx.DefaultAccessTokenTTL), fresh.ExpiresAt)

	claims, err := codec.Decode(fresh.Token)
	require.NoError(t, err)
	assert.Equal(t, jwtx.ScopeAccess, claims.Scope)
	assert.Equal(t, "user-1", claims.Subject)

	// The refresh token is not consumed.
	_, err = rotator.Rotate(pair.Refresh.Token)
	require.NoError(t, err)
}

func TestRefreshRotator_Failures(t *testing.T) {
	codec, clock := newCodec(t)
	pair, err := service.NewSessionIssuer(codec, 0).Issue("user-1")
	require.NoError(t, err)

	rotator := service.NewRefreshRotator(codec, 0)

	t.Run("missing", func(t *testing.T) {
		_, err := rotator.Rotate("")
		require.ErrorIs(t, err, service.ErrMissingToken)
	})

	t.Run("access token presented", func(t *testing.T) {
		_, err := rotator.Rotate(pair.Access.Token)
		require.ErrorIs(t, err, service.ErrWrongScope)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := rotator.Rotate("not.a.token")
		require.ErrorIs(t, err, service.ErrUnauthorized)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("foreign secret", func(t *testing.T) {
		other, err := jwtx.NewCodec([]byte("another-secret-another-secret-xx"), jwtx.WithClock(clock.Now))
		require.NoError(t, err)
		forged, err := service.NewSessionIssuer(other, 0).Issue("user-1")
		require.NoError(t, err)

		_, err = rotator.Rotate(forged.Refresh.Token)
		require.ErrorIs(t, err, service.ErrUnauthorized)
		require.ErrorIs(t, err, jwtx.ErrInvalidSignature)
	})

	t.Run("expired", func(t *testing.T) {
		clock.Advance(jwtx.RefreshTokenTTL + time.Second)
		_, err := rotator.Rotate(pair.Refresh.Token)
		require.ErrorIs(t, err, service.ErrUnauthorized)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})
}
