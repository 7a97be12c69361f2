package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

// RefreshCookieName is the cookie that carries the refresh token.
const RefreshCookieName = "refreshToken"

// Client talks to one sessiond instance and holds one user session: the
// access token in memory and the refresh token in the cookie jar.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu          sync.RWMutex
	accessToken string
}

// NewClient returns a Client with its own cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout: 10 * time.Second,
		Jar:     jar,
	}), nil
}

// NewClientWithHTTP uses hc as is. hc needs a cookie jar for Refresh to work.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: hc,
	}
}

// AccessToken returns the current access token, empty before Login.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken replaces the in-memory access token.
func (c *Client) SetAccessToken(tok string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = tok
}

// Login authenticates and starts a session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/login", LoginRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	c.SetAccessToken(out.AccessToken)
	return &out.User, nil
}

// Refresh trades the refresh cookie for a new access token.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/refresh", nil, "")
	if err != nil {
		return "", err
	}

	var out RefreshResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}

	c.SetAccessToken(out.AccessToken)
	return out.AccessToken, nil
}

// Logout asks the server to clear the refresh cookie and forgets the access
// token. Tokens already handed out stay valid until they expire.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/logout", nil, "")
	if err != nil {
		return err
	}
	if err := decodeJSON(resp, nil, http.StatusOK); err != nil {
		return err
	}

	c.SetAccessToken("")
	return nil
}

// Me returns the user the access token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	tok := c.AccessToken()
	if tok == "" {
		return nil, ErrNotLoggedIn
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/users-me", nil, tok)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Register creates a user. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users", req, "")
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
