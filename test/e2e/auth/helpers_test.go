//go:build e2e

package auth_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/sessiond/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for sessiond end-to-end tests.
 * This includes container setup, user seeding, and assertions.
 */

const (
	testImageName = "sessiond-test:latest"

	testSecret   = "e2e-secret-e2e-secret-e2e-secret-0123"
	testName     = "Alice"
	testEmail    = "alice@example.com"
	testPassword = "secret1"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building sessiond Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up sessiond Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/sessiond/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupContainer starts sessiond with env layered over the test defaults and
// returns the base URL. The container is terminated when the test ends.
func setupContainer(t *testing.T, env map[string]string) string {
	t.Helper()
	ctx := context.Background()

	vars := map[string]string{
		"SECRET_KEY":    testSecret,
		"DATABASE_FILE": "/tmp/auth.db",
		"COOKIE_SECURE": "false", // the cookie jar will not send Secure cookies over http
		"ENV":           "test",
		"LOG_LEVEL":     "info",
		"LOG_FORMAT":    "json",
	}
	for k, v := range env {
		vars[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"4000/tcp"},
			Env:          vars,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("4000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "4000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// newClient returns an SDK client with its own cookie jar.
func newClient(t *testing.T, baseURL string) *authsdk.Client {
	t.Helper()
	c, err := authsdk.NewClient(baseURL)
	require.NoError(t, err)
	return c
}

// seedUser registers the default test user through the public API.
func seedUser(t *testing.T, c *authsdk.Client) *authsdk.User {
	t.Helper()

	u, err := c.Register(t.Context(), authsdk.RegisterRequest{
		Name:     testName,
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err, "Register should succeed")
	require.NotEmpty(t, u.ID)
	return u
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertStatus checks err is an *authsdk.APIError with the given status and
// message.
func assertStatus(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.StatusCode)
	if msg != "" {
		require.Equal(t, msg, apiErr.Message)
	}
}
