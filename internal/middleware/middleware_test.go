package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-database-service/internal/auth"
)

func newProtectedApp(t *testing.T, issuer *auth.TokenIssuer) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/me", RequireAuth(issuer), func(c fiber.Ctx) error {
		claims, ok := Claims(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(claims.Username)
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret-test-secret-test-sec", time.Hour)
	require.NoError(t, err)
	app := newProtectedApp(t, issuer)

	token, err := issuer.Issue(auth.Identity{UserID: 3, Username: "jdoe", Role: auth.DefaultRole})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			if tc.status == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, "jdoe", string(body))
			}
		})
	}
}

// memCounter is an in-memory Counter with a fixed TTL.
type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return redis.NewIntResult(m.counts[key], nil)
}

func (m *memCounter) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (m *memCounter) TTL(ctx context.Context, key string) *redis.DurationCmd {
	return redis.NewDurationResult(30*time.Second, nil)
}

func limitedApp(counter Counter, limit int) *fiber.App {
	app := fiber.New()
	app.Use(NewRateLimiter(counter, "auth", limit, 60).Handler())
	app.Get("/", func(c fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestRateLimiter(t *testing.T) {
	t.Run("blocks after the limit", func(t *testing.T) {
		app := limitedApp(&memCounter{}, 2)

		for i := 0; i < 2; i++ {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
		}

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
		assert.Equal(t, "30", resp.Header.Get("X-RateLimit-Reset"))
	})

	t.Run("fails open on redis errors", func(t *testing.T) {
		app := limitedApp(&memCounter{err: errors.New("connection refused")}, 1)

		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})

	t.Run("disabled without redis", func(t *testing.T) {
		app := limitedApp(nil, 1)

		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})
}
