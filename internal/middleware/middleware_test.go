package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/policy"
)

type fakeAuth map[string]*policy.Identity

func (f fakeAuth) Authenticate(_ context.Context, raw string) *policy.Identity { return f[raw] }

func whoami(c echo.Context) error {
	if ident := CurrentIdentity(c); ident != nil {
		return c.String(http.StatusOK, ident.ID)
	}
	return c.String(http.StatusOK, "anonymous")
}

func TestIdentityMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(Identity(fakeAuth{"good": {ID: "u1", Role: "user"}}))
	e.GET("/", whoami)

	cases := map[string]string{
		"":              "anonymous",
		"Bearer good":   "u1",
		"bearer good":   "u1",
		"Bearer bad":    "anonymous",
		"Basic dXNlcjo": "anonymous",
		"Bearer":        "anonymous",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, header)
		assert.Equal(t, want, rec.Body.String(), header)
	}
}

func limitedServer(cfg config.RateLimitConfig, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	return e
}

func hit(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func testRateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
}

func TestTokenBucketRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	e := limitedServer(testRateConfig(), rdb)

	assert.Equal(t, http.StatusNoContent, hit(e).Code)
	second := hit(e)
	assert.Equal(t, http.StatusNoContent, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	blocked := hit(e)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), "RATE_LIMITED")
	assert.True(t, mr.Exists("rl:ip:10.0.0.1"))
}

func TestTokenBucketRedisFailureAllows(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cfg := testRateConfig()
	cfg.Capacity = 1
	e := limitedServer(cfg, rdb)

	mr.Close()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, hit(e).Code)
	}
}

func TestTokenBucketLocalFallback(t *testing.T) {
	e := limitedServer(testRateConfig(), nil)

	require.Equal(t, http.StatusNoContent, hit(e).Code)
	require.Equal(t, http.StatusNoContent, hit(e).Code)
	blocked := hit(e)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
}

func TestTokenBucketDisabled(t *testing.T) {
	cfg := testRateConfig()
	cfg.Enabled = false
	cfg.Capacity = 1
	e := limitedServer(cfg, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, hit(e).Code)
	}
}

func TestBuildRateKeyUsesIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/operations", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	cfg := testRateConfig()
	cfg.KeyStrategy = "ip_user"

	assert.Equal(t, "rl:ip:10.0.0.9:user:anon", buildRateKey(cfg, c))
	c.Set(userIDKey, "u42")
	assert.Equal(t, "rl:ip:10.0.0.9:user:u42", buildRateKey(cfg, c))
}
