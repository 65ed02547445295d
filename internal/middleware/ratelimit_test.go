package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking-admin/internal/config"
)

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/rooms/modal", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/rooms/modal")

	cases := map[string]string{
		"ip":       "rl:ip:10.0.0.1",
		"route":    "rl:route:POST /v1/rooms/modal",
		"ip_route": "rl:ip:10.0.0.1:route:POST /v1/rooms/modal",
		"":         "rl:ip:10.0.0.1:route:POST /v1/rooms/modal",
	}
	for strategy, want := range cases {
		cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}
		assert.Equal(t, want, buildRateKey(cfg, c), strategy)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 0, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(1))
	assert.Equal(t, 2, retryAfterSeconds(1500))
	assert.Equal(t, 0, retryAfterSeconds(-10))
}

func TestParseBucket(t *testing.T) {
	b, ok := parseBucket([]interface{}{int64(1), int64(4), int64(0)})
	require.True(t, ok)
	assert.Equal(t, bucket{allowed: true, remaining: 4}, b)

	_, ok = parseBucket([]interface{}{int64(1), int64(4)})
	assert.False(t, ok)
	_, ok = parseBucket("OK")
	assert.False(t, ok)
}

func TestNewTokenBucket_NilRedisPassesThrough(t *testing.T) {
	e := echo.New()
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	for i := 0; i < 3; i++ {
		assert.NoError(t, mw(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c))
	}
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestNewTokenBucket_BlocksWhenEmpty(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb))
	e.GET("/v1/users", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	var codes []int
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		e.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/v1/users", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.NotEqual(t, "0", last.Header().Get("Retry-After"))
}
