package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/room-booking-admin/internal/config"
)

// takeToken refills the bucket at KEYS[1] for the time elapsed since its
// last refill, then tries to take one token.
// ARGV: now_ms, capacity, refill_tokens, interval_ms, ttl_seconds.
// Returns {allowed (0|1), tokens left, ms until the next refill}.
var takeToken = redis.NewScript(`
local capacity = tonumber(ARGV[2])
local refill = tonumber(ARGV[3])
local interval = tonumber(ARGV[4])
local now = tonumber(ARGV[1])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1]) or capacity
local last = tonumber(state[2]) or now

if interval > 0 then
	local steps = math.floor(math.max(0, now - last) / interval)
	if steps > 0 then
		tokens = math.min(capacity, tokens + steps * refill)
		last = last + steps * interval
	end
end

local allowed, wait = 0, 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	wait = math.max(0, interval - (now - last))
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'last_refill_ms', last)
redis.call('EXPIRE', KEYS[1], ARGV[5])
return {allowed, tokens, wait}
`)

// bucket is the decoded reply of takeToken.
type bucket struct {
	allowed   bool
	remaining int64
	waitMs    int64
}

func parseBucket(v interface{}) (bucket, bool) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 3 {
		return bucket{}, false
	}
	nums := make([]int64, 3)
	for i, x := range arr {
		n, ok := x.(int64)
		if !ok {
			return bucket{}, false
		}
		nums[i] = n
	}
	return bucket{allowed: nums[0] == 1, remaining: nums[1], waitMs: nums[2]}, true
}

// NewTokenBucket rate limits the admin API per client.  Every request holds
// an entity's engine lock, so one busy client would otherwise stall the
// sessions of everyone else.  Redis errors let the request through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			reply, err := takeToken.Run(c.Request().Context(), rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Result()
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("ratelimit: redis error")
				return next(c)
			}
			b, ok := parseBucket(reply)
			if !ok {
				log.Warn().Str("key", key).Interface("reply", reply).Msg("ratelimit: unexpected script reply")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(b.remaining, 10))
			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}
			if b.allowed {
				return next(c)
			}

			secs := retryAfterSeconds(b.waitMs)
			h.Set("Retry-After", strconv.Itoa(secs))
			log.Debug().Str("key", key).Int64("wait_ms", b.waitMs).Msg("ratelimit: blocked")
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"error":       "too_many_requests",
				"message":     "rate limit exceeded",
				"retry_after": secs,
			})
		}
	}
}

func retryAfterSeconds(ms int64) int {
	if ms <= 0 {
		return 0
	}
	return int(math.Ceil(float64(ms) / 1000.0))
}

// buildRateKey keys the bucket by client IP, by route, or by both
// (the default).
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	route := c.Request().Method + " " + c.Path()

	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		return cfg.Prefix + ":ip:" + ip
	case "route":
		return cfg.Prefix + ":route:" + route
	}
	return cfg.Prefix + ":ip:" + ip + ":route:" + route
}
