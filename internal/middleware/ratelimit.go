package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/config"
)

// takeToken refills the bucket in whole intervals and spends one token.
//
//	KEYS[1]  bucket hash {t = tokens, ts = last refill ms}
//	ARGV     now_ms, capacity, refill, interval_ms, ttl_s
//	returns  {allowed 0|1, tokens left, ms until next token}
var takeToken = redis.NewScript(`
local now, cap, refill, interval, ttl =
  tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4]), tonumber(ARGV[5])

local b = redis.call('HMGET', KEYS[1], 't', 'ts')
local t, ts = tonumber(b[1]), tonumber(b[2])
if not t or not ts then
  t, ts = cap, now
end

local n = math.floor(math.max(0, now - ts) / interval)
if n > 0 then
  t = math.min(cap, t + n * refill)
  ts = ts + n * interval
end

local ok, wait = 0, 0
if t >= 1 then
  ok, t = 1, t - 1
else
  wait = math.max(0, interval - (now - ts))
end

redis.call('HSET', KEYS[1], 't', t, 'ts', ts)
redis.call('EXPIRE', KEYS[1], ttl)
return {ok, t, wait}
`)

// NewTokenBucket limits requests per client address and route.  It is a
// pass-through when disabled or without a Redis client, and lets requests
// through (logging a warning) when Redis fails.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	limit := strconv.Itoa(cfg.Capacity)
	ttl := int64(cfg.TTL / time.Second)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := bucketKey(cfg.Prefix, c)
			res, err := takeToken.Run(c.Request().Context(), rdb, []string{key},
				time.Now().UnixMilli(), cfg.Capacity, cfg.RefillTokens, cfg.RefillInterval.Milliseconds(), ttl,
			).Int64Slice()
			if err != nil || len(res) != 3 {
				log.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))
			if res[0] == 1 {
				return next(c)
			}

			retry := (res[2] + 999) / 1000
			h.Set("Retry-After", strconv.FormatInt(retry, 10))
			rateLimited.WithLabelValues(c.Path()).Inc()
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests", "retryAfter": retry})
		}
	}
}

// bucketKey scopes a bucket to prefix, client address, caller and route.
func bucketKey(prefix string, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return prefix + ":" + c.Request().Method + ":" + c.Path() + ":" + ip + ":" + userID(c)
}
