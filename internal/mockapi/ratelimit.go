package mockapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	v1 "rewearadmin/pkg/api/v1"
	"rewearadmin/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// loginBucketScript is a token bucket evaluated atomically in redis.
// ARGV: rate, capacity, now, requested. Returns { allowed, remaining }.
var loginBucketScript = redis.NewScript(`
local tokens_key = KEYS[1]
local ts_key = KEYS[2]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local ttl = math.ceil(capacity / rate * 2)

local last_tokens = tonumber(redis.call("get", tokens_key))
if last_tokens == nil then last_tokens = capacity end

local last_ts = tonumber(redis.call("get", ts_key))
if last_ts == nil then last_ts = now end

local delta = math.max(0, now - last_ts)
local filled = math.min(capacity, last_tokens + (delta * rate))

local allowed = 0
if filled >= requested then
    allowed = 1
    filled = filled - requested
    redis.call("set", tokens_key, filled, "EX", ttl)
    redis.call("set", ts_key, now, "EX", ttl)
end

return { allowed, filled }
`)

var (
	localLimiters  sync.Map // ip -> *rate.Limiter
	localLimiterMu sync.Mutex
)

func localLimiter(ip string, r rate.Limit, burst int) *rate.Limiter {
	if val, ok := localLimiters.Load(ip); ok {
		return val.(*rate.Limiter)
	}
	localLimiterMu.Lock()
	defer localLimiterMu.Unlock()
	if val, ok := localLimiters.Load(ip); ok {
		return val.(*rate.Limiter)
	}
	l := rate.NewLimiter(r, burst)
	localLimiters.Store(ip, l)
	return l
}

// LoginRateLimit throttles login attempts per client IP through redis and
// fails open onto a local limiter when redis is unreachable.
func LoginRateLimit(rdb *redis.Client, perSecond int) gin.HandlerFunc {
	if perSecond <= 0 {
		perSecond = 5
	}
	burst := perSecond

	return func(c *gin.Context) {
		ip := c.ClientIP()
		tokensKey := "rewear:mock:ratelimit:login:" + ip + ":tokens"
		tsKey := "rewear:mock:ratelimit:login:" + ip + ":ts"
		now := float64(time.Now().UnixMicro()) / 1e6

		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Millisecond)
		defer cancel()

		result, err := loginBucketScript.Run(ctx, rdb,
			[]string{tokensKey, tsKey},
			float64(perSecond), float64(burst), now, 1,
		).Result()

		if err != nil {
			logger.Warn("login rate limit: redis unavailable, using local fallback",
				zap.Error(err), zap.String("ip", ip))
			if !localLimiter(ip, rate.Limit(perSecond), burst).Allow() {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, v1.ErrorResponse{Message: "too many login attempts"})
				return
			}
			c.Next()
			return
		}

		res, ok := result.([]any)
		if !ok || len(res) != 2 {
			logger.Error("login rate limit: unexpected script result", zap.Any("result", result))
			c.Next() // fail open on protocol error
			return
		}

		if allowed, _ := res[0].(int64); allowed != 1 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, v1.ErrorResponse{Message: "too many login attempts"})
			return
		}
		c.Next()
	}
}
