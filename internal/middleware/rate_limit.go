package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/constants"
	"github.com/taskhive/taskhive/pkg/logger"
	"github.com/taskhive/taskhive/pkg/redis"
	"go.uber.org/zap"
)

// localLimiter is the in-process fallback used when Redis is disabled. It
// keeps a sliding window of request timestamps per client IP.
type localLimiter struct {
	tokens     map[string][]time.Time
	maxRequest int
	duration   time.Duration
	mu         sync.Mutex
}

func newLocalLimiter(maxRequest int, duration time.Duration) *localLimiter {
	return &localLimiter{
		tokens:     make(map[string][]time.Time),
		maxRequest: maxRequest,
		duration:   duration,
	}
}

func (rl *localLimiter) cleanup(now time.Time) {
	for ip, tokens := range rl.tokens {
		var valid []time.Time
		for _, t := range tokens {
			if now.Sub(t) <= rl.duration {
				valid = append(valid, t)
			}
		}
		if len(valid) > 0 {
			rl.tokens[ip] = valid
		} else {
			delete(rl.tokens, ip)
		}
	}
}

func (rl *localLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanup(now)

	tokens := rl.tokens[ip]
	if len(tokens) >= rl.maxRequest {
		return false
	}

	rl.tokens[ip] = append(tokens, now)
	return true
}

// AuthRateLimit caps attempts per client IP on the public auth endpoints.
// With Redis enabled the counter is shared across instances; otherwise the
// in-process limiter stands in.
func AuthRateLimit(client *redis.Client, maxRequest int, duration time.Duration) gin.HandlerFunc {
	local := newLocalLimiter(maxRequest, duration)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		var allowed bool
		if client.IsEnabled() {
			key := constants.RateLimitKeyPrefix + ip
			count, err := client.IncrWindow(c.Request.Context(), key, duration)
			if err != nil {
				// Redis trouble must not lock users out.
				logger.GetLogger().Warn("Rate limit counter unavailable, allowing request",
					zap.String("client_ip", ip),
					zap.Error(err))
				allowed = true
			} else {
				allowed = count <= int64(maxRequest)
			}
		} else {
			allowed = local.allow(ip, time.Now())
		}

		if !allowed {
			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusTooManyRequests, constants.BuildErrorResponse(constants.MsgTooManyReqs, nil))
			c.Abort()
			return
		}

		c.Next()
	}
}
