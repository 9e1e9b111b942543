package middleware

import (
	"net/http"
	"sync"
	"time"

	"calmwave/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds one limiter per client key.
type rateLimiterStore struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	perMin   int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 200
	}
	return &rateLimiterStore{limiters: make(map[string]*limiterEntry), perMin: perMin}
}

// getLimiter returns the limiter for key, creating one if it doesn't exist. Idle entries are swept.
func (s *rateLimiterStore) getLimiter(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.limiters[key]
	if !exists {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[key] = e
		if len(s.limiters) > 10000 {
			for k, v := range s.limiters {
				if now.Sub(v.lastSeen) > 10*time.Minute {
					delete(s.limiters, k)
				}
			}
		}
	}
	e.lastSeen = now
	return e.limiter
}

// RateLimitMiddleware limits requests per client to perMin per minute with a burst of perMin.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	return func(c *gin.Context) {
		key := clientKey(c)
		if !store.getLimiter(key, time.Now()).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("client", key))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{Message: "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}

// clientKey identifies the caller: the session uid when authenticated, otherwise the client IP. Forwarding
// headers only count when the engine trusts the proxy that sent them (gin.Engine.SetTrustedProxies).
func clientKey(c *gin.Context) string {
	if s, ok := utils.SessionFrom(c); ok {
		return "uid:" + s.UID
	}
	return "ip:" + c.ClientIP()
}
