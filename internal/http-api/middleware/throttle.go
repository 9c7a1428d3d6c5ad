package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 15 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginThrottle hands out one token bucket per client IP
type LoginThrottle struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewLoginThrottle allows perMinute attempts per IP with the given burst
func NewLoginThrottle(perMinute, burst int) *LoginThrottle {
	return &LoginThrottle{
		limiters: make(map[string]*ipLimiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow consumes one attempt for ip
func (t *LoginThrottle) Allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for key, l := range t.limiters {
		if now.Sub(l.lastSeen) > limiterIdleTTL {
			delete(t.limiters, key)
		}
	}

	l, ok := t.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[ip] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

// Middleware hands over-limit attempts to onLimited, which renders the 429 response
func (t *LoginThrottle) Middleware(onLimited gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.Allow(c.ClientIP()) {
			logrus.WithField("ip", c.ClientIP()).Warn("login throttled")
			onLimited(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
