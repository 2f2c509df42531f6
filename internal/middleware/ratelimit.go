package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/monitoring"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"
)

const (
	MsgRateLimited = "Too many attempts. Please wait a minute and try again"

	// limiterIdle is how long a client may be silent before it is forgotten.
	limiterIdle     = 10 * time.Minute
	cleanupSchedule = "@every 10m"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

func NewRateLimiter(requestsPerMinute int, burst int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	if burst <= 0 {
		burst = requestsPerMinute
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow spends one token for key and reports the tokens left.
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
		monitoring.SetLimiterClients(len(rl.visitors))
	}
	v.lastSeen = now

	allowed := v.limiter.AllowN(now, 1)
	remaining := int(v.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

// Cleanup forgets clients idle for longer than limiterIdle.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-limiterIdle)
	removed := 0
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
			removed++
		}
	}
	monitoring.SetLimiterClients(len(rl.visitors))
	return removed
}

func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Schedule registers the periodic cleanup on c.
func (rl *RateLimiter) Schedule(c *cron.Cron) error {
	_, err := c.AddFunc(cleanupSchedule, func() { rl.Cleanup() })
	return err
}

// RateLimit middleware. Rejected form posts are sent back to the form with a
// notification; JSON callers get a 429.
func RateLimit(rl *RateLimiter, cookies *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.Allow(c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(rl.now().Add(time.Minute).Unix(), 10))

		if allowed {
			c.Next()
			return
		}

		monitoring.RecordRateLimited()
		if isAPI(c) || c.Request.Method == http.MethodGet {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse(MsgRateLimited))
			return
		}
		cookies.Error(c, MsgRateLimited)
		c.Redirect(http.StatusSeeOther, c.Request.URL.RequestURI())
		c.Abort()
	}
}
