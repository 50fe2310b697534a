package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"saturnalia/pkg/logger"
)

// RateLimiter is a per-IP token bucket. An exhausted bucket blocks the
// caller for a full window before refilling.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
}

type visitor struct {
	tokens     int
	lastSeen   time.Time
	blocked    bool
	blockUntil time.Time
}

func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
	}

	go rl.cleanup()

	return rl
}

// Limit rejects callers that exhausted their bucket with 429. Applied to the
// credential endpoints, where unthrottled retries are a brute-force surface.
func (rl *RateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()

		allowed, resetAt := rl.allow(ip)
		if !allowed {
			logger.Warn("Rate limit exceeded for %s on %s", ip, c.Path())
			return echo.NewHTTPError(http.StatusTooManyRequests,
				map[string]interface{}{
					"message":     "Too many attempts, slow down",
					"retry_after": int(time.Until(resetAt).Seconds()),
				})
		}

		return next(c)
	}
}

func (rl *RateLimiter) allow(ip string) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	v, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, lastSeen: now}
		return true, time.Time{}
	}

	if v.blocked {
		if now.Before(v.blockUntil) {
			return false, v.blockUntil
		}
		v.blocked = false
		v.tokens = rl.rate
	}

	// Refill proportionally to the time since the last request.
	elapsed := now.Sub(v.lastSeen)
	v.tokens += int(elapsed * time.Duration(rl.rate) / rl.window)
	if v.tokens > rl.rate {
		v.tokens = rl.rate
	}
	v.lastSeen = now

	if v.tokens <= 0 {
		v.blocked = true
		v.blockUntil = now.Add(rl.window)
		return false, v.blockUntil
	}

	v.tokens--
	return true, time.Time{}
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(time.Hour)

		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastSeen) > 2*time.Hour {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
