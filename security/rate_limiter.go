package security

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type window struct {
	count   int
	startAt time.Time
}

// RateLimiter is a fixed-window per-client request limiter. Like LoginGuard
// it is process-local and injected where needed.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*window
	now     func() time.Time
}

func NewRateLimiter(limit int, win time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  win,
		clients: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow counts one request from the key and reports whether it is within
// the window's budget.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.startAt) >= rl.window {
		rl.clients[key] = &window{count: 1, startAt: now}
		return true
	}
	w.count++
	return w.count <= rl.limit
}

// Middleware limits requests per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
