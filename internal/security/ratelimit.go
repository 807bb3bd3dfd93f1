package security

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a simple token bucket rate limiter keyed by client IP
type RateLimiter struct {
	clients map[string]*client
	mu      sync.Mutex
	rate    int           // requests per window
	window  time.Duration // time window
}

type client struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter allowing rate requests per window
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		rate:    rate,
		window:  window,
	}
	go rl.cleanup()
	return rl
}

// Allow checks whether a request from an IP should be allowed
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, exists := rl.clients[ip]
	if !exists {
		c = &client{tokens: rl.rate, lastRefill: time.Now()}
		rl.clients[ip] = c
	}

	now := time.Now()
	if now.Sub(c.lastRefill) >= rl.window {
		c.tokens = rl.rate
		c.lastRefill = now
	}

	if c.tokens > 0 {
		c.tokens--
		return true
	}
	return false
}

// cleanup removes stale client entries to prevent unbounded growth
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, c := range rl.clients {
			if now.Sub(c.lastRefill) > rl.window*2 {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetClientIP extracts the client IP from the request
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
