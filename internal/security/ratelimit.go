package security

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps requests per client IP using a fixed window: each IP
// gets rate requests per window, and the allowance refills in full when
// the window elapses.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
}

type bucket struct {
	remaining int
	resetAt   time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per window.
// A background goroutine drops idle IPs so the map stays bounded.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
	}
	go rl.evictIdle()
	return rl
}

// Allow reports whether a request from ip fits in its current window
func (rl *RateLimiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok || now.After(b.resetAt) {
		b = &bucket{remaining: rl.rate, resetAt: now.Add(rl.window)}
		rl.buckets[ip] = b
	}

	if b.remaining == 0 {
		return false
	}
	b.remaining--
	return true
}

// evictIdle periodically removes buckets whose window has long passed
func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for ip, b := range rl.buckets {
			if now.Sub(b.resetAt) > rl.window {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetClientIP extracts the client IP, trusting proxy headers when
// present. X-Forwarded-For may carry a chain; the first hop is the
// client.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			forwarded = forwarded[:idx]
		}
		return strings.TrimSpace(forwarded)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
