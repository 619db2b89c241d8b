package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter is per-IP fixed-window rate limiting middleware. Each IP
// gets a counter that resets when its window elapses; state is process
// local, so every instance enforces its own budget.
type RateLimiter struct {
	mu         sync.Mutex
	windows    map[string]*window
	limit      int
	interval   time.Duration
	maxTracked int // max tracked IPs (prevents memory exhaustion)
}

type window struct {
	count    int
	start    time.Time
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per interval
// per client IP.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:    make(map[string]*window),
		limit:      limit,
		interval:   interval,
		maxTracked: 100000, // 100k IPs max
	}
}

// Handler returns HTTP middleware that enforces per-IP rate limiting.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := realIP(r)

		remaining, retryAfter, allowed := rl.Allow(ip)

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", math.Ceil(retryAfter.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow records a request from key and reports whether it fits in the
// current window. retryAfter is the time until the window resets and is
// meaningful only when allowed is false.
func (rl *RateLimiter) Allow(key string) (remaining int, retryAfter time.Duration, allowed bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, exists := rl.windows[key]
	if !exists {
		// Prevent memory exhaustion: cap the number of tracked IPs
		if len(rl.windows) >= rl.maxTracked {
			return 0, rl.interval, false // reject when at capacity
		}
		rl.windows[key] = &window{count: 1, start: now, lastSeen: now}
		return rl.limit - 1, 0, true
	}

	w.lastSeen = now

	// Window elapsed: start a fresh one.
	if now.Sub(w.start) >= rl.interval {
		w.count = 1
		w.start = now
		return rl.limit - 1, 0, true
	}

	if w.count >= rl.limit {
		return 0, rl.interval - now.Sub(w.start), false
	}

	w.count++
	return rl.limit - w.count, 0, true
}

// StartCleanup spawns a goroutine that removes stale windows every interval.
// A window is stale if its IP has not been seen for longer than maxIdle.
// Returns a cancel function that stops the cleanup goroutine.
func (rl *RateLimiter) StartCleanup(interval, maxIdle time.Duration) func() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.cleanup(maxIdle)
			}
		}
	}()
	return cancel
}

// cleanup removes windows that have been idle longer than maxIdle.
func (rl *RateLimiter) cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	for key, w := range rl.windows {
		if w.lastSeen.Before(cutoff) {
			delete(rl.windows, key)
		}
	}
}

// Len returns the number of tracked IP windows (for metrics and testing).
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// realIP extracts the client IP from RemoteAddr.
// Proxy headers (X-Forwarded-For, X-Real-Ip) are NOT trusted because
// they can be spoofed by attackers to bypass rate limiting.
func realIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
