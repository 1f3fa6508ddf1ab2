package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a fixed-window per-IP limiter. It guards the upload and
// generate endpoints, which are the expensive ones (parsing, model calls).
type RateLimiter struct {
	mu       sync.Mutex
	counts   map[string]*window
	limit    int
	interval time.Duration
}

type window struct {
	count    int
	lastSeen time.Time
}

func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		counts:   make(map[string]*window),
		limit:    limit,
		interval: interval,
	}

	// Drop idle entries periodically
	go func() {
		for {
			time.Sleep(interval)
			rl.mu.Lock()
			for ip, v := range rl.counts {
				if time.Since(v.lastSeen) > interval {
					delete(rl.counts, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()

	return rl
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr

		rl.mu.Lock()
		v, exists := rl.counts[ip]
		if !exists || time.Since(v.lastSeen) > rl.interval {
			rl.counts[ip] = &window{count: 1, lastSeen: time.Now()}
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}

		v.count++
		v.lastSeen = time.Now()
		count := v.count
		rl.mu.Unlock()

		if count > rl.limit {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
