// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// clientWindow holds the recent request times for one client IP.
type clientWindow struct {
	mu   sync.Mutex
	seen []time.Time
}

// prune drops timestamps older than the cutoff and reports how many
// remain.
func (c *clientWindow) prune(cutoff time.Time) int {
	kept := c.seen[:0]
	for _, ts := range c.seen {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	c.seen = kept
	return len(kept)
}

// RateLimiter applies a sliding-window request limit per client IP. It
// guards the form endpoints (comments, subscribe, auth) against abusive
// submission loops.
type RateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	stopCh  chan struct{}
}

// NewRateLimiter creates a rate limiter allowing limit requests per
// window and starts a background sweep of idle clients.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop terminates the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// sweep periodically removes clients with no requests inside the window.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cw := range rl.clients {
		cw.mu.Lock()
		n := cw.prune(cutoff)
		cw.mu.Unlock()
		if n == 0 {
			delete(rl.clients, key)
		}
	}
}

// entry returns the window for a key, creating it on first sight.
func (rl *RateLimiter) entry(key string) *clientWindow {
	rl.mu.RLock()
	cw := rl.clients[key]
	rl.mu.RUnlock()
	if cw != nil {
		return cw
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if cw = rl.clients[key]; cw == nil {
		cw = &clientWindow{}
		rl.clients[key] = cw
	}
	return cw
}

// allow records a request for the key and reports whether it is within
// the limit.
func (rl *RateLimiter) allow(key string) bool {
	cw := rl.entry(key)
	now := time.Now()

	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.prune(now.Add(-rl.window)) >= rl.limit {
		return false
	}
	cw.seen = append(cw.seen, now)
	return true
}

// Middleware rejects requests over the per-IP limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the client address, honoring the proxy headers the
// reverse proxy in front of the blog sets.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the original client.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
