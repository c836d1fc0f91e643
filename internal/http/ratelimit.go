package http

import (
	"sync"
	"sync/atomic"
	"time"
)

// rateLimiter is an in-memory fixed-window limiter keyed by client IP.
// Only mutating requests pass through it; reads are unmetered.
type rateLimiter struct {
	mu           sync.Mutex
	windows      map[string]*requestWindow
	limit        int
	window       time.Duration
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type requestWindow struct {
	startedAt time.Time
	count     int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		windows:     make(map[string]*requestWindow),
		limit:       limit,
		window:      window,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropStale()
		case <-rl.stopCleanup:
			return
		}
	}
}

// dropStale removes windows idle for ten times the window length.
func (rl *rateLimiter) dropStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * rl.window)
	for ip, w := range rl.windows {
		if w.startedAt.Before(cutoff) {
			delete(rl.windows, ip)
		}
	}
}

// stop shuts down the cleanup goroutine.
func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

// allow reports whether another request from the client fits in the
// current window, counting the hit against the metrics when it does not.
func (rl *rateLimiter) allow(clientIP string, metrics *securityMetrics) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[clientIP]
	if !ok || now.Sub(w.startedAt) > rl.window {
		rl.windows[clientIP] = &requestWindow{startedAt: now, count: 1}
		return true
	}

	w.count++
	if w.count > rl.limit {
		if metrics != nil {
			atomic.AddInt64(&metrics.rateLimitHits, 1)
		}
		return false
	}
	return true
}
