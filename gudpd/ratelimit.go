package gudpd

import (
	"sync"
	"time"
)

// limiter is a fixed-window per-client rate limiter. Each client gets a
// token bucket refilled at the start of every window; stale clients are
// dropped by cleanup.
type limiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	rate    int
	window  time.Duration
}

type clientWindow struct {
	tokens    int
	lastReset time.Time
}

func newLimiter(rate int, window time.Duration) *limiter {
	return &limiter{
		clients: make(map[string]*clientWindow),
		rate:    rate,
		window:  window,
	}
}

// allow consumes one token for the client, reporting whether the request
// is within limits.
func (l *limiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.clients[client]
	if !exists || now.Sub(w.lastReset) >= l.window {
		l.clients[client] = &clientWindow{tokens: l.rate - 1, lastReset: now}
		return true
	}

	if w.tokens > 0 {
		w.tokens--
		return true
	}
	return false
}

// cleanup removes clients idle for more than two windows.
func (l *limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window * 2)
	for client, w := range l.clients {
		if w.lastReset.Before(cutoff) {
			delete(l.clients, client)
		}
	}
}
