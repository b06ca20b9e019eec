package ratelimit

import (
	"sync"
	"time"

	"StockLens/pkg/clock"
)

// Limiter admits at most ceiling events per key inside any trailing window
// of the configured width. Instants older than the window are pruned on
// every call.
type Limiter struct {
	mu      sync.Mutex
	m       map[string][]time.Time
	width   time.Duration
	ceiling int
	clock   clock.Clock
}

func New(width time.Duration, ceiling int, c clock.Clock) *Limiter {
	if c == nil {
		c = clock.Real{}
	}
	return &Limiter{
		m:       make(map[string][]time.Time),
		width:   width,
		ceiling: ceiling,
		clock:   c,
	}
}

// Allow records an event for key and returns true when the window still had
// room. A refused event is not recorded.
func (l *Limiter) Allow(key string) bool {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	hits := l.prune(key, now)
	if len(hits) >= l.ceiling {
		return false
	}
	l.m[key] = append(hits, now)
	return true
}

// Count returns the number of events recorded for key inside the window.
func (l *Limiter) Count(key string) int {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(key, now))
}

func (l *Limiter) prune(key string, now time.Time) []time.Time {
	hits := l.m[key]
	cutoff := now.Add(-l.width)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	hits = hits[i:]
	if len(hits) == 0 {
		delete(l.m, key)
		return nil
	}
	l.m[key] = hits
	return hits
}
