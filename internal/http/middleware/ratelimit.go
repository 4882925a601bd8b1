package middleware

import (
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int64
}

// LocalLimiter is an in-process fixed-window counter used when Redis is not configured.
type LocalLimiter struct {
	mu      sync.Mutex
	size    time.Duration
	windows map[string]*window
}

func NewLocalLimiter(size time.Duration) *LocalLimiter {
	return &LocalLimiter{
		size:    size,
		windows: make(map[string]*window),
	}
}

// Hit counts one request for key at now and returns the count in the current window.
func (l *LocalLimiter) Hit(key string, now time.Time) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.size {
		if len(l.windows) > 10000 {
			l.evict(now)
		}
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++
	return w.count
}

func (l *LocalLimiter) evict(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.start) >= l.size {
			delete(l.windows, k)
		}
	}
}
