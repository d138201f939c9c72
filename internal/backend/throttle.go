package backend

import (
	"sync"
	"time"
)

// throttle enforces a minimum spacing between successive fetches so a burst
// of wakeups cannot hammer the underlying source.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

func (t *throttle) wait() {
	if t == nil || t.interval <= 0 {
		return
	}
	for {
		t.mu.Lock()
		remaining := time.Until(t.next)
		if remaining <= 0 {
			t.next = time.Now().Add(t.interval)
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
		if remaining > t.interval {
			remaining = t.interval
		}
		time.Sleep(remaining)
	}
}
