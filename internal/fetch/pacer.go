package fetch

import (
	"sync"
	"time"
)

// Pacer enforces a fixed interval between outbound requests so third-party
// endpoints are not hammered. It is pacing only, not a retry mechanism.
type Pacer struct {
	mu            sync.Mutex
	nextAllowedAt time.Time
	interval      time.Duration
}

func NewPacer(interval time.Duration) *Pacer {
	if interval < 0 {
		interval = 0
	}
	return &Pacer{interval: interval}
}

// Wait blocks the calling goroutine until the next request slot.
func (p *Pacer) Wait() {
	if p.interval == 0 {
		return
	}

	p.mu.Lock()
	now := time.Now()
	scheduled := now
	if p.nextAllowedAt.After(now) {
		scheduled = p.nextAllowedAt
	}
	p.nextAllowedAt = scheduled.Add(p.interval)
	p.mu.Unlock()

	if sleep := time.Until(scheduled); sleep > 0 {
		time.Sleep(sleep)
	}
}
