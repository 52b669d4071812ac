package schedulers

import (
	"sync"
	"time"
)

// Limiter run only the last call after a quiet period
type Limiter struct {
	wait  time.Duration
	mutex sync.Mutex
	timer *time.Timer
}

// NewLimiter create new limiter
func NewLimiter(wait time.Duration) *Limiter {
	return &Limiter{wait: wait}
}

// Do schedule fn, replacing any pending call
func (l *Limiter) Do(fn func()) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.timer != nil {
		l.timer.Stop()
	}

	l.timer = time.AfterFunc(l.wait, fn)
}

// Stop drop the pending call, return false if nothing was pending
func (l *Limiter) Stop() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.timer == nil {
		return false
	}

	stopped := l.timer.Stop()
	l.timer = nil

	return stopped
}
