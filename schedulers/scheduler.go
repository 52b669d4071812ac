package schedulers

import (
	"context"
	"sync"
	"time"

	"github.com/nzai/nseq/constants"
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/renderers"
	"github.com/nzai/nseq/symbols"
	"go.uber.org/zap"
)

// Quoter fetch one quote snapshot
type Quoter interface {
	Quote(context.Context, symbols.Symbol) (*quotes.Snapshot, error)
}

// Visibility report whether the viewer is in the foreground
type Visibility interface {
	Visible() bool
}

// Scheduler keep at most one live update session running
type Scheduler struct {
	quoter     Quoter
	renderer   renderers.Renderer
	visibility Visibility
	interval   time.Duration
	maxFailed  int

	mutex   sync.Mutex
	current *Session
}

// SchedulerOption is a configuration option for the scheduler
type SchedulerOption func(*Scheduler)

// WithInterval sets the refresh interval
func WithInterval(interval time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithMaxFailed sets how many consecutive failures pause updates
func WithMaxFailed(maxFailed int) SchedulerOption {
	return func(s *Scheduler) {
		if maxFailed > 0 {
			s.maxFailed = maxFailed
		}
	}
}

// WithVisibility sets the foreground check
func WithVisibility(visibility Visibility) SchedulerOption {
	return func(s *Scheduler) {
		if visibility != nil {
			s.visibility = visibility
		}
	}
}

// NewScheduler create live update scheduler
func NewScheduler(quoter Quoter, renderer renderers.Renderer, options ...SchedulerOption) *Scheduler {
	scheduler := &Scheduler{
		quoter:     quoter,
		renderer:   renderer,
		visibility: NewFlag(),
		interval:   constants.DefaultRefreshInterval,
		maxFailed:  constants.DefaultMaxFailedAttempts,
	}

	for _, option := range options {
		option(scheduler)
	}

	return scheduler
}

// Track cancel the current session and start live updates for symbol
func (s *Scheduler) Track(symbol symbols.Symbol) *Session {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.current != nil {
		s.current.Cancel()
	}

	session := newSession(symbol)
	s.current = session

	zap.L().Info("live updates start",
		zap.Stringer("session", session.ID),
		zap.Stringer("symbol", symbol),
		zap.Duration("interval", s.interval))

	go s.run(session)

	return session
}

// Current return the current session, nil if none was tracked
func (s *Scheduler) Current() *Session {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.current
}

// Cancel cancel the current session
func (s *Scheduler) Cancel() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.current != nil {
		s.current.Cancel()
	}
}

// Close cancel the current session and wait for it to exit
func (s *Scheduler) Close() {
	session := s.Current()
	if session == nil {
		return
	}

	session.Cancel()
	<-session.Done()
}

func (s *Scheduler) run(session *Session) {
	defer close(session.done)
	defer session.cancel()

	// first fetch runs immediately
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-session.ctx.Done():
			zap.L().Info("live updates cancelled",
				zap.Stringer("session", session.ID),
				zap.Stringer("symbol", session.Symbol))
			return
		case <-timer.C:
		}

		if !s.visibility.Visible() {
			zap.L().Debug("viewer not visible, skip update",
				zap.Stringer("session", session.ID),
				zap.Stringer("symbol", session.Symbol))
			timer.Reset(s.interval)
			continue
		}

		stopped := s.update(session)
		if stopped {
			return
		}

		// next update counts from the moment this one settled
		timer.Reset(s.interval)
	}
}

// update fetch once and render, return true once the session stopped
func (s *Scheduler) update(session *Session) bool {
	session.begin()
	snapshot, err := s.quoter.Quote(session.ctx, session.Symbol)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	// the session was cancelled or replaced while fetching
	if s.current != session || session.ctx.Err() != nil {
		zap.L().Debug("discard stale update",
			zap.Stringer("session", session.ID),
			zap.Stringer("symbol", session.Symbol),
			zap.Error(err))
		return false
	}

	if err != nil {
		failures := session.fail()
		zap.L().Warn("live update failed",
			zap.Error(err),
			zap.Stringer("session", session.ID),
			zap.Stringer("symbol", session.Symbol),
			zap.Int("failures", failures))

		if failures < s.maxFailed {
			return false
		}

		session.stop(constants.ErrTooManyConsecutiveFailures)
		zap.L().Error("too many failed updates, live updates paused",
			zap.Stringer("session", session.ID),
			zap.Stringer("symbol", session.Symbol),
			zap.Int("failures", failures))
		s.renderer.RenderUpdatesPaused()
		return true
	}

	session.succeed()
	s.renderer.RenderQuote(snapshot)
	return false
}
