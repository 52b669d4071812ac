package schedulers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/nzai/nseq/symbols"
)

// State live update session state
type State int32

const (
	// Idle not started or cancelled
	Idle State = iota
	// Fetching a fetch is in flight
	Fetching
	// Displaying the last fetch was rendered
	Displaying
	// Stopped updates paused after repeated failures
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Displaying:
		return "displaying"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Session live updates of one symbol, only the scheduler changes it
type Session struct {
	ID     uuid.UUID
	Symbol symbols.Symbol

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}

	state    atomic.Int32
	failures atomic.Int32

	mutex sync.Mutex
	err   error
}

func newSession(symbol symbols.Symbol) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	session := &Session{
		ID:     uuid.New(),
		Symbol: symbol,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	session.setState(Fetching)

	return session
}

// Cancel stop the session, further calls do nothing
func (s *Session) Cancel() bool {
	cancelled := false
	s.once.Do(func() {
		cancelled = true

		s.mutex.Lock()
		if s.err == nil {
			s.err = context.Canceled
			s.setState(Idle)
		}
		s.mutex.Unlock()

		s.cancel()
	})

	return cancelled
}

// Done closed once the session goroutine exited
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// State current state
func (s *Session) State() State {
	return State(s.state.Load())
}

// Failures consecutive failures so far
func (s *Session) Failures() int {
	return int(s.failures.Load())
}

// Err nil while running, ErrTooManyConsecutiveFailures once paused, context.Canceled once cancelled
func (s *Session) Err() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.err
}

func (s *Session) setState(state State) {
	s.state.Store(int32(state))
}

func (s *Session) begin() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.err == nil {
		s.setState(Fetching)
	}
}

func (s *Session) fail() int {
	return int(s.failures.Add(1))
}

func (s *Session) succeed() {
	s.failures.Store(0)
	s.setState(Displaying)
}

func (s *Session) stop(err error) {
	s.mutex.Lock()
	s.err = err
	s.setState(Stopped)
	s.mutex.Unlock()

	s.once.Do(s.cancel)
}
