package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker trips after consecutive storage failures so a dead database
// fails imports fast instead of stalling every batch on connection timeouts.
// A nil *CircuitBreaker lets every call through.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	probeLimit       int
	now              func() time.Time
	onChange         func(from, to CircuitState)

	state     CircuitState
	failures  int
	openedAt  time.Time
	inFlight  int
	successes int
}

type Option func(*CircuitBreaker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *CircuitBreaker) { b.now = now }
}

// OnStateChange registers fn to run after every transition, outside the lock.
func OnStateChange(fn func(from, to CircuitState)) Option {
	return func(b *CircuitBreaker) { b.onChange = fn }
}

// NewCircuitBreaker opens after failureThreshold consecutive failures, stays
// open for openTimeout, then admits up to probeLimit trial calls. The circuit
// closes once that many probes succeed.
func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, probeLimit int, opts ...Option) *CircuitBreaker {
	b := &CircuitBreaker{
		failureThreshold: max(failureThreshold, 1),
		openTimeout:      openTimeout,
		probeLimit:       max(probeLimit, 1),
		now:              time.Now,
		state:            CircuitStateClosed,
	}
	if b.openTimeout <= 0 {
		b.openTimeout = DefaultCircuitBreakerConfig().OpenTimeout
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromConfig returns nil when the breaker is disabled.
func FromConfig(cfg CircuitBreakerConfig, opts ...Option) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	cfg = cfg.withDefaults()
	return NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq, opts...)
}

// Execute runs fn if the breaker admits it and records the outcome.
// Context cancellation is not counted as a dependency failure.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if b == nil {
		return fn(ctx)
	}
	if err := b.admit(); err != nil {
		return err
	}

	err := fn(ctx)
	b.settle(err == nil || errors.Is(err, context.Canceled))
	return err
}

// State reports an expired open circuit as half-open even before the next
// call moves it there.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) admit() error {
	b.mu.Lock()
	from := b.state

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.openTimeout {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.enter(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.inFlight >= b.probeLimit {
			b.mu.Unlock()
			b.notify(from, b.state)
			return ErrCircuitOpen
		}
		b.inFlight++
	}

	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
	return nil
}

func (b *CircuitBreaker) settle(ok bool) {
	b.mu.Lock()
	from := b.state

	switch b.state {
	case CircuitStateClosed:
		if ok {
			b.failures = 0
			break
		}
		b.failures++
		if b.failures >= b.failureThreshold {
			b.enter(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if b.inFlight > 0 {
			b.inFlight--
		}
		if !ok {
			b.enter(CircuitStateOpen)
			break
		}
		b.successes++
		if b.successes >= b.probeLimit && b.inFlight == 0 {
			b.enter(CircuitStateClosed)
		}
	case CircuitStateOpen:
		// a call admitted before the trip failed late; restart the wait.
		if !ok {
			b.openedAt = b.now()
		}
	}

	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
}

// enter resets the counters the new state starts from. Callers hold mu.
func (b *CircuitBreaker) enter(state CircuitState) {
	b.state = state
	b.inFlight = 0
	b.successes = 0
	switch state {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}

func (b *CircuitBreaker) notify(from, to CircuitState) {
	if from != to && b.onChange != nil {
		b.onChange(from, to)
	}
}
