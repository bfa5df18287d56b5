// Package breaker guards calls to external collaborators with a circuit breaker.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tair/nutribakery/pkg/logger"
)

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

var ErrOpen = errors.New("circuit breaker is open")

// Breaker opens after maxFailures consecutive failures, waits openTimeout,
// then lets probes through and closes after halfOpenSuccesses successes.
type Breaker struct {
	name              string
	maxFailures       int
	openTimeout       time.Duration
	halfOpenSuccesses int

	mu              sync.Mutex
	state           State
	failures        int
	successes       int
	lastStateChange time.Time
	now             func() time.Time
}

func New(name string, maxFailures int, openTimeout time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	return &Breaker{
		name:              name,
		maxFailures:       maxFailures,
		openTimeout:       openTimeout,
		halfOpenSuccesses: 3,
		state:             StateClosed,
		lastStateChange:   time.Now(),
		now:               time.Now,
	}
}

// Execute runs fn unless the circuit is open. Context cancellation by the
// caller is not counted as a failure.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if !b.allow() {
		logger.Warn(ctx).Str("circuit", b.name).Msg("Circuit breaker is open, call rejected")
		return fmt.Errorf("%s: %w", b.name, ErrOpen)
	}

	err := fn(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case err == nil:
		b.onSuccess()
	case ctx.Err() != nil:
	default:
		b.onFailure()
	}
	return err
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.lastStateChange) > b.openTimeout {
		b.transition(StateHalfOpen)
	}
	return b.state != StateOpen
}

func (b *Breaker) onFailure() {
	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.maxFailures {
		b.transition(StateOpen)
	}
}

func (b *Breaker) onSuccess() {
	switch b.state {
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.halfOpenSuccesses {
			b.transition(StateClosed)
		}
	case StateClosed:
		b.failures = 0
	}
}

func (b *Breaker) transition(to State) {
	logger.Logger.Info().
		Str("circuit", b.name).
		Str("from", string(b.state)).
		Str("to", string(to)).
		Int("failures", b.failures).
		Msg("Circuit breaker state change")

	b.state = to
	b.lastStateChange = b.now()
	b.successes = 0
	if to == StateClosed {
		b.failures = 0
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
