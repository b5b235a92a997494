package breaker

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/logger"
)

// State is the circuit breaker state.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// Defaults applied when the config leaves values unset.
const (
	DefaultFailureThreshold = 5
	DefaultCooldown         = 60 * time.Second
)

// Breaker is a per-provider failure-tripped gate. After
// failureThreshold consecutive failures it opens; once the cooldown
// elapses the next IsOpen check reports not-open exactly once
// (half-open), and the following outcome decides whether the circuit
// closes again or re-opens.
type Breaker struct {
	mu               sync.Mutex
	name             string
	failureThreshold int
	cooldown         time.Duration
	failures         int
	lastFailure      time.Time
	state            State
	clock            adapter.Clock
}

// New creates a closed circuit breaker for one provider.
func New(name string, failureThreshold int, cooldown time.Duration, clock adapter.Clock) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = DefaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Breaker{
		name:             name,
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		state:            StateClosed,
		clock:            clock,
	}
}

// IsOpen reports whether calls must be skipped. In the open state, once
// the cooldown has elapsed, the breaker transparently moves to
// half-open and permits exactly one trial call.
func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.clock.Since(b.lastFailure) > b.cooldown {
			b.state = StateHalfOpen
			logger.Info("circuit breaker half-open", zap.String("provider", b.name))
			return false
		}
		return true
	default:
		return false
	}
}

// RecordSuccess resets the failure count and closes the circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateClosed {
		logger.Info("circuit breaker closed", zap.String("provider", b.name))
	}
	b.failures = 0
	b.state = StateClosed
}

// RecordFailure increments the failure count, stamps the failure time,
// and opens the circuit once the threshold is reached. A failure in
// half-open re-opens immediately.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = b.clock.Now()

	if b.failures >= b.failureThreshold || b.state == StateHalfOpen {
		if b.state != StateOpen {
			logger.Warn("circuit breaker open",
				zap.String("provider", b.name),
				zap.Int("consecutive_failures", b.failures),
			)
		}
		b.state = StateOpen
	}
}

// State returns the current state for observability.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Set holds one breaker per provider name.
type Set struct {
	mu               sync.Mutex
	breakers         map[string]*Breaker
	failureThreshold int
	cooldown         time.Duration
	clock            adapter.Clock
}

// NewSet creates a breaker collection sharing one threshold and cooldown.
func NewSet(failureThreshold int, cooldown time.Duration, clock adapter.Clock) *Set {
	return &Set{
		breakers:         make(map[string]*Breaker),
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		clock:            clock,
	}
}

// For returns the breaker for a provider, creating it on first use.
func (s *Set) For(provider string) *Breaker {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.breakers[provider]; ok {
		return b
	}
	b := New(provider, s.failureThreshold, s.cooldown, s.clock)
	s.breakers[provider] = b
	return b
}
