package ratelimit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/logger"
)

// DefaultRequestsPerMinute is used for providers without an explicit
// rate limit configuration.
const DefaultRequestsPerMinute = 10

// Limiter defines the interface for acquiring a rate-limit token for a
// named provider
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Acquire blocks until a token is available for the provider or
	// the context is canceled
	Acquire(ctx context.Context, provider string) error
}

// bucket is a token bucket refilled at capacity/60 tokens per second.
// All read-modify-write of the token count happens under mu; a caller
// that must wait holds the lock for the duration of the wait, so two
// concurrent acquirers can never both proceed on the same fractional
// token.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	tokens   float64
	last     time.Time
	clock    adapter.Clock
}

func newBucket(requestsPerMinute int, clock adapter.Clock) *bucket {
	return &bucket{
		capacity: float64(requestsPerMinute),
		tokens:   float64(requestsPerMinute),
		last:     clock.Now(),
		clock:    clock,
	}
}

func (b *bucket) acquire(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	elapsed := now.Sub(b.last).Seconds()

	// Refill based on time passed since the last acquisition
	b.tokens = min(b.capacity, b.tokens+elapsed*(b.capacity/60))
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return nil
	}

	wait := time.Duration((1 - b.tokens) * 60 / b.capacity * float64(time.Second))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.clock.After(wait):
		b.tokens = 0
		return nil
	}
}

// Manager holds one token bucket per provider name. Bucket state is
// process-local and never persisted.
type Manager struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	limits     map[string]int
	defaultRPM int
	clock      adapter.Clock
}

// NewManager creates a rate limiter manager. limits maps provider names
// to requests-per-minute capacities; unknown providers fall back to
// defaultRPM (or DefaultRequestsPerMinute when defaultRPM is zero).
func NewManager(limits map[string]int, defaultRPM int, clock adapter.Clock) *Manager {
	if defaultRPM <= 0 {
		defaultRPM = DefaultRequestsPerMinute
	}
	return &Manager{
		buckets:    make(map[string]*bucket),
		limits:     limits,
		defaultRPM: defaultRPM,
		clock:      clock,
	}
}

// Acquire blocks until a token is available for the provider.
func (m *Manager) Acquire(ctx context.Context, provider string) error {
	return m.bucketFor(provider).acquire(ctx)
}

func (m *Manager) bucketFor(provider string) *bucket {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b, ok := m.buckets[provider]; ok {
		return b
	}

	rpm := m.defaultRPM
	if limit, ok := m.limits[provider]; ok && limit > 0 {
		rpm = limit
	}
	logger.Debug("creating rate limit bucket",
		zap.String("provider", provider),
		zap.Int("requests_per_minute", rpm),
	)

	b := newBucket(rpm, m.clock)
	m.buckets[provider] = b
	return b
}
