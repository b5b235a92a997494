package ratelimit_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/token-resolver/internal/logger"
	"github.com/feral-file/token-resolver/internal/mocks"
	"github.com/feral-file/token-resolver/internal/ratelimit"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestManager_Acquire_TokensAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()

	m := ratelimit.NewManager(map[string]int{"coingecko": 10}, 0, clock)

	// A fresh bucket starts full; the first acquisitions never wait.
	ctx := context.Background()
	for range 10 {
		assert.NoError(t, m.Acquire(ctx, "coingecko"))
	}
}

func TestManager_Acquire_BlocksWhenExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()

	m := ratelimit.NewManager(map[string]int{"etherscan": 2}, 0, clock)

	ctx := context.Background()
	assert.NoError(t, m.Acquire(ctx, "etherscan"))
	assert.NoError(t, m.Acquire(ctx, "etherscan"))

	// Bucket is empty and no time has passed: one full token costs
	// 60/capacity = 30 seconds of refill.
	clock.EXPECT().
		After(30*time.Second).
		DoAndReturn(func(d time.Duration) <-chan time.Time {
			ch := make(chan time.Time, 1)
			ch <- now.Add(d)
			return ch
		})

	assert.NoError(t, m.Acquire(ctx, "etherscan"))
}

func TestManager_Acquire_RefillOverTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := start
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return current }).AnyTimes()

	m := ratelimit.NewManager(map[string]int{"dexscreener": 60}, 0, clock)

	ctx := context.Background()
	for range 60 {
		assert.NoError(t, m.Acquire(ctx, "dexscreener"))
	}

	// 60 rpm refills one token per second; after two seconds two more
	// acquisitions pass without waiting.
	current = start.Add(2 * time.Second)
	assert.NoError(t, m.Acquire(ctx, "dexscreener"))
	assert.NoError(t, m.Acquire(ctx, "dexscreener"))
}

func TestManager_Acquire_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()
	clock.EXPECT().
		After(gomock.Any()).
		Return(make(chan time.Time)).
		AnyTimes()

	m := ratelimit.NewManager(map[string]int{"oneinch": 1}, 0, clock)

	ctx, cancel := context.WithCancel(context.Background())
	assert.NoError(t, m.Acquire(ctx, "oneinch"))

	cancel()
	err := m.Acquire(ctx, "oneinch")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManager_Acquire_DefaultRPMForUnknownProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()

	m := ratelimit.NewManager(nil, 3, clock)

	ctx := context.Background()
	for range 3 {
		assert.NoError(t, m.Acquire(ctx, "unconfigured"))
	}

	clock.EXPECT().
		After(20*time.Second).
		DoAndReturn(func(d time.Duration) <-chan time.Time {
			ch := make(chan time.Time, 1)
			ch <- now.Add(d)
			return ch
		})
	assert.NoError(t, m.Acquire(ctx, "unconfigured"))
}

func TestManager_Acquire_IndependentBuckets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()

	m := ratelimit.NewManager(map[string]int{"a": 1, "b": 1}, 0, clock)

	// Draining one provider does not touch the other.
	ctx := context.Background()
	assert.NoError(t, m.Acquire(ctx, "a"))
	assert.NoError(t, m.Acquire(ctx, "b"))
}
