package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := time.Now()
	b := New("currency", 2, time.Minute)
	b.now = func() time.Time { return clock }

	failing := func(context.Context) error { return errors.New("upstream down") }
	ok := func(context.Context) error { return nil }

	assert.Error(t, b.Execute(ctx, failing))
	assert.Equal(t, StateClosed, b.State())
	assert.Error(t, b.Execute(ctx, failing))
	assert.Equal(t, StateOpen, b.State())

	calls := 0
	err := b.Execute(ctx, func(context.Context) error { calls++; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.Zero(t, calls)

	clock = clock.Add(2 * time.Minute)
	assert.NoError(t, b.Execute(ctx, ok))
	assert.Equal(t, StateHalfOpen, b.State())
	assert.NoError(t, b.Execute(ctx, ok))
	assert.NoError(t, b.Execute(ctx, ok))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	clock := time.Now()
	b := New("chat", 1, time.Second)
	b.now = func() time.Time { return clock }

	_ = b.Execute(ctx, func(context.Context) error { return errors.New("x") })
	assert.Equal(t, StateOpen, b.State())

	clock = clock.Add(2 * time.Second)
	_ = b.Execute(ctx, func(context.Context) error { return errors.New("still down") })
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerIgnoresCallerCancellation(t *testing.T) {
	b := New("chat", 1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, b.State())
}
