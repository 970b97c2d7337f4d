package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllow_BlocksAfterLimit(t *testing.T) {
	l := NewInMemory(Config{Window: time.Minute, Limit: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, ok, "request %d within the window must pass", i+1)
	}

	ok, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.False(t, ok, "4th request within the window must be rejected")
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l := NewInMemory(Config{Window: time.Minute, Limit: 1})
	ctx := context.Background()

	ok, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	require.True(t, ok, "a different key has its own counter")
}

func TestAllow_ResetsAfterWindow(t *testing.T) {
	l := NewInMemory(Config{Window: 100 * time.Millisecond, Limit: 1})
	ctx := context.Background()

	ok, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.False(t, ok)

	time.Sleep(120 * time.Millisecond)

	ok, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.True(t, ok, "counter resets once the window elapses")
}
