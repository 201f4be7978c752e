package sessionlock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard_Exclusive(t *testing.T) {
	g := NewMemoryGuard(time.Minute)
	ctx := context.Background()

	release, ok, err := g.TryAcquire(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = g.TryAcquire(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "second acquire on a held key must fail")

	_, ok, _ = g.TryAcquire(ctx, "s2")
	assert.True(t, ok, "other keys are independent")

	release()
	_, ok, _ = g.TryAcquire(ctx, "s1")
	assert.True(t, ok)
}

func TestMemoryGuard_Expiry(t *testing.T) {
	g := NewMemoryGuard(20 * time.Millisecond)
	ctx := context.Background()

	stale, ok, _ := g.TryAcquire(ctx, "s1")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	fresh, ok, _ := g.TryAcquire(ctx, "s1")
	require.True(t, ok, "expired lock can be taken over")

	// releasing the stale lock must not free the new holder
	stale()
	_, ok, _ = g.TryAcquire(ctx, "s1")
	assert.False(t, ok)
	fresh()
}

func TestMemoryGuard_Concurrent(t *testing.T) {
	g := NewMemoryGuard(time.Minute)
	var wins int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := g.TryAcquire(context.Background(), "shared"); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}
