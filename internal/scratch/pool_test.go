package scratch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	t.Parallel()

	p, err := NewPool(3, 16)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Size())
	assert.Equal(t, 0, p.InUse())

	b, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.Len(t, b.RawData, 16)
	assert.Len(t, b.FastXcorr, 16)
	assert.Len(t, b.Smoothed, 16)
	assert.Len(t, b.PeakExtracted, 16)

	_, err = NewPool(0, 16)
	require.Error(t, err)
	_, err = NewPool(1, -1)
	require.Error(t, err)
}

func TestAcquire_BlocksUntilRelease(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	p, err := NewPool(1, 4)
	require.NoError(t, err)
	first, err := p.Acquire(context.Background())
	require.NoError(t, err)

	got := make(chan *Buffers)
	go func() {
		b, err := p.Acquire(context.Background())
		if err != nil {
			close(got)
			return
		}
		got <- b
	}()

	// --- Act & Assert ---
	select {
	case <-got:
		t.Fatal("Acquire returned while the only slot was claimed")
	case <-time.After(50 * time.Millisecond):
	}

	p.Release(first)

	select {
	case b, ok := <-got:
		require.True(t, ok)
		assert.Equal(t, first.Slot(), b.Slot())
		assert.Equal(t, 1, p.InUse())
	case <-time.After(time.Second):
		t.Fatal("Acquire did not return after Release")
	}
}

func TestAcquire_Cancelled(t *testing.T) {
	t.Parallel()

	p, err := NewPool(1, 4)
	require.NoError(t, err)
	_, err = p.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = p.Acquire(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, p.InUse())
}

func TestRelease_Twice(t *testing.T) {
	t.Parallel()

	p, err := NewPool(2, 4)
	require.NoError(t, err)
	b, err := p.Acquire(context.Background())
	require.NoError(t, err)

	p.Release(b)
	assert.Panics(t, func() { p.Release(b) })
	assert.Equal(t, 0, p.InUse())
}

func TestPool_Concurrent(t *testing.T) {
	t.Parallel()

	const slots = 4
	p, err := NewPool(slots, 8)
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		held    = make(map[int]bool)
		maxHeld int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := p.Acquire(context.Background())
			if err != nil {
				return
			}
			mu.Lock()
			if held[b.Slot()] {
				mu.Unlock()
				panic("slot handed out twice")
			}
			held[b.Slot()] = true
			if len(held) > maxHeld {
				maxHeld = len(held)
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			delete(held, b.Slot())
			mu.Unlock()
			p.Release(b)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, maxHeld, slots)
	assert.Equal(t, 0, p.InUse())
}
