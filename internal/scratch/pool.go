// Package scratch hands out the per-worker spectrum buffers used while a
// search job runs. Buffers are allocated once and reused across jobs.
package scratch

import (
	"context"
	"fmt"
	"sync"
)

// Buffers is the working memory of one worker.
type Buffers struct {
	RawData       []float64
	FastXcorr     []float64
	Smoothed      []float64
	PeakExtracted []float64

	slot int
}

// Slot is the index of the buffer set within its pool.
func (b *Buffers) Slot() int {
	return b.slot
}

// Pool is a fixed set of Buffers shared by the search workers.
type Pool struct {
	free chan *Buffers

	mu    sync.Mutex
	inUse []bool
}

// NewPool allocates slots buffer sets, each array holding size values.
func NewPool(slots, size int) (*Pool, error) {
	if slots < 1 {
		return nil, fmt.Errorf("scratch pool needs at least one slot, got %d", slots)
	}
	if size < 0 {
		return nil, fmt.Errorf("invalid scratch buffer size %d", size)
	}
	p := &Pool{
		free:  make(chan *Buffers, slots),
		inUse: make([]bool, slots),
	}
	for i := 0; i < slots; i++ {
		p.free <- &Buffers{
			RawData:       make([]float64, size),
			FastXcorr:     make([]float64, size),
			Smoothed:      make([]float64, size),
			PeakExtracted: make([]float64, size),
			slot:          i,
		}
	}
	return p, nil
}

// Acquire claims a free buffer set, blocking while all of them are in use.
// It returns ctx.Err() if ctx is done first.
func (p *Pool) Acquire(ctx context.Context) (*Buffers, error) {
	select {
	case b := <-p.free:
		p.mu.Lock()
		p.inUse[b.slot] = true
		p.mu.Unlock()
		return b, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns b to the pool. Contents are left as they are. Releasing a
// buffer set that is not claimed panics.
func (p *Pool) Release(b *Buffers) {
	p.mu.Lock()
	if b == nil || b.slot >= len(p.inUse) || !p.inUse[b.slot] {
		p.mu.Unlock()
		panic("scratch: release of a buffer set that is not in use")
	}
	p.inUse[b.slot] = false
	p.mu.Unlock()
	p.free <- b
}

// InUse reports how many buffer sets are claimed.
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, used := range p.inUse {
		if used {
			n++
		}
	}
	return n
}

// Size is the number of buffer sets in the pool.
func (p *Pool) Size() int {
	return len(p.inUse)
}
