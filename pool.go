package chromepdf

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one render can run.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent browsers to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// Pool bounds how many browsers render at the same time. Each render still
// gets its own browser process; the pool only limits how many exist at once.
// Callers beyond the limit block until a slot frees up or their context ends.
type Pool struct {
	conv *Converter
	sem  chan struct{}
	done chan struct{}

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

// NewPool creates a pool running at most n renders at once with a Converter
// built from opts. n < 1 is treated as 1.
func NewPool(n int, opts ...Option) *Pool {
	return newPool(NewConverter(opts...), n)
}

func newPool(conv *Converter, n int) *Pool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &Pool{
		conv: conv,
		sem:  make(chan struct{}, n),
		done: make(chan struct{}),
	}
}

// Render waits for a free slot and renders html with the pool's Converter.
func (p *Pool) Render(ctx context.Context, html string, opts RenderOptions) ([]byte, error) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return nil, ErrPoolClosed
	}
	p.inflight.Add(1)
	p.mu.RUnlock()
	defer p.inflight.Done()

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: waiting for a renderer: %w", ErrRenderFailure, ctx.Err())
	case <-p.done:
		return nil, ErrPoolClosed
	}
	defer func() { <-p.sem }()

	return p.conv.Render(ctx, html, opts)
}

// Close rejects new renders, releases callers still waiting for a slot and
// waits for running renders to finish. Calling Close again is a no-op.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()

	p.inflight.Wait()
	return nil
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	return cap(p.sem)
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware when the binary imports automaxprocs.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
