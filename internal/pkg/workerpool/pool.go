package workerpool

import (
	"context"
	"errors"
	"sync"

	"github.com/newslens/newslens-backend/internal/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// Pool bounds the number of goroutines running submitted tasks.
// It exists so batch fan-out (two provider calls per article) cannot
// exhaust provider rate limits.
type Pool struct {
	inner  *ants.Pool
	logger *logger.Logger
}

// New creates a pool with the given worker count
func New(size int, log *logger.Logger) (*Pool, error) {
	if size <= 0 {
		size = 4
	}
	if log == nil {
		log = logger.L()
	}

	inner, err := ants.NewPool(size, ants.WithPanicHandler(func(v interface{}) {
		log.Error("worker panic recovered", zap.Any("panic", v))
	}))
	if err != nil {
		return nil, err
	}

	return &Pool{inner: inner, logger: log}, nil
}

// Submit schedules task on a pool worker, blocking until one is free
func (p *Pool) Submit(task func()) error {
	if p.inner.IsClosed() {
		return ErrPoolClosed
	}
	return p.inner.Submit(task)
}

// Each runs fn for every index in [0, n) on pool workers and waits for
// all of them. The context is passed through so tasks can observe
// cancellation; Each itself always drains the batch.
func (p *Pool) Each(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			fn(ctx, i)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}

	wg.Wait()
	return nil
}

// Running returns the number of busy workers
func (p *Pool) Running() int {
	return p.inner.Running()
}

// Cap returns the worker count
func (p *Pool) Cap() int {
	return p.inner.Cap()
}

// Release shuts the pool down
func (p *Pool) Release() {
	p.inner.Release()
}
