// SPDX-License-Identifier: MIT

// Package parallel provides the bounded worker pool used by the solver to
// evaluate candidate moves of one iteration concurrently and to run
// independent multi-start searches.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when submitting to a pool that has been shut down.
var ErrPoolShutdown = errors.New("parallel: worker pool has been shut down")

// WorkerPool runs submitted tasks on a fixed set of goroutines. The task
// channel is buffered to twice the worker count; Submit blocks beyond that.
type WorkerPool struct {
	workers  int
	tasks    chan func()
	wg       sync.WaitGroup
	shutdown chan struct{}
	once     sync.Once
}

// NewWorkerPool starts a pool of n workers; n ≤ 0 means runtime.NumCPU().
func NewWorkerPool(n int) *WorkerPool {
	if n <= 0 {
		n = runtime.NumCPU()
	}

	wp := &WorkerPool{
		workers:  n,
		tasks:    make(chan func(), n*2),
		shutdown: make(chan struct{}),
	}
	wp.wg.Add(n)
	for i := 0; i < n; i++ {
		go wp.worker()
	}

	return wp
}

// Size returns the number of workers.
func (wp *WorkerPool) Size() int { return wp.workers }

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case task := <-wp.tasks:
			if task != nil {
				task()
			}
		case <-wp.shutdown:
			return
		}
	}
}

// Submit queues task, blocking while the queue is full.
//
// Errors: ctx.Err() when ctx ends first, ErrPoolShutdown after Shutdown.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-wp.shutdown:
		return ErrPoolShutdown
	default:
	}

	select {
	case wp.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.shutdown:
		return ErrPoolShutdown
	}
}

// ForEach runs fn(i) for every i in [0, n) on the pool and waits for all
// submitted calls to return. Calls may run in any order; callers write
// results into index-addressed slots to keep the outcome deterministic.
//
// Errors: the first Submit error; calls already submitted still complete
// before ForEach returns.
func (wp *WorkerPool) ForEach(ctx context.Context, n int, fn func(i int)) error {
	var wg sync.WaitGroup
	var err error
	for i := 0; i < n; i++ {
		wg.Add(1)
		i := i
		if err = wp.Submit(ctx, func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()

	return err
}

// Shutdown stops the workers after the tasks they are running return.
// Queued tasks that no worker has picked up are dropped. Safe to call more
// than once.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdown)
		wp.wg.Wait()
	})
}
