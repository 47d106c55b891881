package parallel_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cbls/internal/parallel"
)

func TestForEach_RunsEveryIndexOnce(t *testing.T) {
	wp := parallel.NewWorkerPool(4)
	defer wp.Shutdown()

	const n = 1000
	hits := make([]int32, n)
	require.NoError(t, wp.ForEach(context.Background(), n, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	}))
	for i, h := range hits {
		require.Equal(t, int32(1), h, "index %d", i)
	}
}

func TestForEach_Reusable(t *testing.T) {
	wp := parallel.NewWorkerPool(2)
	defer wp.Shutdown()

	var total int64
	for round := 0; round < 50; round++ {
		require.NoError(t, wp.ForEach(context.Background(), 10, func(i int) {
			atomic.AddInt64(&total, int64(i))
		}))
	}
	require.Equal(t, int64(50*45), total)
}

func TestSubmit_AfterShutdown(t *testing.T) {
	wp := parallel.NewWorkerPool(1)
	wp.Shutdown()
	wp.Shutdown()

	err := wp.Submit(context.Background(), func() {})
	require.ErrorIs(t, err, parallel.ErrPoolShutdown)
	require.ErrorIs(t, wp.ForEach(context.Background(), 3, func(int) {}), parallel.ErrPoolShutdown)
}

func TestSubmit_CancelledContext(t *testing.T) {
	wp := parallel.NewWorkerPool(1)
	defer wp.Shutdown()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, wp.Submit(context.Background(), func() {
		close(started)
		<-block
	}))
	<-started
	// fill the buffer (2 slots) so the next Submit has to wait
	require.NoError(t, wp.Submit(context.Background(), func() {}))
	require.NoError(t, wp.Submit(context.Background(), func() {}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, wp.Submit(ctx, func() {}), context.Canceled)
	close(block)
}

func TestDefaultSize(t *testing.T) {
	wp := parallel.NewWorkerPool(0)
	defer wp.Shutdown()
	require.Positive(t, wp.Size())
}
