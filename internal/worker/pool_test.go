package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/shopsearch/internal/logger"
	"github.com/jonesrussell/shopsearch/internal/queue"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.PoolSize = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.PoolSize = MaxPoolSize + 1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.JobTimeout = 0
	assert.Error(t, cfg.Validate())
}

func TestNewPoolRequiresHandler(t *testing.T) {
	_, err := NewPool(DefaultConfig(), nil, logger.NewNoOp())
	assert.Error(t, err)
}

func TestWorkerProcess(t *testing.T) {
	var handled atomic.Int64
	handler := func(context.Context, string) bool {
		handled.Add(1)
		return true
	}

	w := NewWorker(0, handler, time.Second, logger.NewNoOp())

	err := w.Process(context.Background(), &queue.ConsumedJob{MessageID: "1-0", JobID: "job-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), handled.Load())
	assert.True(t, w.IsIdle())
	assert.Equal(t, int64(1), w.Stats().JobsProcessed)
}

func TestWorkerProcessRejectsNilJob(t *testing.T) {
	w := NewWorker(0, func(context.Context, string) bool { return true }, time.Second, logger.NewNoOp())

	assert.Error(t, w.Process(context.Background(), nil))
	assert.Error(t, w.Process(context.Background(), &queue.ConsumedJob{}))
}

func TestPoolLifecycle(t *testing.T) {
	var processed atomic.Int64
	handler := func(context.Context, string) bool {
		processed.Add(1)
		return true
	}

	cfg := DefaultConfig()
	cfg.PoolSize = 2
	cfg.DrainTimeout = time.Second

	pool, err := NewPool(cfg, handler, logger.NewNoOp())
	require.NoError(t, err)

	var acked atomic.Int64
	pool.SetCompletionHook(func(context.Context, *queue.ConsumedJob) {
		acked.Add(1)
	})

	assert.Equal(t, PoolStateStopped, pool.State())
	require.NoError(t, pool.Start())
	assert.True(t, pool.IsRunning())

	// Starting twice fails.
	assert.Error(t, pool.Start())

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		job := &queue.ConsumedJob{MessageID: "1-0", JobID: string(rune('a' + i))}
		require.NoError(t, pool.Submit(ctx, job))
	}

	assert.Eventually(t, func() bool {
		return processed.Load() == 5 && acked.Load() == 5
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, pool.Stop(ctx))
	assert.Equal(t, PoolStateStopped, pool.State())

	// A stopped pool refuses new work.
	assert.Error(t, pool.Submit(ctx, &queue.ConsumedJob{MessageID: "2-0", JobID: "late"}))
}

func TestPoolSkipsCompletionHookWhenProcessFails(t *testing.T) {
	var handled atomic.Int64
	handler := func(context.Context, string) bool {
		handled.Add(1)
		return true
	}

	cfg := DefaultConfig()
	cfg.PoolSize = 1
	cfg.DrainTimeout = time.Second

	pool, err := NewPool(cfg, handler, logger.NewNoOp())
	require.NoError(t, err)

	var acked atomic.Int64
	pool.SetCompletionHook(func(context.Context, *queue.ConsumedJob) {
		acked.Add(1)
	})

	require.NoError(t, pool.Start())

	// A message without a job id makes the worker reject it before the
	// handler runs. The message must stay unacknowledged so the queue
	// redelivers it.
	ctx := context.Background()
	require.NoError(t, pool.Submit(ctx, &queue.ConsumedJob{MessageID: "1-0"}))

	// Stop drains the submission goroutine before the assertions run.
	require.NoError(t, pool.Stop(ctx))

	assert.Equal(t, int64(0), handled.Load())
	assert.Equal(t, int64(0), acked.Load())
	assert.Equal(t, int64(0), pool.Stats().JobsProcessed)
}
