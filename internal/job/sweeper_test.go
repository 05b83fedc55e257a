package job

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/shopsearch/internal/logger"
)

type countingCleaner struct {
	sweeps  atomic.Int64
	deleted int
}

func (c *countingCleaner) CleanupExpired(context.Context) (int, error) {
	c.sweeps.Add(1)
	return c.deleted, nil
}

type countingTrimmer struct {
	trims atomic.Int64
	depth int64
}

func (c *countingTrimmer) TrimStream(context.Context) error {
	c.trims.Add(1)
	return nil
}

func (c *countingTrimmer) QueueDepth(context.Context) (int64, error) {
	return c.depth, nil
}

func TestSweeperRunsImmediatelyOnStart(t *testing.T) {
	cleaner := &countingCleaner{deleted: 2}
	sweeper := NewSweeper(cleaner, nil, "", logger.NewNoOp())

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop()

	assert.Eventually(t, func() bool {
		return cleaner.sweeps.Load() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestSweeperTrimsQueue(t *testing.T) {
	trimmer := &countingTrimmer{depth: 7}
	sweeper := NewSweeper(&countingCleaner{}, trimmer, "", logger.NewNoOp())

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop()

	assert.Eventually(t, func() bool {
		return trimmer.trims.Load() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestSweeperStartTwiceFails(t *testing.T) {
	sweeper := NewSweeper(&countingCleaner{}, nil, "", logger.NewNoOp())

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop()

	assert.Error(t, sweeper.Start(context.Background()))
}

func TestSweeperRejectsBadSchedule(t *testing.T) {
	sweeper := NewSweeper(&countingCleaner{}, nil, "not a schedule", logger.NewNoOp())
	assert.Error(t, sweeper.Start(context.Background()))
}

func TestSweeperStopIsIdempotent(t *testing.T) {
	sweeper := NewSweeper(&countingCleaner{}, nil, "", logger.NewNoOp())
	require.NoError(t, sweeper.Start(context.Background()))

	sweeper.Stop()
	sweeper.Stop()
}
