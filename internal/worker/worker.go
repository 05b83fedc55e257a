package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonesrussell/shopsearch/internal/logger"
	"github.com/jonesrussell/shopsearch/internal/queue"
)

// WorkerState represents the current state of a worker.
type WorkerState int32

const (
	// WorkerStateIdle means the worker is waiting for work.
	WorkerStateIdle WorkerState = iota

	// WorkerStateBusy means the worker is processing a job.
	WorkerStateBusy

	// WorkerStateStopped means the worker has stopped.
	WorkerStateStopped
)

// String returns the string representation of a worker state.
func (s WorkerState) String() string {
	switch s {
	case WorkerStateIdle:
		return "idle"
	case WorkerStateBusy:
		return "busy"
	case WorkerStateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// JobHandler executes one search job. The boolean result reports whether
// the job id was known; handler faults are converted to a failed job
// inside the orchestrator, never surfaced here.
type JobHandler func(ctx context.Context, jobID string) bool

// Worker represents an individual worker in the pool.
type Worker struct {
	id         int
	state      atomic.Int32
	handler    JobHandler
	jobTimeout time.Duration
	logger     logger.Interface

	// Stats
	jobsProcessed atomic.Int64
	lastJobAt     atomic.Int64
}

// NewWorker creates a new worker.
func NewWorker(id int, handler JobHandler, jobTimeout time.Duration, log logger.Interface) *Worker {
	w := &Worker{
		id:         id,
		handler:    handler,
		jobTimeout: jobTimeout,
		logger:     log,
	}
	w.state.Store(int32(WorkerStateIdle))
	return w
}

// ID returns the worker ID.
func (w *Worker) ID() int {
	return w.id
}

// State returns the current worker state.
func (w *Worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// IsIdle returns true if the worker is idle.
func (w *Worker) IsIdle() bool {
	return w.State() == WorkerStateIdle
}

// IsBusy returns true if the worker is busy.
func (w *Worker) IsBusy() bool {
	return w.State() == WorkerStateBusy
}

// Process processes a job from the queue.
func (w *Worker) Process(ctx context.Context, consumedJob *queue.ConsumedJob) error {
	if consumedJob == nil || consumedJob.JobID == "" {
		return fmt.Errorf("worker %d: job cannot be nil", w.id)
	}

	if !w.state.CompareAndSwap(int32(WorkerStateIdle), int32(WorkerStateBusy)) {
		return fmt.Errorf("worker %d: not idle, current state: %s", w.id, w.State())
	}
	defer w.state.Store(int32(WorkerStateIdle))

	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	w.logger.Info("worker processing job",
		"worker_id", w.id,
		"job_id", consumedJob.JobID,
	)

	startTime := time.Now()
	known := w.handler(jobCtx, consumedJob.JobID)
	duration := time.Since(startTime)

	w.jobsProcessed.Add(1)
	w.lastJobAt.Store(time.Now().UnixNano())

	if !known {
		w.logger.Warn("worker handled unknown or faulted job",
			"worker_id", w.id,
			"job_id", consumedJob.JobID,
			"duration", duration,
		)
		return nil
	}

	w.logger.Info("worker job done",
		"worker_id", w.id,
		"job_id", consumedJob.JobID,
		"duration", duration,
	)

	return nil
}

// Stats returns the worker's statistics.
func (w *Worker) Stats() WorkerStats {
	var lastJobTime time.Time
	if ts := w.lastJobAt.Load(); ts > 0 {
		lastJobTime = time.Unix(0, ts)
	}

	return WorkerStats{
		ID:            w.id,
		State:         w.State(),
		JobsProcessed: w.jobsProcessed.Load(),
		LastJobAt:     lastJobTime,
	}
}

// WorkerStats holds statistics for a worker.
type WorkerStats struct {
	ID            int
	State         WorkerState
	JobsProcessed int64
	LastJobAt     time.Time
}
