package worker

import (
	"context"
	"errors"
	"time"

	"github.com/jonesrussell/shopsearch/internal/logger"
	"github.com/jonesrussell/shopsearch/internal/queue"
)

// readErrorBackoff is how long the runner waits after a failed read
// before polling the stream again.
const readErrorBackoff = 2 * time.Second

// Runner drives the consume loop: it reads jobs from the queue and
// hands them to the pool, acknowledging each message once its worker
// finishes.
type Runner struct {
	consumer *queue.Consumer
	pool     *Pool
	logger   logger.Interface
}

// NewRunner creates a Runner wiring the consumer to the pool.
func NewRunner(consumer *queue.Consumer, pool *Pool, log logger.Interface) (*Runner, error) {
	if consumer == nil {
		return nil, errors.New("consumer cannot be nil")
	}
	if pool == nil {
		return nil, errors.New("pool cannot be nil")
	}

	r := &Runner{
		consumer: consumer,
		pool:     pool,
		logger:   log,
	}

	pool.SetCompletionHook(r.acknowledge)

	return r, nil
}

// Run consumes jobs until the context is cancelled. It blocks; callers
// typically run it in its own goroutine.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.consumer.Initialize(ctx); err != nil {
		return err
	}

	r.logger.Info("job runner started",
		"consumer_group", r.consumer.ConsumerGroup(),
		"consumer_id", r.consumer.ConsumerID(),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("job runner stopping")
			return ctx.Err()
		default:
		}

		jobs, err := r.consumer.Read(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			r.logger.Error("failed to read jobs", "error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readErrorBackoff):
			}
			continue
		}

		for _, job := range jobs {
			if submitErr := r.pool.Submit(ctx, job); submitErr != nil {
				r.logger.Error("failed to submit job",
					"job_id", job.JobID,
					"error", submitErr,
				)
			}
		}
	}
}

// acknowledge acks a processed message. Failure to ack leaves the
// message pending; it will be reclaimed and re-executed, which is safe
// because terminal statuses are never overwritten.
func (r *Runner) acknowledge(ctx context.Context, job *queue.ConsumedJob) {
	ackCtx := ctx
	if ackCtx.Err() != nil {
		var cancel context.CancelFunc
		ackCtx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	if err := r.consumer.Acknowledge(ackCtx, job); err != nil {
		r.logger.Warn("failed to acknowledge job",
			"job_id", job.JobID,
			"message_id", job.MessageID,
			"error", err,
		)
	}
}
