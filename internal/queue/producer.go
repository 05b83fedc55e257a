package queue

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// JobIDField is the field name for the job id in stream messages.
	JobIDField = "job_id"

	// EnqueuedAtField is the field name for the enqueue timestamp.
	EnqueuedAtField = "enqueued_at"

	// Default max stream length to prevent unbounded growth.
	defaultMaxStreamLen = 10000
)

// Producer handles enqueueing job ids to the Redis stream.
type Producer struct {
	client       *StreamsClient
	maxStreamLen int64
}

// ProducerConfig holds configuration for the Producer.
type ProducerConfig struct {
	MaxStreamLen int64 // Maximum stream length (0 = default)
}

// NewProducer creates a new job producer.
func NewProducer(client *StreamsClient, cfg ProducerConfig) *Producer {
	maxLen := cfg.MaxStreamLen
	if maxLen <= 0 {
		maxLen = defaultMaxStreamLen
	}

	return &Producer{
		client:       client,
		maxStreamLen: maxLen,
	}
}

// Enqueue adds a job id to the stream.
func (p *Producer) Enqueue(ctx context.Context, jobID string) error {
	if jobID == "" {
		return errors.New("job id cannot be empty")
	}

	values := map[string]any{
		JobIDField:      jobID,
		EnqueuedAtField: time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := p.client.XAdd(ctx, values); err != nil {
		return fmt.Errorf("failed to enqueue job %s: %w", jobID, err)
	}

	return nil
}

// TrimStream trims the stream to the maximum length.
func (p *Producer) TrimStream(ctx context.Context) error {
	return p.client.XTrimMaxLen(ctx, p.maxStreamLen)
}

// QueueDepth returns the current queue depth.
func (p *Producer) QueueDepth(ctx context.Context) (int64, error) {
	return p.client.XLen(ctx)
}
