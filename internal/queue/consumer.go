package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Default consumer group name.
	defaultConsumerGroup = "workers"

	// Default block timeout for reading from the stream.
	defaultBlockTimeout = 5 * time.Second

	// Default count of messages to read per batch.
	defaultBatchSize = 10

	// Default minimum idle time before claiming pending messages.
	defaultClaimMinIdle = 5 * time.Minute

	// Maximum pending messages to check at once.
	maxPendingCheck = 100
)

// Consumer handles reading jobs from the Redis stream.
type Consumer struct {
	client        *StreamsClient
	consumerGroup string
	consumerID    string
	blockTimeout  time.Duration
	batchSize     int64
	claimMinIdle  time.Duration
}

// ConsumerConfig holds configuration for the Consumer.
type ConsumerConfig struct {
	ConsumerGroup string        // Consumer group name
	ConsumerID    string        // Unique consumer identifier
	BlockTimeout  time.Duration // Block timeout for reads (0 = default)
	BatchSize     int64         // Number of messages per read (0 = default)
	ClaimMinIdle  time.Duration // Min idle time before claiming (0 = default)
}

// ConsumedJob represents a job read from the queue.
type ConsumedJob struct {
	MessageID  string
	JobID      string
	EnqueuedAt time.Time
}

// NewConsumer creates a new job consumer.
func NewConsumer(client *StreamsClient, cfg ConsumerConfig) (*Consumer, error) {
	if cfg.ConsumerID == "" {
		return nil, errors.New("consumer ID is required")
	}

	group := cfg.ConsumerGroup
	if group == "" {
		group = defaultConsumerGroup
	}

	blockTimeout := cfg.BlockTimeout
	if blockTimeout <= 0 {
		blockTimeout = defaultBlockTimeout
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	claimMinIdle := cfg.ClaimMinIdle
	if claimMinIdle <= 0 {
		claimMinIdle = defaultClaimMinIdle
	}

	return &Consumer{
		client:        client,
		consumerGroup: group,
		consumerID:    cfg.ConsumerID,
		blockTimeout:  blockTimeout,
		batchSize:     batchSize,
		claimMinIdle:  claimMinIdle,
	}, nil
}

// Initialize creates the consumer group for the job stream.
func (c *Consumer) Initialize(ctx context.Context) error {
	if err := c.client.CreateConsumerGroup(ctx, c.consumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// Read reads jobs from the stream. Abandoned pending messages are
// reclaimed first, so a crashed worker's jobs get redelivered.
func (c *Consumer) Read(ctx context.Context) ([]*ConsumedJob, error) {
	reclaimed := c.reclaimPending(ctx)
	if len(reclaimed) > 0 {
		return reclaimed, nil
	}

	messages, err := c.client.XReadGroup(ctx, c.consumerGroup, c.consumerID, c.batchSize, c.blockTimeout)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // No messages available
		}
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	return parseStreams(messages), nil
}

// Acknowledge acknowledges successful processing of a job.
func (c *Consumer) Acknowledge(ctx context.Context, job *ConsumedJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return c.client.XAck(ctx, c.consumerGroup, job.MessageID)
}

// reclaimPending claims pending messages that have exceeded the idle
// threshold.
func (c *Consumer) reclaimPending(ctx context.Context) []*ConsumedJob {
	pending, err := c.client.XPendingExt(ctx, c.consumerGroup, maxPendingCheck)
	if err != nil {
		return nil
	}

	var idsToReclaim []string
	for _, entry := range pending {
		if entry.Idle >= c.claimMinIdle {
			idsToReclaim = append(idsToReclaim, entry.ID)
		}
	}

	if len(idsToReclaim) == 0 {
		return nil
	}

	claimed, err := c.client.XClaim(ctx, c.consumerGroup, c.consumerID, c.claimMinIdle, idsToReclaim...)
	if err != nil {
		return nil
	}

	var jobs []*ConsumedJob
	for _, msg := range claimed {
		if job, ok := parseMessage(msg); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// parseStreams parses messages from the stream read result.
func parseStreams(streams []redis.XStream) []*ConsumedJob {
	var jobs []*ConsumedJob
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			if job, ok := parseMessage(msg); ok {
				jobs = append(jobs, job)
			}
		}
	}
	return jobs
}

// parseMessage parses a single stream message. Malformed messages are
// skipped.
func parseMessage(msg redis.XMessage) (*ConsumedJob, bool) {
	jobID, ok := msg.Values[JobIDField].(string)
	if !ok || jobID == "" {
		return nil, false
	}

	job := &ConsumedJob{
		MessageID: msg.ID,
		JobID:     jobID,
	}

	if enqueuedStr, hasEnqueued := msg.Values[EnqueuedAtField].(string); hasEnqueued {
		if t, parseErr := time.Parse(time.RFC3339, enqueuedStr); parseErr == nil {
			job.EnqueuedAt = t
		}
	}

	return job, true
}

// ConsumerGroup returns the consumer group name.
func (c *Consumer) ConsumerGroup() string {
	return c.consumerGroup
}

// ConsumerID returns the consumer ID.
func (c *Consumer) ConsumerID() string {
	return c.consumerID
}
