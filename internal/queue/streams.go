// Package queue provides a Redis Streams-based job queue. Delivery is
// at-least-once: unacknowledged messages are reclaimed after an idle
// threshold, so a worker crash redelivers the job to another consumer.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Default connection timeout for Redis operations.
	defaultConnectionTimeout = 2 * time.Second

	// defaultPrefix namespaces the stream key.
	defaultPrefix = "shopsearch"
)

// StreamsClient wraps a Redis client with streams-specific operations.
type StreamsClient struct {
	client *redis.Client
	prefix string
}

// NewStreamsClient creates a StreamsClient from an existing Redis client.
func NewStreamsClient(client *redis.Client, prefix string) (*StreamsClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if prefix == "" {
		prefix = defaultPrefix
	}

	return &StreamsClient{
		client: client,
		prefix: prefix,
	}, nil
}

// StreamName returns the full job stream name.
func (c *StreamsClient) StreamName() string {
	return c.prefix + ":jobs"
}

// Ping checks if Redis is reachable.
func (c *StreamsClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// CreateConsumerGroup creates a consumer group for the job stream if it
// doesn't exist.
func (c *StreamsClient) CreateConsumerGroup(ctx context.Context, group string) error {
	err := c.client.XGroupCreateMkStream(ctx, c.StreamName(), group, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// XAdd adds a message to the job stream.
func (c *StreamsClient) XAdd(ctx context.Context, values map[string]any) (string, error) {
	result := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.StreamName(),
		Values: values,
	})
	return result.Result()
}

// XReadGroup reads messages from the job stream using a consumer group.
func (c *StreamsClient) XReadGroup(
	ctx context.Context, group, consumer string, count int64, block time.Duration,
) ([]redis.XStream, error) {
	result := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{c.StreamName(), ">"},
		Count:    count,
		Block:    block,
	})
	return result.Result()
}

// XAck acknowledges messages in the job stream.
func (c *StreamsClient) XAck(ctx context.Context, group string, ids ...string) error {
	return c.client.XAck(ctx, c.StreamName(), group, ids...).Err()
}

// XPendingExt returns detailed pending entries for the job stream.
func (c *StreamsClient) XPendingExt(
	ctx context.Context, group string, count int64,
) ([]redis.XPendingExt, error) {
	return c.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: c.StreamName(),
		Group:  group,
		Start:  "-",
		End:    "+",
		Count:  count,
	}).Result()
}

// XClaim claims pending messages for a consumer.
func (c *StreamsClient) XClaim(
	ctx context.Context, group, consumer string, minIdle time.Duration, ids ...string,
) ([]redis.XMessage, error) {
	return c.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   c.StreamName(),
		Group:    group,
		Consumer: consumer,
		MinIdle:  minIdle,
		Messages: ids,
	}).Result()
}

// XLen returns the length of the job stream.
func (c *StreamsClient) XLen(ctx context.Context) (int64, error) {
	return c.client.XLen(ctx, c.StreamName()).Result()
}

// XTrimMaxLen trims the job stream to a maximum length.
func (c *StreamsClient) XTrimMaxLen(ctx context.Context, maxLen int64) error {
	return c.client.XTrimMaxLen(ctx, c.StreamName(), maxLen).Err()
}
