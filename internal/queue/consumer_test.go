package queue

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	enqueued := time.Now().UTC().Truncate(time.Second)

	msg := redis.XMessage{
		ID: "1-0",
		Values: map[string]any{
			JobIDField:      "job-123",
			EnqueuedAtField: enqueued.Format(time.RFC3339),
		},
	}

	job, ok := parseMessage(msg)
	require.True(t, ok)
	assert.Equal(t, "1-0", job.MessageID)
	assert.Equal(t, "job-123", job.JobID)
	assert.True(t, job.EnqueuedAt.Equal(enqueued))
}

func TestParseMessageMalformed(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"missing job id", map[string]any{EnqueuedAtField: "2026-01-01T00:00:00Z"}},
		{"empty job id", map[string]any{JobIDField: ""}},
		{"wrong type", map[string]any{JobIDField: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseMessage(redis.XMessage{ID: "1-0", Values: tt.values})
			assert.False(t, ok)
		})
	}
}

func TestParseMessageBadTimestampStillParses(t *testing.T) {
	msg := redis.XMessage{
		ID: "1-0",
		Values: map[string]any{
			JobIDField:      "job-123",
			EnqueuedAtField: "not-a-time",
		},
	}

	job, ok := parseMessage(msg)
	require.True(t, ok)
	assert.True(t, job.EnqueuedAt.IsZero())
}

func TestParseStreamsSkipsMalformed(t *testing.T) {
	streams := []redis.XStream{
		{
			Stream: "shopsearch:jobs",
			Messages: []redis.XMessage{
				{ID: "1-0", Values: map[string]any{JobIDField: "job-1"}},
				{ID: "2-0", Values: map[string]any{}},
				{ID: "3-0", Values: map[string]any{JobIDField: "job-2"}},
			},
		},
	}

	jobs := parseStreams(streams)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-1", jobs[0].JobID)
	assert.Equal(t, "job-2", jobs[1].JobID)
}

func TestNewConsumerDefaults(t *testing.T) {
	consumer, err := NewConsumer(&StreamsClient{}, ConsumerConfig{ConsumerID: "worker-1"})
	require.NoError(t, err)

	assert.Equal(t, defaultConsumerGroup, consumer.ConsumerGroup())
	assert.Equal(t, "worker-1", consumer.ConsumerID())
	assert.Equal(t, defaultBlockTimeout, consumer.blockTimeout)
	assert.Equal(t, int64(defaultBatchSize), consumer.batchSize)
}

func TestNewConsumerRequiresID(t *testing.T) {
	_, err := NewConsumer(&StreamsClient{}, ConsumerConfig{})
	assert.Error(t, err)
}
