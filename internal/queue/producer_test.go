package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnqueueRejectsEmptyJobID(t *testing.T) {
	producer := NewProducer(&StreamsClient{}, ProducerConfig{})

	err := producer.Enqueue(context.Background(), "")
	assert.Error(t, err)
}

func TestNewProducerDefaultsMaxLen(t *testing.T) {
	producer := NewProducer(&StreamsClient{}, ProducerConfig{})
	assert.Equal(t, int64(defaultMaxStreamLen), producer.maxStreamLen)

	producer = NewProducer(&StreamsClient{}, ProducerConfig{MaxStreamLen: 500})
	assert.Equal(t, int64(500), producer.maxStreamLen)
}
