package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusRunning.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusFailed.IsValid())
	assert.False(t, Status("cancelled").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestSearchIsExpired(t *testing.T) {
	now := time.Now()

	fresh := &Search{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, fresh.IsExpired(now))

	stale := &Search{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, stale.IsExpired(now))

	boundary := &Search{ExpiresAt: now}
	assert.False(t, boundary.IsExpired(now))
}
