// Package domain provides domain models used across the application.
package domain

import (
	"time"
)

// Status represents the lifecycle state of a search job.
type Status string

const (
	// StatusPending means the job has been created but not picked up yet.
	StatusPending Status = "pending"

	// StatusRunning means a worker is executing the job.
	StatusRunning Status = "running"

	// StatusCompleted means the job finished with at least one product saved.
	StatusCompleted Status = "completed"

	// StatusFailed means the job finished without usable results.
	StatusFailed Status = "failed"
)

// DefaultSearchTTL is how long a search job is retained before the
// expiry sweep removes it.
const DefaultSearchTTL = 24 * time.Hour

// IsTerminal returns true if no further status transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// IsValid returns true if the status is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Search represents a user-initiated search job.
type Search struct {
	ID        string     `db:"id" json:"id"`
	Prompt    string     `db:"prompt" json:"prompt"`
	Sites     StringList `db:"sites" json:"sites"`
	Filters   Filters    `db:"filters" json:"filters"`
	Status    Status     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
}

// IsExpired returns true if the job's retention window has passed.
func (s *Search) IsExpired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
