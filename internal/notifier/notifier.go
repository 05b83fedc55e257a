// Package notifier watches a search job and pushes status updates to a
// connected client until the job reaches a terminal state.
package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/jonesrussell/shopsearch/internal/domain"
	"github.com/jonesrussell/shopsearch/internal/logger"
	"github.com/jonesrussell/shopsearch/internal/search"
)

const (
	// DefaultTickInterval is the poll interval between status checks.
	DefaultTickInterval = time.Second

	// DefaultErrorBackoff is the poll interval used after a failed check.
	DefaultErrorBackoff = 2 * time.Second
)

// StatusSource reports the current state of a job.
type StatusSource interface {
	Status(ctx context.Context, jobID string) (*search.StatusReport, error)
}

// Sink receives pushed updates. Send returning an error ends the watch.
type Sink interface {
	Send(ctx context.Context, update *Update) error
}

// Update is one pushed notification.
type Update struct {
	Status  domain.Status    `json:"status"`
	Results []domain.Product `json:"results"`
	Logs    []string         `json:"logs"`
}

// Snapshot is the part of a job's state that triggers a push when it
// changes.
type Snapshot struct {
	Status      domain.Status
	ResultCount int
}

// Diff reports whether cur differs from prev in a way worth pushing.
// A nil prev always differs: the first observation is always pushed.
func Diff(prev *Snapshot, cur Snapshot) bool {
	if prev == nil {
		return true
	}
	return prev.Status != cur.Status || prev.ResultCount != cur.ResultCount
}

// Monitor polls job status and forwards changes to a sink.
type Monitor struct {
	source       StatusSource
	logger       logger.Interface
	tickInterval time.Duration
	errorBackoff time.Duration
}

// MonitorConfig holds optional tuning for a Monitor.
type MonitorConfig struct {
	TickInterval time.Duration // 0 = default
	ErrorBackoff time.Duration // 0 = default
}

// NewMonitor creates a Monitor over the given status source.
func NewMonitor(source StatusSource, cfg MonitorConfig, log logger.Interface) *Monitor {
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}

	backoff := cfg.ErrorBackoff
	if backoff <= 0 {
		backoff = DefaultErrorBackoff
	}

	return &Monitor{
		source:       source,
		logger:       log,
		tickInterval: tick,
		errorBackoff: backoff,
	}
}

// Watch polls the job until it reaches a terminal state, pushing an
// update to the sink whenever the status or result count changes. The
// final terminal update is always delivered before returning. A job
// that disappears mid-watch (expired and swept) ends the watch without
// error; a sink failure ends it with the sink's error.
func (m *Monitor) Watch(ctx context.Context, jobID string, sink Sink) error {
	var prev *Snapshot

	for {
		report, err := m.source.Status(ctx, jobID)
		if err != nil {
			if errors.Is(err, search.ErrNotFound) {
				m.logger.Info("watched job disappeared", "job_id", jobID)
				return nil
			}

			m.logger.Warn("status check failed",
				"job_id", jobID,
				"error", err,
			)

			if waitErr := m.wait(ctx, m.errorBackoff); waitErr != nil {
				return waitErr
			}
			continue
		}

		cur := Snapshot{
			Status:      report.Status,
			ResultCount: len(report.Results),
		}

		if Diff(prev, cur) {
			update := &Update{
				Status:  report.Status,
				Results: report.Results,
				Logs:    report.Logs,
			}
			if sendErr := sink.Send(ctx, update); sendErr != nil {
				m.logger.Debug("sink closed, ending watch",
					"job_id", jobID,
					"error", sendErr,
				)
				return sendErr
			}
			prev = &cur
		}

		if cur.Status.IsTerminal() {
			m.logger.Debug("watched job reached terminal state",
				"job_id", jobID,
				"status", cur.Status,
			)
			return nil
		}

		if waitErr := m.wait(ctx, m.tickInterval); waitErr != nil {
			return waitErr
		}
	}
}

// wait sleeps for d or until the context is cancelled.
func (m *Monitor) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
