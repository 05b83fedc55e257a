// Package job runs background maintenance for search jobs.
package job

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/shopsearch/internal/logger"
)

// DefaultSweepSchedule runs the expiry sweep at the top of every hour.
const DefaultSweepSchedule = "0 * * * *"

// Cleaner deletes expired search jobs and reports how many went.
type Cleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// Trimmer bounds the job queue's backlog.
type Trimmer interface {
	TrimStream(ctx context.Context) error
	QueueDepth(ctx context.Context) (int64, error)
}

// Sweeper periodically removes expired search jobs and their products,
// and trims the job queue's delivered history.
type Sweeper struct {
	cleaner  Cleaner
	trimmer  Trimmer
	logger   logger.Interface
	schedule string
	cron     *cron.Cron

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// NewSweeper creates a Sweeper. An empty schedule uses the hourly
// default; a nil trimmer skips queue maintenance.
func NewSweeper(cleaner Cleaner, trimmer Trimmer, schedule string, log logger.Interface) *Sweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	return &Sweeper{
		cleaner:  cleaner,
		trimmer:  trimmer,
		logger:   log,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the sweep schedule and starts the cron runner. The
// first sweep also runs immediately, so a restart does not postpone
// cleanup by up to an hour.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("sweeper is already running")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		s.cancel()
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("expiry sweeper started", "schedule", s.schedule)

	go s.sweep()

	return nil
}

// Stop stops the cron runner and waits for an in-flight sweep.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.running = false

	s.logger.Info("expiry sweeper stopped")
}

// sweep runs one cleanup pass.
func (s *Sweeper) sweep() {
	deleted, err := s.cleaner.CleanupExpired(s.ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", "error", err)
		return
	}

	s.logger.Info("expiry sweep finished", "deleted", deleted)

	s.trimQueue()
}

// trimQueue caps the job stream so acknowledged history does not grow
// unbounded between sweeps.
func (s *Sweeper) trimQueue() {
	if s.trimmer == nil {
		return
	}

	if err := s.trimmer.TrimStream(s.ctx); err != nil {
		s.logger.Error("queue trim failed", "error", err)
		return
	}

	depth, err := s.trimmer.QueueDepth(s.ctx)
	if err != nil {
		s.logger.Warn("failed to read queue depth", "error", err)
		return
	}

	s.logger.Info("queue trimmed", "depth", depth)
}
