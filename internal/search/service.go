// Package search implements the search job orchestrator: job creation,
// status transitions, result ingestion, and the expiry sweep.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/shopsearch/internal/database"
	"github.com/jonesrussell/shopsearch/internal/domain"
	"github.com/jonesrussell/shopsearch/internal/logger"
)

// ErrNotFound is returned when a job id is unknown.
var ErrNotFound = errors.New("search job not found")

// Provider performs the external product search. The call is best-effort
// and never fails; total provider failure yields zero products.
type Provider interface {
	Search(ctx context.Context, query string, sites []string, filters domain.Filters) []domain.Product
}

// Enqueuer hands a created job id to the background dispatch queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, jobID string) error
}

// StatusReport is the client-facing view of a job.
type StatusReport struct {
	Status  domain.Status    `json:"status"`
	Results []domain.Product `json:"results"`
	Logs    []string         `json:"logs"`
}

// Service owns the search job lifecycle.
type Service struct {
	searches database.SearchStoreInterface
	products database.ProductStoreInterface
	sites    database.SiteStoreInterface
	provider Provider
	queue    Enqueuer
	logger   logger.Interface
	now      func() time.Time
}

// New creates a new orchestrator service.
func New(
	searches database.SearchStoreInterface,
	products database.ProductStoreInterface,
	sites database.SiteStoreInterface,
	prov Provider,
	queue Enqueuer,
	log logger.Interface,
) *Service {
	return &Service{
		searches: searches,
		products: products,
		sites:    sites,
		provider: prov,
		queue:    queue,
		logger:   log,
		now:      time.Now,
	}
}

// Create validates the request, persists a pending job, and enqueues it
// for background execution. Returns the new job id.
//
// Validation rejects an empty prompt, an empty site list, and any site
// name that is not currently active; rejection happens before creation,
// unknown names are never silently dropped.
func (s *Service) Create(ctx context.Context, prompt string, siteNames []string, filters domain.Filters) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", NewValidationError("prompt is required")
	}
	if len(siteNames) == 0 {
		return "", NewValidationError("at least one site must be specified")
	}

	activeNames, err := s.sites.ActiveNames(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load active sites: %w", err)
	}

	active := make(map[string]bool, len(activeNames))
	for _, name := range activeNames {
		active[name] = true
	}

	var invalid []string
	requested := make([]string, 0, len(siteNames))
	seen := make(map[string]bool, len(siteNames))
	for _, name := range siteNames {
		if !active[name] {
			invalid = append(invalid, name)
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		requested = append(requested, name)
	}

	if len(invalid) > 0 {
		sort.Strings(invalid)
		return "", NewValidationError("invalid or inactive sites: %s", strings.Join(invalid, ", "))
	}

	job := &domain.Search{
		ID:        uuid.New().String(),
		Prompt:    prompt,
		Sites:     requested,
		Filters:   filters,
		Status:    domain.StatusPending,
		ExpiresAt: s.now().Add(domain.DefaultSearchTTL),
	}

	if createErr := s.searches.Create(ctx, job); createErr != nil {
		return "", fmt.Errorf("failed to create search job: %w", createErr)
	}

	if enqueueErr := s.queue.Enqueue(ctx, job.ID); enqueueErr != nil {
		return "", fmt.Errorf("failed to enqueue search job: %w", enqueueErr)
	}

	s.logger.Info("created search job",
		"job_id", job.ID,
		"sites", requested,
	)

	return job.ID, nil
}

// Execute runs one job to completion. Returns false without any state
// change if the job id does not exist, and false if execution faulted.
// Faults are converted to status failed, never re-raised; a job that is
// already terminal is left untouched.
func (s *Service) Execute(ctx context.Context, jobID string) (ok bool) {
	job, err := s.searches.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.logger.Warn("execute called for unknown job", "job_id", jobID)
		} else {
			s.logger.Error("failed to load job", "job_id", jobID, "error", err)
		}
		return false
	}

	// A crash below must still leave the job terminal.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job execution panicked",
				"job_id", jobID,
				"panic", fmt.Sprintf("%v", r),
			)
			s.markFailed(ctx, jobID)
			ok = false
		}
	}()

	updated, err := s.searches.UpdateStatus(ctx, jobID, domain.StatusRunning)
	if err != nil {
		s.logger.Error("failed to mark job running", "job_id", jobID, "error", err)
		s.markFailed(ctx, jobID)
		return false
	}
	if !updated {
		// Already terminal, e.g. a redelivered job. Nothing to do.
		s.logger.Info("job already terminal, skipping", "job_id", jobID)
		return true
	}

	s.logger.Info("executing search job",
		"job_id", jobID,
		"prompt", job.Prompt,
	)

	products := s.provider.Search(ctx, job.Prompt, job.Sites, job.Filters)

	saved, err := s.products.InsertBatch(ctx, jobID, products)
	if err != nil {
		s.logger.Error("failed to save products", "job_id", jobID, "error", err)
		s.markFailed(ctx, jobID)
		return false
	}

	if saved > 0 {
		if _, err = s.searches.UpdateStatus(ctx, jobID, domain.StatusCompleted); err != nil {
			s.logger.Error("failed to mark job completed", "job_id", jobID, "error", err)
			return false
		}
		s.logger.Info("search job completed", "job_id", jobID, "products", saved)
	} else {
		s.markFailed(ctx, jobID)
		s.logger.Warn("search job failed, no products found", "job_id", jobID)
	}

	return true
}

// markFailed moves a job to failed, ignoring errors: it runs on paths
// that are already failing.
func (s *Service) markFailed(ctx context.Context, jobID string) {
	if _, err := s.searches.UpdateStatus(ctx, jobID, domain.StatusFailed); err != nil {
		s.logger.Error("failed to mark job failed", "job_id", jobID, "error", err)
	}
}

// Status returns the job's status, its ordered results, and a synthesized
// log narrative. Returns ErrNotFound for unknown ids.
func (s *Service) Status(ctx context.Context, jobID string) (*StatusReport, error) {
	job, err := s.searches.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	results, err := s.products.ListBySearch(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	return &StatusReport{
		Status:  job.Status,
		Results: results,
		Logs:    synthesizeLogs(job, results),
	}, nil
}

// CleanupExpired deletes all expired jobs, cascading to their products,
// and returns the count deleted. Safe to call repeatedly: a second sweep
// over the same jobs deletes nothing.
func (s *Service) CleanupExpired(ctx context.Context) (int, error) {
	deleted, err := s.searches.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to clean up expired jobs: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("cleaned up expired search jobs", "count", deleted)
	}

	return deleted, nil
}
