package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/shopsearch/internal/domain"
)

// SearchRepository handles database operations for search jobs.
type SearchRepository struct {
	db *sqlx.DB
}

// NewSearchRepository creates a new search repository.
func NewSearchRepository(db *sqlx.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Create inserts a new search job into the database.
func (r *SearchRepository) Create(ctx context.Context, search *domain.Search) error {
	query := `
		INSERT INTO searches (id, prompt, sites, filters, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		search.ID,
		search.Prompt,
		search.Sites,
		search.Filters,
		search.Status,
		search.ExpiresAt,
	).Scan(&search.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create search: %w", err)
	}

	return nil
}

// GetByID retrieves a search job by its ID.
func (r *SearchRepository) GetByID(ctx context.Context, id string) (*domain.Search, error) {
	var search domain.Search
	query := `
		SELECT id, prompt, sites, filters, status, created_at, expires_at
		FROM searches
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &search, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("search %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get search: %w", err)
	}

	return &search, nil
}

// UpdateStatus updates a search job's status. Terminal statuses are never
// overwritten, so redelivered jobs and crashed-worker retries stay safe.
// Returns false if the job does not exist or is already terminal.
func (r *SearchRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (bool, error) {
	query := `
		UPDATE searches
		SET status = $1
		WHERE id = $2 AND status NOT IN ($3, $4)
	`

	result, err := r.db.ExecContext(ctx, query, status, id, domain.StatusCompleted, domain.StatusFailed)
	if err != nil {
		return false, fmt.Errorf("failed to update search status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete removes a search job. Products cascade. Deleting a job that is
// already gone is a no-op.
func (r *SearchRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM searches WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete search: %w", err)
	}

	return nil
}

// DeleteExpired removes all search jobs whose expires_at has passed and
// returns the number deleted. Products cascade with their job.
func (r *SearchRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	query := `DELETE FROM searches WHERE expires_at < $1`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired searches: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}
