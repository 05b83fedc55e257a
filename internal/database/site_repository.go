package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/shopsearch/internal/domain"
)

// SiteRepository handles database operations for the site registry.
type SiteRepository struct {
	db *sqlx.DB
}

// NewSiteRepository creates a new site repository.
func NewSiteRepository(db *sqlx.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// List retrieves all sites ordered by name.
func (r *SiteRepository) List(ctx context.Context) ([]domain.Site, error) {
	var sites []domain.Site
	query := `SELECT name, base_url, search_path, active FROM sites ORDER BY name`

	if err := r.db.SelectContext(ctx, &sites, query); err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	if sites == nil {
		sites = []domain.Site{}
	}

	return sites, nil
}

// ActiveNames returns the names of all currently active sites.
func (r *SiteRepository) ActiveNames(ctx context.Context) ([]string, error) {
	var names []string
	query := `SELECT name FROM sites WHERE active = TRUE ORDER BY name`

	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("failed to list active sites: %w", err)
	}

	return names, nil
}

// Seed inserts a site if it does not already exist. Returns true if the
// site was created.
func (r *SiteRepository) Seed(ctx context.Context, site domain.Site) (bool, error) {
	query := `
		INSERT INTO sites (name, base_url, search_path, active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, site.Name, site.BaseURL, site.SearchPath, site.Active)
	if err != nil {
		return false, fmt.Errorf("failed to seed site %s: %w", site.Name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
