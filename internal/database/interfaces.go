package database

import (
	"context"
	"time"

	"github.com/jonesrussell/shopsearch/internal/domain"
)

// SearchStoreInterface defines the search repository operations used by
// the orchestrator.
type SearchStoreInterface interface {
	Create(ctx context.Context, search *domain.Search) error
	GetByID(ctx context.Context, id string) (*domain.Search, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// ProductStoreInterface defines the product repository operations used by
// the orchestrator.
type ProductStoreInterface interface {
	InsertBatch(ctx context.Context, searchID string, products []domain.Product) (int, error)
	ListBySearch(ctx context.Context, searchID string) ([]domain.Product, error)
}

// SiteStoreInterface defines the site registry operations used by the
// orchestrator.
type SiteStoreInterface interface {
	List(ctx context.Context) ([]domain.Site, error)
	ActiveNames(ctx context.Context) ([]string, error)
}

// Compile-time interface checks.
var (
	_ SearchStoreInterface  = (*SearchRepository)(nil)
	_ ProductStoreInterface = (*ProductRepository)(nil)
	_ SiteStoreInterface    = (*SiteRepository)(nil)
)
