package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/shopsearch/internal/domain"
	"github.com/jonesrussell/shopsearch/internal/logger"
)

// ProductRepository handles database operations for products.
type ProductRepository struct {
	db     *sqlx.DB
	logger logger.Interface
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *sqlx.DB, log logger.Interface) *ProductRepository {
	return &ProductRepository{db: db, logger: log}
}

// InsertBatch inserts products for a search job inside one transaction.
// A row that fails to insert is logged and skipped; the rest of the batch
// still commits. Returns the number of rows saved.
func (r *ProductRepository) InsertBatch(ctx context.Context, searchID string, products []domain.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO products (search_id, title, price, size, material, image_url, product_url, site, confidence, rating, reviews_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	saved := 0
	for i := range products {
		p := &products[i]

		// A failed statement aborts the surrounding Postgres transaction,
		// so each row gets a savepoint to roll back to on error.
		savepoint := fmt.Sprintf("product_%d", i)
		if _, spErr := tx.ExecContext(ctx, "SAVEPOINT "+savepoint); spErr != nil {
			return 0, fmt.Errorf("failed to create savepoint: %w", spErr)
		}

		_, execErr := tx.ExecContext(
			ctx,
			query,
			searchID,
			p.Title,
			p.Price,
			p.Size,
			p.Material,
			p.ImageURL,
			p.ProductURL,
			p.Site,
			p.Confidence,
			p.Rating,
			p.ReviewsCount,
		)
		if execErr != nil {
			r.logger.Error("failed to save product, skipping",
				"search_id", searchID,
				"title", p.Title,
				"error", execErr,
			)
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
				return 0, fmt.Errorf("failed to roll back to savepoint: %w", rbErr)
			}
			continue
		}
		saved++
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return 0, fmt.Errorf("failed to commit products: %w", commitErr)
	}

	return saved, nil
}

// ListBySearch returns the products for a search job ordered by descending
// confidence, then ascending price. The ordering is a presentation
// contract, not a storage detail.
func (r *ProductRepository) ListBySearch(ctx context.Context, searchID string) ([]domain.Product, error) {
	var products []domain.Product
	query := `
		SELECT id, search_id, title, price, size, material, image_url, product_url, site, confidence, rating, reviews_count
		FROM products
		WHERE search_id = $1
		ORDER BY confidence DESC, price ASC
	`

	err := r.db.SelectContext(ctx, &products, query, searchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}
