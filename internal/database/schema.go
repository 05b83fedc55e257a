package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema holds the DDL for the service's tables. Product rows are owned
// by their search row; the cascade keeps deletion atomic.
const schema = `
CREATE TABLE IF NOT EXISTS sites (
	name        TEXT PRIMARY KEY,
	base_url    TEXT NOT NULL,
	search_path TEXT NOT NULL,
	active      BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS searches (
	id         UUID PRIMARY KEY,
	prompt     TEXT NOT NULL,
	sites      JSONB NOT NULL,
	filters    JSONB NOT NULL DEFAULT '{}',
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_searches_status ON searches (status);
CREATE INDEX IF NOT EXISTS idx_searches_expires_at ON searches (expires_at);

CREATE TABLE IF NOT EXISTS products (
	id            BIGSERIAL PRIMARY KEY,
	search_id     UUID NOT NULL REFERENCES searches (id) ON DELETE CASCADE,
	title         TEXT NOT NULL,
	price         NUMERIC(10, 2) NOT NULL,
	size          TEXT NOT NULL DEFAULT '',
	material      TEXT NOT NULL DEFAULT '',
	image_url     TEXT NOT NULL DEFAULT '',
	product_url   TEXT NOT NULL DEFAULT '',
	site          TEXT NOT NULL,
	confidence    DOUBLE PRECISION NOT NULL DEFAULT 1.0,
	rating        DOUBLE PRECISION,
	reviews_count INTEGER
);

CREATE INDEX IF NOT EXISTS idx_products_search_id ON products (search_id);
`

// EnsureSchema creates the service's tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
