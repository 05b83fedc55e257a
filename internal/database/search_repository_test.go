package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/shopsearch/internal/database"
	"github.com/jonesrussell/shopsearch/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "postgres"), mock
}

func TestSearchRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSearchRepository(db)
	ctx := context.Background()

	createdAt := time.Now()

	mock.ExpectQuery("INSERT INTO searches").
		WithArgs(
			"job-123",
			"red cotton kurta",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			domain.StatusPending,
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	search := &domain.Search{
		ID:        "job-123",
		Prompt:    "red cotton kurta",
		Sites:     domain.StringList{"meesho"},
		Status:    domain.StatusPending,
		ExpiresAt: createdAt.Add(domain.DefaultSearchTTL),
	}

	if err := repo.Create(ctx, search); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !search.CreatedAt.Equal(createdAt) {
		t.Errorf("expected created_at to be populated from the database")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSearchRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSearchRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM searches").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSearchRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE searches").
		WithArgs(domain.StatusRunning, "job-123", domain.StatusCompleted, domain.StatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateStatus(ctx, "job-123", domain.StatusRunning)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if !updated {
		t.Error("expected updated=true")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSearchRepository_UpdateStatus_TerminalGuard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSearchRepository(db)

	// The WHERE clause excludes terminal rows, so the update affects
	// nothing and the caller sees updated=false.
	mock.ExpectExec("UPDATE searches").
		WithArgs(domain.StatusRunning, "done-job", domain.StatusCompleted, domain.StatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.UpdateStatus(context.Background(), "done-job", domain.StatusRunning)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated {
		t.Error("expected updated=false for terminal job")
	}
}

func TestSearchRepository_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewSearchRepository(db)

	now := time.Now()
	mock.ExpectExec("DELETE FROM searches WHERE expires_at").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpired(context.Background(), now)
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", deleted)
	}
}
