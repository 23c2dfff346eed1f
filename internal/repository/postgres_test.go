package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"feedback-survey/internal/database"
	"feedback-survey/internal/models"
)

// setupPostgres connects to TEST_PG_DSN and resets the schema; it skips when unset.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}
	ctx := context.Background()
	pool, err := database.ConnectPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("ConnectPostgres() error = %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS feedback; DROP TABLE IF EXISTS users;`); err != nil {
		t.Fatalf("drop tables: %v", err)
	}
	if err := database.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	return pool
}

func TestPostgresUserRepo(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewPostgresUserRepo(pool)
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := repo.Create(ctx, &models.User{Name: "B", Email: "ada@example.com", PasswordHash: "h"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Create(duplicate) error = %v, want %v", err, ErrDuplicateEmail)
	}

	got, err := repo.FindByEmail(ctx, "ada@example.com")
	if err != nil || got == nil || got.ID != u.ID || got.PasswordHash != "hash" {
		t.Errorf("FindByEmail() = %+v, %v", got, err)
	}
	none, err := repo.FindByID(ctx, u.ID+100)
	if err != nil || none != nil {
		t.Errorf("FindByID(missing) = %+v, %v", none, err)
	}
}

func TestPostgresFeedbackRepo(t *testing.T) {
	pool := setupPostgres(t)
	users := NewPostgresUserRepo(pool)
	repo := NewPostgresFeedbackRepo(pool)
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first := &models.Feedback{UserID: &u.ID, Name: u.Name, Email: u.Email, Rating: 4, Category: "Support", Message: "ok", Recommend: "Yes"}
	second := &models.Feedback{Rating: 2, Category: "Product", Message: "meh", Recommend: "No"}
	for _, f := range []*models.Feedback{first, second} {
		if err := repo.Append(ctx, f); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	rows, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ListAll() returned %d rows, want 2", len(rows))
	}
	if rows[0].ID != second.ID {
		t.Errorf("first row ID = %d, want newest %d", rows[0].ID, second.ID)
	}
	if rows[0].UserID != nil {
		t.Errorf("anonymous row UserID = %v, want nil", *rows[0].UserID)
	}
	if rows[1].UserID == nil || *rows[1].UserID != u.ID {
		t.Errorf("attributed row UserID = %v, want %d", rows[1].UserID, u.ID)
	}
}
