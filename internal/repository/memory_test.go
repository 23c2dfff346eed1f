package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedback-survey/internal/models"
)

// stepClock returns the queued times in order, repeating the last one.
func stepClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestMemoryFeedbackRepoListAllOrder(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := stepClock(
		t0,
		t0.Add(2*time.Second),
		t0.Add(2*time.Second),
		t0.Add(1*time.Second),
	)
	repo := NewMemoryFeedbackRepo(clock)
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third", "fourth"} {
		f := &models.Feedback{Rating: 3, Category: "Product", Message: msg, Recommend: "Yes"}
		if err := repo.Append(ctx, f); err != nil {
			t.Fatalf("Append(%s) error = %v", msg, err)
		}
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}

	// second and third share a timestamp; the later insertion comes first
	want := []string{"third", "second", "fourth", "first"}
	if len(got) != len(want) {
		t.Fatalf("ListAll() returned %d rows, want %d", len(got), len(want))
	}
	for i, msg := range want {
		if got[i].Message != msg {
			t.Errorf("row %d = %q, want %q", i, got[i].Message, msg)
		}
	}
	if got[0].SubmittedAt != "2025-03-01 10:00:02" {
		t.Errorf("SubmittedAt = %q, want %q", got[0].SubmittedAt, "2025-03-01 10:00:02")
	}
	if got[3].ID != 1 {
		t.Errorf("oldest row ID = %d, want 1", got[3].ID)
	}
}

func TestMemoryFeedbackRepoListAllEmpty(t *testing.T) {
	repo := NewMemoryFeedbackRepo(nil)
	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListAll() = %#v, want empty non-nil slice", got)
	}
}

func TestMemoryUserRepo(t *testing.T) {
	repo := NewMemoryUserRepo(nil)
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID == 0 || u.CreatedAt == "" {
		t.Errorf("Create() did not assign id/created_at: %+v", u)
	}

	dup := &models.User{Name: "Other", Email: "ada@example.com", PasswordHash: "y"}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Create(duplicate) error = %v, want %v", err, ErrDuplicateEmail)
	}

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	if err != nil || byEmail == nil || byEmail.ID != u.ID {
		t.Errorf("FindByEmail() = %+v, %v", byEmail, err)
	}
	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Errorf("FindByEmail(missing) = %+v, %v; want nil, nil", missing, err)
	}
	byID, err := repo.FindByID(ctx, u.ID)
	if err != nil || byID == nil || byID.Email != u.Email {
		t.Errorf("FindByID() = %+v, %v", byID, err)
	}
}

func TestMemorySessionRepo(t *testing.T) {
	repo := NewMemorySessionRepo()
	ctx := context.Background()

	if revoked, _ := repo.IsRevoked(ctx, "abc"); revoked {
		t.Error("unknown token reported as revoked")
	}
	if err := repo.Revoke(ctx, "abc", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if revoked, _ := repo.IsRevoked(ctx, "abc"); !revoked {
		t.Error("revoked token not reported as revoked")
	}
	if err := repo.Revoke(ctx, "old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if revoked, _ := repo.IsRevoked(ctx, "old"); revoked {
		t.Error("expired revocation still reported as revoked")
	}
}
