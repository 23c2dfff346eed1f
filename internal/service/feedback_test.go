package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedback-survey/internal/models"
	"feedback-survey/internal/repository"
)

func TestFeedbackSubmitAttributesIdentity(t *testing.T) {
	store := repository.NewMemoryFeedbackRepo(func() time.Time {
		return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	})
	svc := NewFeedback(store)
	who := &models.Identity{UserID: 7, Name: "Ada", Email: "ada@x.com"}

	payload := validPayload()
	payload["name"] = "Spoofed"
	rec, err := svc.Submit(context.Background(), payload, who)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if rec.UserID == nil || *rec.UserID != 7 {
		t.Errorf("UserID = %v, want 7", rec.UserID)
	}
	if rec.Name != "Ada" || rec.Email != "ada@x.com" {
		t.Errorf("submitter = (%q, %q), want session identity", rec.Name, rec.Email)
	}
	if rec.SubmittedAt != "2025-06-01 09:30:00" {
		t.Errorf("SubmittedAt = %q", rec.SubmittedAt)
	}
}

func TestFeedbackSubmitAnonymous(t *testing.T) {
	svc := NewFeedback(repository.NewMemoryFeedbackRepo(nil))

	payload := validPayload()
	payload["name"] = "Guest"
	payload["email"] = "guest@x.com"
	rec, err := svc.Submit(context.Background(), payload, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if rec.UserID != nil {
		t.Errorf("UserID = %v, want nil", *rec.UserID)
	}
	if rec.Name != "Guest" || rec.Email != "guest@x.com" {
		t.Errorf("submitter = (%q, %q), want payload values", rec.Name, rec.Email)
	}
}

func TestFeedbackSubmitRejectsWithoutWriting(t *testing.T) {
	store := repository.NewMemoryFeedbackRepo(nil)
	svc := NewFeedback(store)

	payload := validPayload()
	payload["rating"] = float64(0)
	if _, err := svc.Submit(context.Background(), payload, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("Submit() error = %v, want validation error", err)
	}
	rows, _ := store.ListAll(context.Background())
	if len(rows) != 0 {
		t.Errorf("rejected submission was stored")
	}
}

func TestFeedbackResults(t *testing.T) {
	svc := NewFeedback(repository.NewMemoryFeedbackRepo(nil))
	ctx := context.Background()

	for _, r := range []float64{5, 5, 3, 1} {
		p := validPayload()
		p["rating"] = r
		if _, err := svc.Submit(ctx, p, nil); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	res, err := svc.Results(ctx)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if res.Total != 4 || res.AvgRating != 3.5 {
		t.Errorf("Results() total=%d avg=%v, want 4 and 3.5", res.Total, res.AvgRating)
	}
	if res.Ratings.Count("5") != 2 || res.Ratings.Count("3") != 1 || res.Ratings.Count("1") != 1 {
		t.Errorf("ratings = %v", res.Ratings.Keys())
	}
}
