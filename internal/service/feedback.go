package service

import (
	"context"

	"feedback-survey/internal/models"
	"feedback-survey/internal/repository"
)

// Feedback validates and stores submissions and computes dashboard results.
type Feedback struct {
	store repository.FeedbackStore
}

func NewFeedback(store repository.FeedbackStore) *Feedback {
	return &Feedback{store: store}
}

// Submit validates payload and appends it. A nil submitter stores the optional
// name and email from the payload without a user reference.
func (s *Feedback) Submit(ctx context.Context, payload map[string]any, submitter *models.Identity) (*models.Feedback, error) {
	sub, err := ValidateSubmission(payload)
	if err != nil {
		return nil, err
	}

	record := &models.Feedback{
		Rating:    sub.Rating,
		Category:  sub.Category,
		Message:   sub.Message,
		Recommend: sub.Recommend,
	}
	if submitter != nil {
		uid := submitter.UserID
		record.UserID = &uid
		record.Name = submitter.Name
		record.Email = submitter.Email
	} else {
		record.Name = sub.Name
		record.Email = sub.Email
	}

	if err := s.store.Append(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Results scans every stored record and aggregates it.
func (s *Feedback) Results(ctx context.Context) (Results, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return Results{}, err
	}
	return Aggregate(records), nil
}
