package repository

import (
	"context"
	"errors"
	"time"

	"feedback-survey/internal/models"
)

// ErrDuplicateEmail is returned by UserStore.Create when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// UserStore persists user identities. Lookups return (nil, nil) when nothing matches.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// FeedbackStore is the append-only feedback table.
type FeedbackStore interface {
	// Append assigns ID and SubmittedAt and inserts the record.
	Append(ctx context.Context, feedback *models.Feedback) error
	// ListAll returns every record, newest submission first; equal timestamps
	// put the later insertion first.
	ListAll(ctx context.Context) ([]models.Feedback, error)
}

// SessionRevoker remembers logged-out session token ids until they expire.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

func timestamp(t time.Time) string {
	return t.Format(models.TimestampLayout)
}

var (
	_ UserStore      = (*UserRepo)(nil)
	_ UserStore      = (*PostgresUserRepo)(nil)
	_ UserStore      = (*MemoryUserRepo)(nil)
	_ FeedbackStore  = (*FeedbackRepo)(nil)
	_ FeedbackStore  = (*PostgresFeedbackRepo)(nil)
	_ FeedbackStore  = (*MemoryFeedbackRepo)(nil)
	_ SessionRevoker = (*SessionRepo)(nil)
	_ SessionRevoker = (*RedisSessionRepo)(nil)
	_ SessionRevoker = (*MemorySessionRepo)(nil)
)
