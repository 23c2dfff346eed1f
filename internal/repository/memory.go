package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"feedback-survey/internal/models"
)

// MemoryUserRepo is a process-local UserStore.
type MemoryUserRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]models.User
	emails map[string]int64
	now    func() time.Time
}

func NewMemoryUserRepo(now func() time.Time) *MemoryUserRepo {
	if now == nil {
		now = time.Now
	}
	return &MemoryUserRepo{
		byID:   make(map[int64]models.User),
		emails: make(map[string]int64),
		now:    now,
	}
}

func (r *MemoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.emails[user.Email]; ok {
		return ErrDuplicateEmail
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = timestamp(r.now())
	r.byID[user.ID] = *user
	r.emails[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.emails[email]
	if !ok {
		return nil, nil
	}
	u := r.byID[id]
	return &u, nil
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// MemoryFeedbackRepo is a process-local FeedbackStore.
type MemoryFeedbackRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   []models.Feedback
	now    func() time.Time
}

func NewMemoryFeedbackRepo(now func() time.Time) *MemoryFeedbackRepo {
	if now == nil {
		now = time.Now
	}
	return &MemoryFeedbackRepo{now: now}
}

func (r *MemoryFeedbackRepo) Append(_ context.Context, feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	feedback.ID = r.nextID
	feedback.SubmittedAt = timestamp(r.now())
	r.rows = append(r.rows, *feedback)
	return nil
}

func (r *MemoryFeedbackRepo) ListAll(_ context.Context) ([]models.Feedback, error) {
	r.mu.RLock()
	out := make([]models.Feedback, len(r.rows))
	copy(out, r.rows)
	r.mu.RUnlock()

	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.Feedback) int {
		return strings.Compare(b.SubmittedAt, a.SubmittedAt)
	})
	return out, nil
}

// MemorySessionRepo is a process-local SessionRevoker.
type MemorySessionRepo struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{revoked: make(map[string]time.Time)}
}

func (r *MemorySessionRepo) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, exp := range r.revoked {
		if now.After(exp) {
			delete(r.revoked, id)
		}
	}
	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *MemorySessionRepo) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	return time.Now().Before(exp), nil
}
