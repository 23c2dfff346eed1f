package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"feedback-survey/internal/models"
)

const pgUniqueViolation = "23505"

// PostgresUserRepo stores users in the users table.
type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = timestamp(time.Now())
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `SELECT id, name, email, password, COALESCE(created_at, '') FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, `SELECT id, name, email, password, COALESCE(created_at, '') FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepo) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// PostgresFeedbackRepo stores feedback in the feedback table.
type PostgresFeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresFeedbackRepo(pool *pgxpool.Pool) *PostgresFeedbackRepo {
	return &PostgresFeedbackRepo{pool: pool}
}

func (r *PostgresFeedbackRepo) Append(ctx context.Context, f *models.Feedback) error {
	f.SubmittedAt = timestamp(time.Now())
	err := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (user_id, name, email, rating, category, message, recommend, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		f.UserID, f.Name, f.Email, f.Rating, f.Category, f.Message, f.Recommend, f.SubmittedAt,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *PostgresFeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(rating, 0),
		       COALESCE(category, ''), COALESCE(message, ''), COALESCE(recommend, ''), COALESCE(submitted_at, '')
		FROM feedback
		ORDER BY submitted_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	feedback := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.Email, &f.Rating,
			&f.Category, &f.Message, &f.Recommend, &f.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		feedback = append(feedback, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return feedback, nil
}
