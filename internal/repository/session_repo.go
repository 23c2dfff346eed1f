package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedback-survey/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SessionRepo keeps revoked session ids in MongoDB; a TTL index drops them once expired.
type SessionRepo struct {
	collection *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) *SessionRepo {
	return &SessionRepo{
		collection: db.Collection("revoked_sessions"),
	}
}

func (r *SessionRepo) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	revoked := models.RevokedSession{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tokenID}, revoked, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (r *SessionRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked models.RevokedSession
	err := r.collection.FindOne(ctx, bson.M{"_id": tokenID}).Decode(&revoked)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("find revoked session: %w", err)
	}
	// the TTL monitor runs once a minute, so expired rows may linger
	return !revoked.IsExpired(), nil
}

// EnsureIndexes creates the TTL index on expires_at.
func (r *SessionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}
