package repository

import (
	"context"
	"fmt"
	"time"

	"feedback-survey/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type FeedbackRepo struct {
	collection *mongo.Collection
	ids        *sequence
}

func NewFeedbackRepo(db *mongo.Database) *FeedbackRepo {
	return &FeedbackRepo{
		collection: db.Collection("feedback"),
		ids:        newSequence(db, "feedback"),
	}
}

func (r *FeedbackRepo) Append(ctx context.Context, feedback *models.Feedback) error {
	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	feedback.ID = id
	feedback.SubmittedAt = timestamp(time.Now())
	if _, err := r.collection.InsertOne(ctx, feedback); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "submitted_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	feedback := []models.Feedback{}
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	return feedback, nil
}

// EnsureIndexes creates the indexes used by ListAll and per-user lookups.
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "submitted_at", Value: -1}, {Key: "_id", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
