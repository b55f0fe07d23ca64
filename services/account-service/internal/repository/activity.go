package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
)

var ErrActivityNotFound = errors.New("login activity not found")

// ActivityRepository records successful logins per account.
type ActivityRepository interface {
	// RecordLogin increments the login counter for email and sets its last login time.
	RecordLogin(ctx context.Context, email string, at time.Time) error

	// GetActivity returns the login activity for email or ErrActivityNotFound.
	GetActivity(ctx context.Context, email string) (*model.LoginActivity, error)
}

const activityCollection = "login_activity"

type activityMongoRepository struct {
	db *mongo.Database
}

// NewActivityMongoRepository creates a MongoDB backed ActivityRepository and ensures its indexes exist.
func NewActivityMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ActivityRepository {
	collection := db.Collection(activityCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create login activity indexes")
	}

	return &activityMongoRepository{db: db}
}

func (r *activityMongoRepository) RecordLogin(ctx context.Context, email string, at time.Time) error {
	now := time.Now().UTC()

	_, err := r.db.Collection(activityCollection).UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{
			"$inc":         bson.M{"total_logins": 1},
			"$set":         bson.M{"last_login_at": at.UTC(), "updated_at": now},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}

	return nil
}

func (r *activityMongoRepository) GetActivity(ctx context.Context, email string) (*model.LoginActivity, error) {
	var activity model.LoginActivity
	err := r.db.Collection(activityCollection).FindOne(ctx, bson.M{"email": email}).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrActivityNotFound
		}

		return nil, fmt.Errorf("find login activity: %w", err)
	}

	return &activity, nil
}
