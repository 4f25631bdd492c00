package mongo

import (
	"context"
	"errors"
	"log"
	"runcoach/internal/domain"
	"runcoach/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollectionName = "running_sessions"

// mongoActivityRepository implements repository.ActivityRepository using MongoDB.
type mongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new instance of mongoActivityRepository.
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		collection: db.Collection(activityCollectionName),
	}
}

// Create inserts a new running session.
func (r *mongoActivityRepository) Create(ctx context.Context, session *domain.RunningSession) (primitive.ObjectID, error) {
	if session.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session user ID is required")
	}
	if session.Date.IsZero() {
		return primitive.NilObjectID, errors.New("session date is required")
	}

	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByUser returns every session of the user, sorted by date ascending.
func (r *mongoActivityRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.RunningSession, error) {
	filter := bson.M{"userId": userID}
	return r.find(ctx, filter)
}

// GetByUserAndDateRange returns sessions with from <= date < to, sorted by date ascending.
func (r *mongoActivityRepository) GetByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.RunningSession, error) {
	filter := bson.M{
		"userId": userID,
		"date": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	}
	return r.find(ctx, filter)
}

func (r *mongoActivityRepository) find(ctx context.Context, filter bson.M) ([]domain.RunningSession, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.RunningSession{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// EnsureActivityIndexes creates required indexes for the running_sessions collection.
func EnsureActivityIndexes(ctx context.Context, collection *mongo.Collection) {
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
	}
	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		log.Printf("WARN: Could not create activity index: %v", err)
	}
}
