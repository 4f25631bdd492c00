package repository

import (
	"context"
	"runcoach/internal/domain"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetProfilePictureKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// ActivityRepository defines the interface for interacting with running sessions.
type ActivityRepository interface {
	Create(ctx context.Context, session *domain.RunningSession) (primitive.ObjectID, error)
	// GetByUser returns every session of the user, sorted by date ascending.
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.RunningSession, error)
	// GetByUserAndDateRange returns the user's sessions with from <= date < to,
	// sorted by date ascending.
	GetByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.RunningSession, error)
}
