package service

import (
	"context"
	"errors"
	"io"
	"log"
	"path"
	"runcoach/internal/domain"
	"runcoach/internal/repository"
	"runcoach/internal/storage"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidWeekRange = errors.New("invalid week range: expected YYYY-Www")
	ErrInvalidSession   = errors.New("session date, distance and duration are required")
	ErrPictureUpload    = errors.New("failed to store profile picture")
)

// UserInfo is the profile page payload: personal data plus dashboard aggregates.
type UserInfo struct {
	Profile    ProfileInfo       `json:"profile"`
	Statistics domain.Statistics `json:"statistics"`
}

// ProfileInfo mirrors domain.Profile with the picture key resolved to a URL.
type ProfileInfo struct {
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	Age            int          `json:"age,omitempty"`
	Gender         string       `json:"gender,omitempty"`
	Height         int          `json:"height,omitempty"`
	WeightKg       int          `json:"weight,omitempty"`
	Level          domain.Level `json:"level,omitempty"`
	Goal           string       `json:"goal,omitempty"`
	ProfilePicture string       `json:"profilePicture"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// --- Service Interface ---
type UserService interface {
	GetUserInfo(ctx context.Context, userID primitive.ObjectID) (*UserInfo, error)
	// GetActivity returns the sessions whose ISO week lies in [startWeek, endWeek].
	GetActivity(ctx context.Context, userID primitive.ObjectID, startWeek, endWeek string) ([]domain.RunningSession, error)
	RecordSession(ctx context.Context, session *domain.RunningSession) error
	UploadProfilePicture(ctx context.Context, userID primitive.ObjectID, contentType string, body io.Reader) error
}

// --- Service Implementation ---

type userService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	fileStorage  storage.FileStorage
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		fileStorage:  fileStorage,
	}
}

// GetUserInfo loads the user and aggregates their sessions for the dashboard.
func (s *userService) GetUserInfo(ctx context.Context, userID primitive.ObjectID) (*UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.activityRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := &UserInfo{
		Profile: ProfileInfo{
			FirstName: user.Profile.FirstName,
			LastName:  user.Profile.LastName,
			Age:       user.Profile.Age,
			Gender:    user.Profile.Gender,
			Height:    user.Profile.Height,
			WeightKg:  user.Profile.WeightKg,
			Level:     user.Profile.Level,
			Goal:      user.Profile.Goal,
			CreatedAt: user.CreatedAt,
		},
		Statistics: computeStatistics(sessions, time.Now()),
	}

	if user.Profile.PictureKey != "" {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.Profile.PictureKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			// A broken picture link should not take down the profile page.
			log.Printf("WARN: could not presign picture for user %s: %v", userID.Hex(), err)
		} else {
			info.Profile.ProfilePicture = url
		}
	}

	return info, nil
}

// GetActivity returns the user's sessions within the ISO week range, both
// bounds inclusive. The week bounds become a date range so the database does
// the filtering.
func (s *userService) GetActivity(ctx context.Context, userID primitive.ObjectID, startWeek, endWeek string) ([]domain.RunningSession, error) {
	if !validWeek(startWeek) || !validWeek(endWeek) || startWeek > endWeek {
		return nil, ErrInvalidWeekRange
	}

	from := weekStart(startWeek)
	to := weekStart(endWeek).AddDate(0, 0, 7)
	return s.activityRepo.GetByUserAndDateRange(ctx, userID, from, to)
}

// RecordSession stores a new run.
func (s *userService) RecordSession(ctx context.Context, session *domain.RunningSession) error {
	if session.Date.IsZero() || session.DistanceKm <= 0 || session.DurationMin <= 0 {
		return ErrInvalidSession
	}
	_, err := s.activityRepo.Create(ctx, session)
	return err
}

// UploadProfilePicture stores the picture in object storage and records its key.
func (s *userService) UploadProfilePicture(ctx context.Context, userID primitive.ObjectID, contentType string, body io.Reader) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	objectKey := path.Join("profiles", userID.Hex(), uuid.NewString())
	if err := s.fileStorage.Upload(ctx, objectKey, contentType, body); err != nil {
		return ErrPictureUpload
	}

	if err := s.userRepo.SetProfilePictureKey(ctx, userID, objectKey); err != nil {
		return err
	}

	// Best effort cleanup of the previous picture.
	if user.Profile.PictureKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, user.Profile.PictureKey); err != nil {
			log.Printf("WARN: could not delete previous picture %s: %v", user.Profile.PictureKey, err)
		}
	}
	return nil
}

// computeStatistics aggregates the dashboard numbers. RestDays counts the days
// of the trailing 7-day window without a recorded session.
func computeStatistics(sessions []domain.RunningSession, now time.Time) domain.Statistics {
	stats := domain.Statistics{TotalSessions: len(sessions)}

	activeDays := map[string]bool{}
	windowStart := now.AddDate(0, 0, -6)

	for _, session := range sessions {
		stats.TotalDistance += session.DistanceKm
		stats.TotalDuration += session.DurationMin
		stats.CaloriesBurned += session.CaloriesBurned

		if !session.Date.Before(truncateToDay(windowStart)) && !session.Date.After(now) {
			activeDays[session.Date.Format("2006-01-02")] = true
		}
	}

	stats.RestDays = 7 - len(activeDays)
	if stats.RestDays < 0 {
		stats.RestDays = 0
	}
	return stats
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart returns the Monday (UTC) of an ISO 8601 "YYYY-Www" week. The
// Monday of week 1 is the Monday of the week containing January 4th.
func weekStart(week string) time.Time {
	year, _ := strconv.Atoi(week[:4])
	num, _ := strconv.Atoi(week[6:])
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -(int(jan4.Weekday())+6)%7)
	return monday.AddDate(0, 0, (num-1)*7)
}

// validWeek checks the "YYYY-Www" shape without being strict about week 53.
func validWeek(s string) bool {
	if len(s) != 8 || s[4] != '-' || s[5] != 'W' {
		return false
	}
	for _, i := range []int{0, 1, 2, 3, 6, 7} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
