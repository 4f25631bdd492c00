package service

import (
	"context"
	"errors"
	"runcoach/internal/llm"
	"runcoach/internal/plan"
	"runcoach/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEmptyMessage = errors.New("message cannot be empty")
	ErrChatFailed   = errors.New("the coach could not answer")
)

// ChatModel is the single LLM round trip the chat and plan services depend on.
type ChatModel interface {
	ChatCompletion(ctx context.Context, messages []llm.Message) (string, error)
}

// --- Service Interface ---
type ChatService interface {
	// Send forwards the user's message to the coach persona and returns its reply.
	Send(ctx context.Context, userID primitive.ObjectID, message string) (string, error)
}

// --- Service Implementation ---

type chatService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	model        ChatModel
}

// NewChatService creates a new instance of chatService.
func NewChatService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository, model ChatModel) ChatService {
	return &chatService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		model:        model,
	}
}

// Send builds a coaching persona from the user's profile and run history and
// performs one completion. No retry; a failed call surfaces as ErrChatFailed.
func (s *chatService) Send(ctx context.Context, userID primitive.ObjectID, message string) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}

	profile := plan.CoachProfile{}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		profile.Level = string(user.Profile.Level)
		profile.Goal = user.Profile.Goal
		if user.Profile.Age > 0 {
			age := user.Profile.Age
			profile.Age = &age
		}
		if user.Profile.WeightKg > 0 {
			weight := user.Profile.WeightKg
			profile.WeightKg = &weight
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	sessions, err := s.activityRepo.GetByUser(ctx, userID)
	if err == nil {
		for _, session := range sessions {
			profile.RecentRuns = append(profile.RecentRuns, plan.RecentRun{
				Date:         session.Date.Format("2006-01-02"),
				DistanceKm:   session.DistanceKm,
				DurationMin:  session.DurationMin,
				AvgHeartRate: session.HeartRate.Average,
			})
		}
	}

	reply, err := s.model.ChatCompletion(ctx, []llm.Message{
		{Role: "system", Content: plan.BuildCoachPrompt(profile)},
		{Role: "user", Content: message},
	})
	if err != nil {
		return "", ErrChatFailed
	}
	return reply, nil
}
