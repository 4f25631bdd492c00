package service

import (
	"context"
	"errors"
	"log"
	"runcoach/internal/calendar"
	"runcoach/internal/llm"
	"runcoach/internal/plan"
	"time"
)

// --- Error Definitions ---
var (
	ErrMissingPlanFields = errors.New("please fill all required fields")
	ErrPlanGeneration    = errors.New("plan generation failed")
	ErrBadStartDate      = errors.New("start date must be YYYY-MM-DD")
	ErrUnknownTimezone   = errors.New("unknown timezone")
	ErrCalendarExport    = errors.New("could not generate calendar")
)

// GeneratePlanInput carries one plan-generation request. All fields are
// required; validation happens before any outbound call.
type GeneratePlanInput struct {
	Level         string
	Goal          string
	AvailableDays []string
	Age           *int
	Weight        *int
	StartDate     string // YYYY-MM-DD
}

// GeneratedPlan bundles the normalized plan with its flattened form.
type GeneratedPlan struct {
	Plan  *plan.Plan
	Weeks []plan.FlattenedWeek
}

// --- Service Interface ---
type PlanService interface {
	// Generate runs the pipeline: prompt → one model call → parse + normalize
	// → flatten. Exactly one outbound request per accepted input.
	Generate(ctx context.Context, input GeneratePlanInput) (*GeneratedPlan, error)

	// ExportICS turns a flattened plan into an iCalendar payload.
	ExportICS(weeks []plan.FlattenedWeek, startDate, timezone string) (string, error)
}

// --- Service Implementation ---

type planService struct {
	model ChatModel
}

// NewPlanService creates a new instance of planService.
func NewPlanService(model ChatModel) PlanService {
	return &planService{model: model}
}

func (s *planService) Generate(ctx context.Context, input GeneratePlanInput) (*GeneratedPlan, error) {
	if input.Level == "" || input.Goal == "" || len(input.AvailableDays) == 0 ||
		input.Age == nil || input.Weight == nil || input.StartDate == "" {
		return nil, ErrMissingPlanFields
	}
	if _, err := time.Parse("2006-01-02", input.StartDate); err != nil {
		return nil, ErrBadStartDate
	}

	prompt := plan.BuildPlanPrompt(input.Level, input.Goal, input.AvailableDays, input.Age, input.Weight)

	raw, err := s.model.ChatCompletion(ctx, []llm.Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: plan.PlanUserMessage},
	})
	if err != nil {
		log.Printf("ERROR: plan completion failed: %v", err)
		return nil, ErrPlanGeneration
	}

	parsed, err := plan.Parse(raw)
	if err != nil {
		// Keep the raw text server-side for diagnosis; the user only sees
		// that the model's answer was unusable.
		log.Printf("ERROR: invalid plan JSON from model: %q", raw)
		return nil, err
	}

	return &GeneratedPlan{
		Plan:  parsed,
		Weeks: plan.Flatten(parsed),
	}, nil
}

func (s *planService) ExportICS(weeks []plan.FlattenedWeek, startDate, timezone string) (string, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return "", ErrBadStartDate
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", ErrUnknownTimezone
	}

	events := calendar.BuildPlanEvents(weeks, start, loc)

	payload, err := calendar.GenerateICS(events)
	if err != nil {
		log.Printf("ERROR: ICS generation failed: %v", err)
		return "", ErrCalendarExport
	}
	return payload, nil
}
