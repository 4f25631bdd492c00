package calendar

import (
	"strconv"
	"strings"
	"time"

	"runcoach/internal/plan"

	"github.com/google/uuid"
)

// Training events are fixed at 18:00 local time with a 30 minute reminder.
const (
	trainingHour       = 18
	defaultDurationMin = 30
	reminderMin        = 30
	defaultTitle       = "Entraînement"
	descriptionLimit   = 50
)

// weekday maps Monday-first French day names to their offset in the week.
var weekday = map[string]int{
	"lundi":    0,
	"mardi":    1,
	"mercredi": 2,
	"jeudi":    3,
	"vendredi": 4,
	"samedi":   5,
	"dimanche": 6,
}

// BuildPlanEvents converts a flattened plan into calendar events, one per
// scheduled (non-rest) day.
//
// The event date is start + (weekIndex*7 + dayOffset) days evaluated in loc,
// assuming start falls on a Monday like the plan's first week does. Days whose
// name is not a known weekday are skipped.
func BuildPlanEvents(weeks []plan.FlattenedWeek, start time.Time, loc *time.Location) []Event {
	events := []Event{}

	for w, week := range weeks {
		for _, day := range week.Days {
			if day.Session == plan.RestSession {
				continue
			}

			offset, known := weekday[strings.ToLower(day.Day)]
			if !known {
				continue
			}

			date := start.AddDate(0, 0, w*7+offset)
			eventStart := time.Date(date.Year(), date.Month(), date.Day(), trainingHour, 0, 0, 0, loc)

			title := defaultTitle
			durationMin := defaultDurationMin
			if len(day.Exercises) > 0 {
				if day.Exercises[0].Nom != "" {
					title = day.Exercises[0].Nom
				}
				durationMin = ParseMinutes(day.Exercises[0].Duree, defaultDurationMin)
			}

			events = append(events, Event{
				UID:         uuid.NewString(),
				Summary:     title,
				Description: truncate(day.Session, descriptionLimit),
				Start:       eventStart,
				TZID:        loc.String(),
				DurationMin: durationMin,
				ReminderMin: reminderMin,
			})
		}
	}

	return events
}

// ParseMinutes reads the leading integer of a loosely formatted duration
// ("30 minutes", "45min", "20"). Anything without a leading number yields
// the fallback.
func ParseMinutes(s string, fallback int) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return fallback
	}
	minutes, err := strconv.Atoi(s[:end])
	if err != nil || minutes <= 0 {
		return fallback
	}
	return minutes
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
