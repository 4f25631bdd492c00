package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func parisTime(t *testing.T, value string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	ts, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc)
	if err != nil {
		t.Fatalf("ParseInLocation: %v", err)
	}
	return ts
}

func TestGenerateICS(t *testing.T) {
	events := []Event{{
		UID:         "abc-123",
		Summary:     "Footing",
		Description: "endurance",
		Start:       parisTime(t, "2025-06-04T18:00:00"),
		TZID:        "Europe/Paris",
		DurationMin: 30,
		ReminderMin: 30,
	}}

	payload, err := GenerateICS(events)
	if err != nil {
		t.Fatalf("GenerateICS: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"DTSTART;TZID=Europe/Paris:20250604T180000\r\n",
		"DURATION:PT30M\r\n",
		"SUMMARY:Footing\r\n",
		"DESCRIPTION:endurance\r\n",
		"TRIGGER:-PT30M\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q:\n%s", want, payload)
		}
	}

	if got := strings.Count(payload, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("expected 1 VEVENT, got %d", got)
	}
}

func TestGenerateICSAbortsOnInvalidEvent(t *testing.T) {
	events := []Event{
		{UID: "ok", Summary: "Footing", Start: parisTime(t, "2025-06-04T18:00:00"), DurationMin: 30},
		{UID: "broken", Summary: "", Start: parisTime(t, "2025-06-05T18:00:00"), DurationMin: 30},
	}

	if _, err := GenerateICS(events); !errors.Is(err, ErrMissingSummary) {
		t.Fatalf("expected ErrMissingSummary, got %v", err)
	}
}

func TestEscapeICS(t *testing.T) {
	got := escapeICS("a;b,c\nd\\e")
	want := `a\;b\,c\nd\\e`
	if got != want {
		t.Errorf("escapeICS = %q, want %q", got, want)
	}
}
