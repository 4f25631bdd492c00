package calendar

import (
	"testing"
	"time"

	"runcoach/internal/plan"
)

func TestBuildPlanEvents(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	start, _ := time.Parse("2006-01-02", "2025-06-02") // a Monday

	weeks := []plan.FlattenedWeek{{
		Week: "semaine_1",
		Days: []plan.FlattenedDay{
			{Day: "lundi", Session: "repos", Exercises: []plan.Exercise{}},
			{Day: "mercredi", Session: "endurance", Exercises: []plan.Exercise{
				{Nom: "Footing", Duree: "30 minutes", Repos: "5 minutes"},
			}},
		},
	}}

	events := BuildPlanEvents(weeks, start, loc)

	if len(events) != 1 {
		t.Fatalf("expected 1 event (rest day skipped), got %d", len(events))
	}
	e := events[0]
	if e.Summary != "Footing" {
		t.Errorf("Summary = %q", e.Summary)
	}
	if e.Description != "endurance" {
		t.Errorf("Description = %q", e.Description)
	}
	wantStart := time.Date(2025, 6, 4, 18, 0, 0, 0, loc)
	if !e.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", e.Start, wantStart)
	}
	if e.DurationMin != 30 {
		t.Errorf("DurationMin = %d, want 30", e.DurationMin)
	}
	if e.ReminderMin != 30 {
		t.Errorf("ReminderMin = %d, want 30", e.ReminderMin)
	}
	if e.TZID != "Europe/Paris" {
		t.Errorf("TZID = %q", e.TZID)
	}
	if e.UID == "" {
		t.Errorf("UID is empty")
	}
}

func TestBuildPlanEventsSecondWeekOffset(t *testing.T) {
	loc := time.UTC
	start, _ := time.Parse("2006-01-02", "2025-06-02")

	weeks := []plan.FlattenedWeek{
		{Week: "semaine_1", Days: []plan.FlattenedDay{}},
		{Week: "semaine_2", Days: []plan.FlattenedDay{
			{Day: "Vendredi", Session: "fractionné", Exercises: []plan.Exercise{{Nom: "8x400m", Duree: "45 min"}}},
		}},
	}

	events := BuildPlanEvents(weeks, start, loc)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	// week 1 (0-based index 1) * 7 + vendredi (4) = day 11 after start
	want := time.Date(2025, 6, 13, 18, 0, 0, 0, loc)
	if !events[0].Start.Equal(want) {
		t.Errorf("Start = %v, want %v", events[0].Start, want)
	}
	if events[0].DurationMin != 45 {
		t.Errorf("DurationMin = %d, want 45", events[0].DurationMin)
	}
}

func TestBuildPlanEventsSkipsUnknownDayNames(t *testing.T) {
	weeks := []plan.FlattenedWeek{{
		Week: "semaine_1",
		Days: []plan.FlattenedDay{
			{Day: "jour_mystere", Session: "endurance", Exercises: []plan.Exercise{{Nom: "Footing", Duree: "30"}}},
		},
	}}

	events := BuildPlanEvents(weeks, time.Now(), time.UTC)
	if len(events) != 0 {
		t.Fatalf("expected unknown day to be skipped, got %d events", len(events))
	}
}

func TestBuildPlanEventsDefaults(t *testing.T) {
	weeks := []plan.FlattenedWeek{{
		Week: "semaine_1",
		Days: []plan.FlattenedDay{
			{Day: "lundi", Session: "endurance", Exercises: []plan.Exercise{}},
		},
	}}

	start, _ := time.Parse("2006-01-02", "2025-06-02")
	events := BuildPlanEvents(weeks, start, time.UTC)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Summary != "Entraînement" {
		t.Errorf("default title = %q", events[0].Summary)
	}
	if events[0].DurationMin != 30 {
		t.Errorf("default duration = %d", events[0].DurationMin)
	}
}

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		in       string
		fallback int
		want     int
	}{
		{"30 minutes", 30, 30},
		{"45min", 30, 45},
		{"20", 30, 20},
		{"  25 minutes ", 30, 25},
		{"around forty", 30, 30},
		{"", 30, 30},
		{"0 minutes", 30, 30},
	}

	for _, tc := range cases {
		if got := ParseMinutes(tc.in, tc.fallback); got != tc.want {
			t.Errorf("ParseMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTruncateIsRuneSafe(t *testing.T) {
	s := "fractionné très intense avec beaucoup de répétitions et encore plus"
	got := truncate(s, 50)
	if len([]rune(got)) != 50 {
		t.Errorf("truncate length = %d runes", len([]rune(got)))
	}
}
