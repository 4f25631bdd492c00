package plan

import "testing"

func mustParse(t *testing.T, raw string) *Plan {
	t.Helper()
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p
}

func TestFlattenPreservesCardinalityAndOrder(t *testing.T) {
	raw := `{
		"semaine_1": {
			"mercredi": {"seance": "endurance", "exercices": [{"nom": "Footing", "duree": "30 minutes"}]},
			"lundi":    {"seance": "repos", "exercices": []}
		},
		"semaine_2": {
			"vendredi": {"seance": "fractionné", "exercices": [{"nom": "8x400m", "duree": "40 minutes", "repos": "2 minutes"}]}
		}
	}`
	weeks := Flatten(mustParse(t, raw))

	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if weeks[0].Week != "semaine_1" || weeks[1].Week != "semaine_2" {
		t.Errorf("week order = %q, %q", weeks[0].Week, weeks[1].Week)
	}
	if len(weeks[0].Days) != 2 || len(weeks[1].Days) != 1 {
		t.Fatalf("day counts = %d, %d", len(weeks[0].Days), len(weeks[1].Days))
	}
	// Document order, not weekday order: mercredi comes first because the
	// model wrote it first.
	if weeks[0].Days[0].Day != "mercredi" || weeks[0].Days[1].Day != "lundi" {
		t.Errorf("day order = %q, %q", weeks[0].Days[0].Day, weeks[0].Days[1].Day)
	}
}

func TestFlattenRestRules(t *testing.T) {
	raw := `{
		"semaine_1": {
			"lundi":    {"seance": "endurance", "exercices": [{"nom": "Footing", "duree": "30 minutes"}]},
			"mardi":    {"seance": "endurance", "exercices": []},
			"mercredi": {"seance": "repos"},
			"jeudi":    {}
		}
	}`
	days := Flatten(mustParse(t, raw))[0].Days

	// A day with exercises is never rest.
	if days[0].IsRest {
		t.Errorf("lundi with exercises marked as rest")
	}
	// A day with an empty exercise list is always rest, whatever the label says.
	if !days[1].IsRest {
		t.Errorf("mardi with no exercises not marked as rest")
	}
	if days[1].Session != "endurance" {
		t.Errorf("session label rewritten: %q", days[1].Session)
	}
	// Missing exercices field defaults to empty, hence rest.
	if !days[2].IsRest || days[2].Session != RestSession {
		t.Errorf("mercredi: IsRest=%v session=%q", days[2].IsRest, days[2].Session)
	}
	// Missing seance defaults to the rest sentinel.
	if days[3].Session != RestSession {
		t.Errorf("jeudi default session = %q, want %q", days[3].Session, RestSession)
	}
}

func TestFlattenAcceptsAnyDayName(t *testing.T) {
	raw := `{"semaine_1": {"jour_de_course": {"seance": "endurance", "exercices": [{"nom": "Footing", "duree": "20"}]}}}`
	weeks := Flatten(mustParse(t, raw))
	if len(weeks[0].Days) != 1 || weeks[0].Days[0].Day != "jour_de_course" {
		t.Fatalf("arbitrary day key not preserved: %+v", weeks[0].Days)
	}
}

func TestFlattenToleratesLooseValues(t *testing.T) {
	// Numeric duration and a non-object entry in the exercise list.
	raw := `{"semaine_1": {"lundi": {"seance": "endurance", "exercices": [{"nom": "Footing", "duree": 30}, "stretching"]}}}`
	days := Flatten(mustParse(t, raw))[0].Days
	if len(days[0].Exercises) != 1 {
		t.Fatalf("expected 1 usable exercise, got %d", len(days[0].Exercises))
	}
	if days[0].Exercises[0].Duree != "30" {
		t.Errorf("numeric duree = %q, want \"30\"", days[0].Exercises[0].Duree)
	}
}

func TestFlattenNilPlan(t *testing.T) {
	if got := Flatten(nil); len(got) != 0 {
		t.Fatalf("Flatten(nil) = %v", got)
	}
}
