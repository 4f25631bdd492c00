package plan

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Durée Totale", "Duree_Totale"},
		{"semaine_1", "semaine_1"},
		{"séance", "seance"},
		{"fractionné léger", "fractionne_leger"},
		{"déjà  normalisé", "deja_normalise"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tc := range cases {
		got := NormalizeKey(tc.in)
		if got != tc.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	keys := []string{"Durée Totale", "ascii_key", "lundi", "séance à thème", "semaine 2"}
	for _, key := range keys {
		once := NormalizeKey(key)
		twice := NormalizeKey(once)
		if once != twice {
			t.Errorf("NormalizeKey not idempotent for %q: first %q, second %q", key, once, twice)
		}
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	cases := []string{
		"{ not valid json ",
		"",
		"plan: semaine_1",
		`{"a": 1} trailing`,
		`"just a string"`,
		`[1, 2, 3]`,
	}
	for _, raw := range cases {
		if _, err := Parse(raw); !errors.Is(err, ErrInvalidPlanJSON) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidPlanJSON", raw, err)
		}
	}
}

func TestParseNormalizesNestedKeys(t *testing.T) {
	raw := `{"Semaine 1":{"lundi":{"séance":"endurance","Durée Totale":"30 minutes"}}}`
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	weekVal, ok := p.Root().Get("Semaine_1")
	if !ok {
		t.Fatalf("expected week key Semaine_1, have %v", p.Root().Keys())
	}
	week := weekVal.(*Object)
	dayVal, ok := week.Get("lundi")
	if !ok {
		t.Fatalf("expected day key lundi")
	}
	day := dayVal.(*Object)
	if _, ok := day.Get("seance"); !ok {
		t.Errorf("expected normalized key seance, have %v", day.Keys())
	}
	if _, ok := day.Get("Duree_Totale"); !ok {
		t.Errorf("expected normalized key Duree_Totale, have %v", day.Keys())
	}
	// Leaf values are untouched.
	if v, _ := day.Get("seance"); v != "endurance" {
		t.Errorf("seance value = %v, want endurance", v)
	}
}

func TestParsePreservesKeyOrder(t *testing.T) {
	raw := `{"semaine_2":{},"semaine_1":{},"semaine_10":{}}`
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := p.Root().Keys()
	want := []string{"semaine_2", "semaine_1", "semaine_10"}
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v (document order, not sorted)", got, want)
		}
	}
}

func TestParseUnwrapsSingleWrapper(t *testing.T) {
	cases := []string{
		`{"plan_entrainement":{"semaine_1":{"lundi":{"seance":"endurance","exercices":[]}}}}`,
		`{"planning_entrainement":{"semaine_1":{"lundi":{"seance":"endurance","exercices":[]}}}}`,
		`{"plan":{"semaine_1":{"lundi":{"seance":"endurance","exercices":[]}}}}`,
	}
	for _, raw := range cases {
		p, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%s): %v", raw, err)
		}
		if _, ok := p.Root().Get("semaine_1"); !ok {
			t.Errorf("wrapper not unwrapped for %s: keys %v", raw, p.Root().Keys())
		}
	}
}

// A one-week answer with no envelope must keep its week at the top level;
// only plan-named wrapper keys are peeled.
func TestParseKeepsBareSingleWeekPlan(t *testing.T) {
	raw := `{"semaine_1":{"lundi":{"seance":"endurance","exercices":[{"nom":"Footing","duree":"30 minutes"}]},"mercredi":{"seance":"repos","exercices":[]}}}`
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	keys := p.Root().Keys()
	if len(keys) != 1 || keys[0] != "semaine_1" {
		t.Fatalf("root keys = %v, want [semaine_1]", keys)
	}

	weeks := Flatten(p)
	if len(weeks) != 1 || weeks[0].Week != "semaine_1" {
		t.Fatalf("weeks = %+v, want one semaine_1", weeks)
	}
	days := weeks[0].Days
	if len(days) != 2 || days[0].Day != "lundi" || days[1].Day != "mercredi" {
		t.Fatalf("days = %+v, want lundi then mercredi", days)
	}
	if days[0].IsRest || days[0].Session != "endurance" {
		t.Errorf("lundi = %+v, want an endurance training day", days[0])
	}
	if !days[1].IsRest {
		t.Errorf("mercredi = %+v, want a rest day", days[1])
	}
}

func TestPlanMarshalKeepsOrder(t *testing.T) {
	raw := `{"semaine_3":{"b":{}},"semaine_1":{"a":{}}}`
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"semaine_3":{"b":{}},"semaine_1":{"a":{}}}`
	if string(out) != want {
		t.Errorf("Marshal = %s, want %s", out, want)
	}
}
