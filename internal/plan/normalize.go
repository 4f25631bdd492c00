package plan

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidPlanJSON is returned when the model's response is not valid JSON.
// No repair or best-effort parsing is attempted.
var ErrInvalidPlanJSON = errors.New("invalid plan JSON from model")

var whitespaceRun = regexp.MustCompile(`\s+`)

// keyTransformer decomposes accented characters, drops the combining marks
// and recomposes. Applying it twice is a no-op.
var keyTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey strips diacritics from a JSON object key and replaces
// whitespace runs with underscores. The model is inconsistent about accents
// and spacing in key names ("Durée Totale" vs "duree_totale"), so every key
// goes through this before the plan is used. Idempotent.
func NormalizeKey(key string) string {
	stripped, _, err := transform.String(keyTransformer, key)
	if err != nil {
		// Malformed input rune; keep the key as-is rather than dropping it.
		stripped = key
	}
	return whitespaceRun.ReplaceAllString(stripped, "_")
}

// normalizeValue walks a decoded JSON value and normalizes every object key.
// Structure and leaf values are untouched.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case *Object:
		normalized := NewObject()
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			normalized.Set(NormalizeKey(key), normalizeValue(child))
		}
		return normalized
	case []any:
		for i, item := range v {
			v[i] = normalizeValue(item)
		}
		return v
	default:
		return v
	}
}

// Plan is the normalized training plan: weeks in model order, each holding
// its days in model order.
type Plan struct {
	root *Object
}

// Root exposes the underlying week mapping.
func (p *Plan) Root() *Object {
	return p.root
}

// MarshalJSON serializes the plan with weeks and days in their original order.
func (p *Plan) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.root)
}

// Parse turns the raw model response into a normalized Plan.
//
// The text must be strict JSON with an object at the top level; anything else
// fails with ErrInvalidPlanJSON. Keys are normalized recursively. When the top
// level is a single wrapper key holding the week mapping (the model often
// answers {"plan_entrainement": {...}}), the wrapper is unwrapped.
func Parse(raw string) (*Plan, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, ErrInvalidPlanJSON
	}
	// Reject trailing garbage after the document, like JSON.parse does.
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrInvalidPlanJSON
	}

	root, ok := normalizeValue(value).(*Object)
	if !ok {
		return nil, ErrInvalidPlanJSON
	}

	return &Plan{root: unwrap(root)}, nil
}

// unwrap peels the envelope key the model sometimes wraps the week mapping in
// ("plan", "plan_entrainement", "planning_entrainement"). Only keys naming a
// plan are peeled; a single-week answer like {"semaine_1": {...}} keeps its
// week at the top level.
func unwrap(root *Object) *Object {
	if root.Len() != 1 {
		return root
	}
	key := root.Keys()[0]
	if !strings.HasPrefix(strings.ToLower(key), "plan") {
		return root
	}
	if inner, ok := objectAt(root, key); ok {
		return inner
	}
	return root
}
