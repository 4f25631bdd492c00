package plan

import "encoding/json"

// RestSession is the session label the model uses for recovery days.
const RestSession = "repos"

// Exercise is one exercise of a training day. Durations stay loose strings
// ("30 minutes") because that is how the model writes them; parsing happens
// at the calendar boundary.
type Exercise struct {
	Nom   string `json:"nom"`
	Duree string `json:"duree"`
	Repos string `json:"repos,omitempty"`
}

// FlattenedDay is one day of a week, ready for rendering or export.
type FlattenedDay struct {
	Day       string     `json:"day"`
	Session   string     `json:"session"`
	Exercises []Exercise `json:"exercices"`
	// IsRest reflects how the client renders the day: no exercises means
	// rest, whatever the session label claims.
	IsRest bool `json:"isRest"`
}

// FlattenedWeek is one week of the plan with its days in model order.
type FlattenedWeek struct {
	Week string         `json:"week"`
	Days []FlattenedDay `json:"days"`
}

// Flatten converts the nested week→day plan into an ordered list.
//
// Weeks and days keep the order they were decoded in; nothing is sorted,
// filtered or validated against real weekday names. Every key of the plan
// shows up in the output exactly once.
func Flatten(p *Plan) []FlattenedWeek {
	weeks := []FlattenedWeek{}
	if p == nil || p.root == nil {
		return weeks
	}

	for _, weekName := range p.root.Keys() {
		week := FlattenedWeek{Week: weekName, Days: []FlattenedDay{}}

		if weekObj, ok := objectAt(p.root, weekName); ok {
			for _, dayName := range weekObj.Keys() {
				week.Days = append(week.Days, flattenDay(weekObj, dayName))
			}
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func flattenDay(weekObj *Object, dayName string) FlattenedDay {
	day := FlattenedDay{
		Day:       dayName,
		Session:   RestSession,
		Exercises: []Exercise{},
	}

	dayObj, ok := objectAt(weekObj, dayName)
	if !ok {
		day.IsRest = true
		return day
	}

	if session := stringField(dayObj, "seance"); session != "" {
		day.Session = session
	}

	if raw, ok := dayObj.Get("exercices"); ok {
		if items, ok := raw.([]any); ok {
			for _, item := range items {
				if exObj, ok := item.(*Object); ok {
					day.Exercises = append(day.Exercises, Exercise{
						Nom:   stringField(exObj, "nom"),
						Duree: stringField(exObj, "duree"),
						Repos: stringField(exObj, "repos"),
					})
				}
			}
		}
	}

	day.IsRest = len(day.Exercises) == 0
	return day
}

func objectAt(parent *Object, key string) (*Object, bool) {
	raw, ok := parent.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := raw.(*Object)
	return obj, ok
}

// stringField reads a field as a string, tolerating the model switching a
// field to a bare number.
func stringField(obj *Object, key string) string {
	raw, ok := obj.Get(key)
	if !ok {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
