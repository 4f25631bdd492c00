package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error definitions
var (
	ErrMissingSummary = errors.New("event has no summary")
	ErrMissingStart   = errors.New("event has no start time")
)

// Event is one calendar entry of the exported plan.
type Event struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time // wall time in the target timezone
	TZID        string    // IANA timezone name written into DTSTART
	DurationMin int
	ReminderMin int // minutes before start; 0 disables the alarm
}

// GenerateICS serializes the events into an iCalendar (RFC 5545) payload.
//
// Any invalid event aborts the whole export; no partial calendar is produced.
// DTSTART is written as local wall time with a TZID parameter so the event
// lands at the same clock time wherever the file is imported.
func GenerateICS(events []Event) (string, error) {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//RunCoach//Training Calendar//FR\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")

	for _, event := range events {
		if event.Summary == "" {
			return "", ErrMissingSummary
		}
		if event.Start.IsZero() {
			return "", ErrMissingStart
		}

		sb.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&sb, "UID:%s\r\n", event.UID)
		fmt.Fprintf(&sb, "DTSTAMP:%s\r\n", time.Now().UTC().Format("20060102T150405Z"))
		if event.TZID != "" {
			fmt.Fprintf(&sb, "DTSTART;TZID=%s:%s\r\n", event.TZID, event.Start.Format("20060102T150405"))
		} else {
			fmt.Fprintf(&sb, "DTSTART:%s\r\n", event.Start.Format("20060102T150405"))
		}
		fmt.Fprintf(&sb, "DURATION:PT%dM\r\n", event.DurationMin)
		fmt.Fprintf(&sb, "SUMMARY:%s\r\n", escapeICS(event.Summary))

		if event.Description != "" {
			fmt.Fprintf(&sb, "DESCRIPTION:%s\r\n", escapeICS(event.Description))
		}

		if event.ReminderMin > 0 {
			sb.WriteString("BEGIN:VALARM\r\n")
			sb.WriteString("ACTION:DISPLAY\r\n")
			fmt.Fprintf(&sb, "TRIGGER:-PT%dM\r\n", event.ReminderMin)
			sb.WriteString("DESCRIPTION:Rappel d'entraînement\r\n")
			sb.WriteString("END:VALARM\r\n")
		}

		sb.WriteString("END:VEVENT\r\n")
	}

	sb.WriteString("END:VCALENDAR\r\n")

	return sb.String(), nil
}

// escapeICS escapes the characters RFC 5545 reserves in text values.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
