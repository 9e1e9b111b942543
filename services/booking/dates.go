package booking

import (
	"strings"
	"time"
)

// Appointment dates are free text. The mobile client sends Date.toDateString() + " " + toLocaleTimeString().
var appointmentLayouts = []string{
	"Mon Jan 2 2006 3:04:05 PM",
	"Mon Jan 2 2006 15:04:05",
	"Mon Jan 2 2006 3:04 PM",
	"Mon Jan 2 2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseAppointmentDate tries the known layouts. Times without a zone are read as UTC.
func ParseAppointmentDate(s string) (time.Time, bool) {
	s = strings.Join(strings.FieldsFunc(s, isSpace), " ")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range appointmentLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isSpace also covers the no-break spaces some locales put before AM/PM.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u00a0' || r == '\u202f'
}
