package timeutil

import (
	"time"
)

// Paris is the platform timezone. All booking dates and slot times are
// interpreted in French local time.
var Paris *time.Location

func init() {
	var err error
	Paris, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		// Fallback: fixed CET if tzdata is not available
		Paris = time.FixedZone("CET", 1*60*60)
	}
}

// Now returns the current time in Paris time
func Now() time.Time {
	return time.Now().In(Paris)
}

// ToParis converts any time to Paris time
func ToParis(t time.Time) time.Time {
	return t.In(Paris)
}

// ParseInParis parses a time string and returns it in Paris time
func ParseInParis(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Paris)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns the start of day (00:00:00) in Paris time for the given time
func StartOfDay(t time.Time) time.Time {
	p := t.In(Paris)
	return time.Date(p.Year(), p.Month(), p.Day(), 0, 0, 0, 0, Paris)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Weekday returns the French weekday name used in service availability
// windows ("lundi" .. "dimanche").
func Weekday(t time.Time) string {
	switch t.In(Paris).Weekday() {
	case time.Monday:
		return "lundi"
	case time.Tuesday:
		return "mardi"
	case time.Wednesday:
		return "mercredi"
	case time.Thursday:
		return "jeudi"
	case time.Friday:
		return "vendredi"
	case time.Saturday:
		return "samedi"
	default:
		return "dimanche"
	}
}
