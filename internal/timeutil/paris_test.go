package timeutil

import (
	"testing"
	"time"
)

func TestWeekday(t *testing.T) {
	// 2026-03-02 is a Monday
	tests := []struct {
		date string
		want string
	}{
		{"2026-03-02", "lundi"},
		{"2026-03-03", "mardi"},
		{"2026-03-04", "mercredi"},
		{"2026-03-05", "jeudi"},
		{"2026-03-06", "vendredi"},
		{"2026-03-07", "samedi"},
		{"2026-03-08", "dimanche"},
	}

	for _, tt := range tests {
		d, err := ParseInParis(DateLayout, tt.date)
		if err != nil {
			t.Fatalf("ParseInParis(%q): %v", tt.date, err)
		}
		if got := Weekday(d); got != tt.want {
			t.Errorf("Weekday(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	d := time.Date(2026, 3, 2, 17, 45, 12, 0, Paris)
	got := StartOfDay(d)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", got)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 2 {
		t.Errorf("StartOfDay changed the date: %v", got)
	}
	if got.Location() != Paris {
		t.Errorf("StartOfDay location = %v, want Paris", got.Location())
	}
}

func TestWeekdayConvertsToLocal(t *testing.T) {
	// 2026-03-02 23:30 UTC is already Tuesday in Paris (UTC+1 in March)
	d := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	if got := Weekday(d); got != "mardi" {
		t.Errorf("Weekday(%v) = %q, want mardi", d, got)
	}
}
