package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/timeutil"
)

// Slot arithmetic works in minutes from midnight. Bookings and windows carry
// "HH:MM" clock strings; parsing failures are errors, not silent garbage.

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock string %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock string %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock string %q", s)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes from midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// overlaps tests two half-open [start, end) intervals for intersection:
// new starts during existing, new ends during existing, or new fully
// contains existing.
func overlaps(newStart, newEnd, existingStart, existingEnd int) bool {
	if newStart >= existingStart && newStart < existingEnd {
		return true
	}
	if newEnd > existingStart && newEnd <= existingEnd {
		return true
	}
	if newStart <= existingStart && newEnd >= existingEnd {
		return true
	}
	return false
}

// windowFor returns the service's configured window for the date's weekday.
// No window is a normal outcome, not an error.
func windowFor(service *models.Service, date time.Time) (models.TimeSlot, bool) {
	day := timeutil.Weekday(date)
	for _, slot := range service.TimeSlots {
		if strings.EqualFold(slot.Day, day) {
			return slot, true
		}
	}
	return models.TimeSlot{}, false
}

// candidate is a potential booking interval in minutes from midnight.
type candidate struct {
	start int
	end   int
}

// enumerateCandidates walks a working window in steps of duration+buffer.
// Each candidate occupies [start, start+duration+buffer); stepping stops once
// a candidate's end would pass the window end. A window shorter than one
// step yields nothing.
func enumerateCandidates(windowStart, windowEnd, duration, buffer int) []candidate {
	step := duration + buffer
	if step <= 0 {
		return nil
	}

	var candidates []candidate
	for start := windowStart; start+step <= windowEnd; start += step {
		candidates = append(candidates, candidate{start: start, end: start + step})
	}
	return candidates
}

// AvailableSlots computes the bookable start times for a service on a date,
// in chronological order. existing must be the active (pending or accepted)
// bookings for the same service and date; candidates overlapping any of them
// are dropped. An empty result is valid.
func AvailableSlots(service *models.Service, date time.Time, existing []*models.Booking) ([]string, error) {
	window, ok := windowFor(service, date)
	if !ok {
		return []string{}, nil
	}

	windowStart, err := ParseClock(window.Start)
	if err != nil {
		return nil, fmt.Errorf("service %d window start: %w", service.ID, err)
	}
	windowEnd, err := ParseClock(window.End)
	if err != nil {
		return nil, fmt.Errorf("service %d window end: %w", service.ID, err)
	}

	type interval struct{ start, end int }
	taken := make([]interval, 0, len(existing))
	for _, b := range existing {
		if !models.IsActiveBookingStatus(b.Status) {
			continue
		}
		start, err := ParseClock(b.StartTime)
		if err != nil {
			return nil, fmt.Errorf("booking %d start: %w", b.ID, err)
		}
		end, err := ParseClock(b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("booking %d end: %w", b.ID, err)
		}
		taken = append(taken, interval{start: start, end: end})
	}

	slots := []string{}
	for _, c := range enumerateCandidates(windowStart, windowEnd, service.Duration, service.BufferMinutes) {
		conflict := false
		for _, t := range taken {
			if overlaps(c.start, c.end, t.start, t.end) {
				conflict = true
				break
			}
		}
		if !conflict {
			slots = append(slots, FormatClock(c.start))
		}
	}

	return slots, nil
}
