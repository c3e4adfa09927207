package services

import (
	"testing"
	"time"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/timeutil"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9h30", 0, true},
		{"", 0, true},
		{"09:00:00", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{570, "09:30"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		newStart, newEnd       int
		existStart, existEnd   int
		want                   bool
	}{
		{"identical", 540, 600, 540, 600, true},
		{"new starts inside existing", 570, 630, 540, 600, true},
		{"new ends inside existing", 510, 570, 540, 600, true},
		{"new contains existing", 500, 700, 540, 600, true},
		{"back to back before", 480, 540, 540, 600, false},
		{"back to back after", 600, 660, 540, 600, false},
		{"disjoint", 700, 760, 540, 600, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.newStart, tt.newEnd, tt.existStart, tt.existEnd); got != tt.want {
				t.Errorf("overlaps(%d,%d,%d,%d) = %v, want %v", tt.newStart, tt.newEnd, tt.existStart, tt.existEnd, got, tt.want)
			}
		})
	}
}

func TestEnumerateCandidates(t *testing.T) {
	// 09:00-12:00 window, 60 minute slots, no buffer
	got := enumerateCandidates(540, 720, 60, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	for i, start := range []int{540, 600, 660} {
		if got[i].start != start || got[i].end != start+60 {
			t.Errorf("candidate %d = [%d,%d), want [%d,%d)", i, got[i].start, got[i].end, start, start+60)
		}
	}

	// buffer widens the step and the occupied interval
	got = enumerateCandidates(540, 720, 60, 30)
	if len(got) != 2 {
		t.Fatalf("with buffer: expected 2 candidates, got %d", len(got))
	}
	if got[0].start != 540 || got[0].end != 630 {
		t.Errorf("with buffer: candidate 0 = [%d,%d), want [540,630)", got[0].start, got[0].end)
	}
	if got[1].start != 630 {
		t.Errorf("with buffer: candidate 1 starts at %d, want 630", got[1].start)
	}

	// window shorter than one slot
	if got := enumerateCandidates(540, 570, 60, 0); len(got) != 0 {
		t.Errorf("short window: expected no candidates, got %d", len(got))
	}
}

// newMondayService builds a service available Mondays 09:00-12:00.
func newMondayService(duration, buffer int) *models.Service {
	return &models.Service{
		ID:            1,
		ArtisanID:     2,
		Title:         "Réparation plomberie",
		Duration:      duration,
		BufferMinutes: buffer,
		TimeSlots: []models.TimeSlot{
			{Day: "lundi", Start: "09:00", End: "12:00"},
		},
	}
}

// monday is an arbitrary Monday in Paris time.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, timeutil.Paris)

func TestAvailableSlotsEmptyCalendar(t *testing.T) {
	slots, err := AvailableSlots(newMondayService(60, 0), monday, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "10:00", "11:00"}
	if len(slots) != len(want) {
		t.Fatalf("got %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("got %v, want %v", slots, want)
		}
	}
}

func TestAvailableSlotsExcludesBooked(t *testing.T) {
	existing := []*models.Booking{
		{ID: 1, StartTime: "09:00", EndTime: "10:00", Status: models.BookingAccepted},
	}
	slots, err := AvailableSlots(newMondayService(60, 0), monday, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 || slots[0] != "10:00" || slots[1] != "11:00" {
		t.Fatalf("got %v, want [10:00 11:00]", slots)
	}
}

func TestAvailableSlotsIgnoresInactiveBookings(t *testing.T) {
	existing := []*models.Booking{
		{ID: 1, StartTime: "09:00", EndTime: "10:00", Status: models.BookingCancelled},
		{ID: 2, StartTime: "10:00", EndTime: "11:00", Status: models.BookingRejected},
	}
	slots, err := AvailableSlots(newMondayService(60, 0), monday, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("cancelled and rejected bookings should not block slots, got %v", slots)
	}
}

func TestAvailableSlotsNoWindowDay(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	slots, err := AvailableSlots(newMondayService(60, 0), tuesday, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slots == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a day without a window, got %v", slots)
	}
}

func TestAvailableSlotsWindowShorterThanSlot(t *testing.T) {
	svc := newMondayService(240, 0)
	slots, err := AvailableSlots(svc, monday, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots when the window cannot fit one booking, got %v", slots)
	}
}

func TestAvailableSlotsMalformedWindow(t *testing.T) {
	svc := newMondayService(60, 0)
	svc.TimeSlots[0].Start = "9h00"
	if _, err := AvailableSlots(svc, monday, nil); err == nil {
		t.Fatal("expected error for malformed window start")
	}
}

func TestAvailableSlotsMalformedBooking(t *testing.T) {
	existing := []*models.Booking{
		{ID: 1, StartTime: "bad", EndTime: "10:00", Status: models.BookingPending},
	}
	if _, err := AvailableSlots(newMondayService(60, 0), monday, existing); err == nil {
		t.Fatal("expected error for malformed booking time")
	}
}
