package models

import "testing"

func TestCanTransitionBooking(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingAccepted, true},
		{BookingPending, BookingRejected, true},
		{BookingPending, BookingCancelled, true},
		{BookingAccepted, BookingCompleted, true},
		{BookingAccepted, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingAccepted, BookingPending, false},
		{BookingRejected, BookingAccepted, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingCancelled, BookingPending, false},
	}

	for _, tt := range tests {
		if got := CanTransitionBooking(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionBooking(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionMission(t *testing.T) {
	tests := []struct {
		from, to MissionStatus
		want     bool
	}{
		{MissionInProgress, MissionAwaitingValidation, true},
		{MissionInProgress, MissionCancelled, true},
		{MissionAwaitingValidation, MissionValidated, true},
		{MissionAwaitingValidation, MissionInProgress, true},
		{MissionInProgress, MissionValidated, false},
		{MissionValidated, MissionInProgress, false},
		{MissionCancelled, MissionInProgress, false},
	}

	for _, tt := range tests {
		if got := CanTransitionMission(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionMission(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionInvoice(t *testing.T) {
	tests := []struct {
		from, to InvoiceStatus
		want     bool
	}{
		{InvoiceDraft, InvoiceSent, true},
		{InvoiceDraft, InvoiceCancelled, true},
		{InvoiceSent, InvoicePaid, true},
		{InvoiceSent, InvoiceCancelled, true},
		{InvoiceDraft, InvoicePaid, false},
		{InvoicePaid, InvoiceCancelled, false},
		{InvoiceCancelled, InvoiceDraft, false},
	}

	for _, tt := range tests {
		if got := CanTransitionInvoice(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionInvoice(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionReport(t *testing.T) {
	tests := []struct {
		from, to ReportStatus
		want     bool
	}{
		{ReportOpen, ReportResolved, true},
		{ReportOpen, ReportDismissed, true},
		{ReportResolved, ReportOpen, false},
		{ReportDismissed, ReportResolved, false},
	}

	for _, tt := range tests {
		if got := CanTransitionReport(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionReport(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsActiveBookingStatus(t *testing.T) {
	active := []BookingStatus{BookingPending, BookingAccepted}
	inactive := []BookingStatus{BookingRejected, BookingCompleted, BookingCancelled}

	for _, s := range active {
		if !IsActiveBookingStatus(s) {
			t.Errorf("expected %q to be active", s)
		}
	}
	for _, s := range inactive {
		if IsActiveBookingStatus(s) {
			t.Errorf("expected %q to be inactive", s)
		}
	}
}
