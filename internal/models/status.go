package models

// Status values are typed per entity. The original data carries French labels
// on the wire, so the constants keep them.

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "en attente"
	BookingAccepted  BookingStatus = "acceptée"
	BookingRejected  BookingStatus = "refusée"
	BookingCompleted BookingStatus = "terminée"
	BookingCancelled BookingStatus = "annulée"
)

// ActiveBookingStatuses are the statuses that occupy a time slot.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingAccepted}

// bookingTransitions is the allowed transition table. Anything not listed
// is rejected, including no-op transitions.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingAccepted, BookingRejected, BookingCancelled},
	BookingAccepted: {BookingCompleted, BookingCancelled},
}

// MissionStatus is the lifecycle state of a mission.
type MissionStatus string

const (
	MissionInProgress         MissionStatus = "en cours"
	MissionAwaitingValidation MissionStatus = "en attente de validation"
	MissionValidated          MissionStatus = "validée"
	MissionCancelled          MissionStatus = "annulée"
)

var missionTransitions = map[MissionStatus][]MissionStatus{
	MissionInProgress:         {MissionAwaitingValidation, MissionCancelled},
	MissionAwaitingValidation: {MissionValidated, MissionInProgress, MissionCancelled},
}

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft: {InvoiceSent, InvoiceCancelled},
	InvoiceSent:  {InvoicePaid, InvoiceCancelled},
}

// MessageStatus is the triage state of a contact-form lead.
type MessageStatus string

const (
	MessageNew       MessageStatus = "nouveau"
	MessageProcessed MessageStatus = "traité"
)

// ReportStatus is the moderation state of a report.
type ReportStatus string

const (
	ReportOpen      ReportStatus = "ouvert"
	ReportResolved  ReportStatus = "résolu"
	ReportDismissed ReportStatus = "rejeté"
)

var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportOpen: {ReportResolved, ReportDismissed},
}

// CanTransitionBooking reports whether a booking may move from one status
// to another.
func CanTransitionBooking(from, to BookingStatus) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionMission reports whether a mission may move from one status
// to another.
func CanTransitionMission(from, to MissionStatus) bool {
	for _, s := range missionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionInvoice reports whether an invoice may move from one status
// to another.
func CanTransitionInvoice(from, to InvoiceStatus) bool {
	for _, s := range invoiceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionReport reports whether a report may move from one status
// to another.
func CanTransitionReport(from, to ReportStatus) bool {
	for _, s := range reportTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsActiveBookingStatus reports whether a booking in this status occupies
// its time slot for availability purposes.
func IsActiveBookingStatus(s BookingStatus) bool {
	for _, a := range ActiveBookingStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingAccepted, BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// ValidInvoiceStatus reports whether s is a known invoice status.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}
