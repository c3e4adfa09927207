package models

import "time"

// AnalyticsSnapshot is a periodic rollup of platform activity, written by
// the background collector and read from the admin panel.
type AnalyticsSnapshot struct {
	ID                int       `json:"id"`
	SnapshotDate      time.Time `json:"snapshot_date"`
	TotalUsers        int       `json:"total_users"`
	TotalArtisans     int       `json:"total_artisans"`
	TotalClients      int       `json:"total_clients"`
	TotalServices     int       `json:"total_services"`
	PendingBookings   int       `json:"pending_bookings"`
	AcceptedBookings  int       `json:"accepted_bookings"`
	CompletedBookings int       `json:"completed_bookings"`
	CancelledBookings int       `json:"cancelled_bookings"`
	OpenReports       int       `json:"open_reports"`
	PaidRevenue       float64   `json:"paid_revenue"`
	CreatedAt         time.Time `json:"created_at"`
}
