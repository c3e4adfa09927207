package models

import "time"

// Report is a moderation ticket filed against a user.
type Report struct {
	ID           int          `json:"id"`
	ReporterID   int          `json:"reporter_id"`
	TargetUserID int          `json:"target_user_id"`
	Reason       string       `json:"reason"`
	Details      string       `json:"details"`
	Status       ReportStatus `json:"status"`
	ResolvedByID *int         `json:"resolved_by_id"`
	Resolution   string       `json:"resolution"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CreateReportRequest represents the request to file a report
type CreateReportRequest struct {
	TargetUserID int    `json:"target_user_id"`
	Reason       string `json:"reason"`
	Details      string `json:"details"`
}

// ResolveReportRequest represents the admin moderation decision
type ResolveReportRequest struct {
	Status     ReportStatus `json:"status"` // résolu or rejeté
	Resolution string       `json:"resolution"`
}
