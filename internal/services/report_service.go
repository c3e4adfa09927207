package services

import (
	"context"
	"log"
	"strings"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"
)

// ReportService handles moderation tickets filed against users.
type ReportService struct {
	reportRepo *repositories.ReportRepository
	userRepo   *repositories.UserRepository
}

func NewReportService(reportRepo *repositories.ReportRepository, userRepo *repositories.UserRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, userRepo: userRepo}
}

// File opens a moderation ticket against another user.
func (s *ReportService) File(ctx context.Context, reporterID int, req *models.CreateReportRequest) (*models.Report, error) {
	if req.TargetUserID == 0 || strings.TrimSpace(req.Reason) == "" {
		return nil, validation("target_user_id and reason are required")
	}
	if req.TargetUserID == reporterID {
		return nil, validation("you cannot report yourself")
	}

	target, err := s.userRepo.Get(ctx, req.TargetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, validation("target user not found")
	}

	report := &models.Report{
		ReporterID:   reporterID,
		TargetUserID: req.TargetUserID,
		Reason:       strings.TrimSpace(req.Reason),
		Details:      req.Details,
		Status:       models.ReportOpen,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	log.Printf("[Report] user %d reported user %d", reporterID, req.TargetUserID)
	return report, nil
}

// Get returns one ticket.
func (s *ReportService) Get(ctx context.Context, id int) (*models.Report, error) {
	report, err := s.reportRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	return report, nil
}

// List returns tickets, optionally filtered by status.
func (s *ReportService) List(ctx context.Context, status models.ReportStatus) ([]*models.Report, error) {
	if status != "" && status != models.ReportOpen && status != models.ReportResolved && status != models.ReportDismissed {
		return nil, validation("unknown report status")
	}
	return s.reportRepo.List(ctx, status)
}

// Resolve closes an open ticket with a moderation decision.
func (s *ReportService) Resolve(ctx context.Context, adminID, id int, req *models.ResolveReportRequest) (*models.Report, error) {
	report, err := s.reportRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	if !models.CanTransitionReport(report.Status, req.Status) {
		return nil, validation("report is already closed")
	}

	if err := s.reportRepo.Resolve(ctx, id, adminID, req.Status, req.Resolution); err != nil {
		return nil, err
	}
	report.Status = req.Status
	report.ResolvedByID = &adminID
	report.Resolution = req.Resolution
	log.Printf("[Report] report %d closed as %q by admin %d", id, req.Status, adminID)
	return report, nil
}
