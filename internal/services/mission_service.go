package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"
)

// MissionService manages work-execution records. A mission is created
// automatically when its booking is accepted and is confirmed by the client
// through an unauthenticated token link.
type MissionService struct {
	missionRepo *repositories.MissionRepository
}

func NewMissionService(missionRepo *repositories.MissionRepository) *MissionService {
	return &MissionService{missionRepo: missionRepo}
}

func newValidationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating validation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateForBooking creates the mission for a freshly accepted booking.
// Creation is idempotent per booking: an existing mission is returned as-is.
func (s *MissionService) CreateForBooking(ctx context.Context, booking *models.Booking) (*models.Mission, error) {
	existing, err := s.missionRepo.GetByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	token, err := newValidationToken()
	if err != nil {
		return nil, err
	}

	mission := &models.Mission{
		BookingID:       booking.ID,
		ArtisanID:       booking.ArtisanID,
		Title:           fmt.Sprintf("Intervention du %s", booking.BookingDate.Format("02/01/2006")),
		Status:          models.MissionInProgress,
		ValidationToken: token,
	}
	if err := s.missionRepo.Create(ctx, mission); err != nil {
		return nil, err
	}
	log.Printf("[Mission] created mission %d for booking %d", mission.ID, booking.ID)
	return mission, nil
}

// Get returns a mission visible to the caller.
func (s *MissionService) Get(ctx context.Context, userID int, role string, id int) (*models.Mission, error) {
	mission, err := s.missionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, ErrNotFound
	}
	if !canManageMission(userID, role, mission) {
		return nil, ErrForbidden
	}
	return mission, nil
}

func canManageMission(userID int, role string, mission *models.Mission) bool {
	switch role {
	case models.RoleSecretary, models.RoleAdmin:
		return true
	case models.RoleArtisan:
		return mission.ArtisanID == userID
	}
	return false
}

// List returns the caller's missions: staff see all, artisans their own.
func (s *MissionService) List(ctx context.Context, userID int, role string) ([]*models.Mission, error) {
	switch role {
	case models.RoleSecretary, models.RoleAdmin:
		return s.missionRepo.ListAll(ctx)
	case models.RoleArtisan:
		return s.missionRepo.ListByArtisan(ctx, userID)
	}
	return nil, ErrForbidden
}

// UpdateDetails sets the mission title and work details. Only allowed while
// the work is still open (not validated or cancelled).
func (s *MissionService) UpdateDetails(ctx context.Context, userID int, role string, id int, req *models.UpdateMissionRequest) (*models.Mission, error) {
	mission, err := s.missionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, ErrNotFound
	}
	if !canManageMission(userID, role, mission) {
		return nil, ErrForbidden
	}
	if mission.Status == models.MissionValidated || mission.Status == models.MissionCancelled {
		return nil, validation("mission is closed and can no longer be edited")
	}
	if req.Title == "" {
		return nil, validation("title is required")
	}

	if err := s.missionRepo.UpdateDetails(ctx, id, req.Title, req.WorkDetails); err != nil {
		return nil, err
	}
	mission.Title = req.Title
	mission.WorkDetails = req.WorkDetails
	return mission, nil
}

// UpdateStatus moves a mission along its lifecycle. Validation by status
// "validée" is reserved for the public token endpoint; staff may still force
// it for support cases.
func (s *MissionService) UpdateStatus(ctx context.Context, userID int, role string, id int, newStatus models.MissionStatus) (*models.Mission, error) {
	mission, err := s.missionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, ErrNotFound
	}
	if !canManageMission(userID, role, mission) {
		return nil, ErrForbidden
	}
	if newStatus == models.MissionValidated && role == models.RoleArtisan {
		return nil, ErrForbidden
	}
	if !models.CanTransitionMission(mission.Status, newStatus) {
		return nil, validation(fmt.Sprintf("cannot move mission from %q to %q", mission.Status, newStatus))
	}

	if err := s.missionRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	mission.Status = newStatus
	log.Printf("[Mission] mission %d moved to %q", id, newStatus)
	return mission, nil
}

// ValidateByToken confirms mission completion through the client's public
// link. The mission must be awaiting validation.
func (s *MissionService) ValidateByToken(ctx context.Context, token string) (*models.Mission, error) {
	if token == "" {
		return nil, validation("missing validation token")
	}
	mission, err := s.missionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, ErrNotFound
	}
	if !models.CanTransitionMission(mission.Status, models.MissionValidated) {
		return nil, validation("mission is not awaiting validation")
	}

	if err := s.missionRepo.UpdateStatus(ctx, mission.ID, models.MissionValidated); err != nil {
		return nil, err
	}
	mission.Status = models.MissionValidated
	log.Printf("[Mission] mission %d validated by client", mission.ID)
	return mission, nil
}

// AddMaterial records a material line on an open mission.
func (s *MissionService) AddMaterial(ctx context.Context, userID int, role string, missionID int, req *models.AddMaterialRequest) (*models.MissionMaterial, error) {
	mission, err := s.openMissionFor(ctx, userID, role, missionID)
	if err != nil {
		return nil, err
	}
	if req.Name == "" || req.Quantity <= 0 || req.UnitPrice < 0 {
		return nil, validation("name, positive quantity and non-negative unit_price are required")
	}

	material := &models.MissionMaterial{
		MissionID: mission.ID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	if err := s.missionRepo.AddMaterial(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// AddPhoto attaches an uploaded photo path to an open mission.
func (s *MissionService) AddPhoto(ctx context.Context, userID int, role string, missionID int, path, caption string) (*models.MissionPhoto, error) {
	mission, err := s.openMissionFor(ctx, userID, role, missionID)
	if err != nil {
		return nil, err
	}

	photo := &models.MissionPhoto{
		MissionID: mission.ID,
		Path:      path,
		Caption:   caption,
	}
	if err := s.missionRepo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// AddComment appends a progress note to a mission.
func (s *MissionService) AddComment(ctx context.Context, userID int, role string, missionID int, req *models.AddCommentRequest) (*models.MissionComment, error) {
	mission, err := s.missionRepo.Get(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, ErrNotFound
	}
	if !canManageMission(userID, role, mission) {
		return nil, ErrForbidden
	}
	if req.Body == "" {
		return nil, validation("body is required")
	}

	comment := &models.MissionComment{
		MissionID: mission.ID,
		AuthorID:  userID,
		Body:      req.Body,
	}
	if err := s.missionRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *MissionService) openMissionFor(ctx context.Context, userID int, role string, missionID int) (*models.Mission, error) {
	mission, err := s.missionRepo.Get(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, ErrNotFound
	}
	if !canManageMission(userID, role, mission) {
		return nil, ErrForbidden
	}
	if mission.Status == models.MissionValidated || mission.Status == models.MissionCancelled {
		return nil, validation("mission is closed and can no longer be edited")
	}
	return mission, nil
}
