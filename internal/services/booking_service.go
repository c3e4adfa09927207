package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"ouveo-backend/internal/cache"
	"ouveo-backend/internal/metrics"
	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"
	"ouveo-backend/internal/timeutil"
)

// BookingService gatekeeps booking submissions and status transitions.
type BookingService struct {
	bookingRepo    *repositories.BookingRepository
	serviceRepo    *repositories.ServiceRepository
	missionService *MissionService
}

func NewBookingService(bookingRepo *repositories.BookingRepository, serviceRepo *repositories.ServiceRepository, missionService *MissionService) *BookingService {
	return &BookingService{
		bookingRepo:    bookingRepo,
		serviceRepo:    serviceRepo,
		missionService: missionService,
	}
}

// GetAvailability returns the bookable start times for a service on a date.
// Results are cached briefly; the cache is invalidated on every booking
// creation or status change for the service.
func (s *BookingService) GetAvailability(ctx context.Context, serviceID int, dateStr string) (*models.AvailabilityResponse, error) {
	if cached, ok := cache.GetCachedAvailability(ctx, serviceID, dateStr); ok {
		var resp models.AvailabilityResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	service, err := s.serviceRepo.Get(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, ErrNotFound
	}

	date, err := timeutil.ParseInParis(timeutil.DateLayout, dateStr)
	if err != nil {
		return nil, validation("invalid date, expected YYYY-MM-DD")
	}

	existing, err := s.bookingRepo.ListActiveByServiceDate(ctx, serviceID, date)
	if err != nil {
		return nil, err
	}

	slots, err := AvailableSlots(service, date, existing)
	if err != nil {
		return nil, err
	}

	resp := &models.AvailabilityResponse{ServiceID: serviceID, Date: dateStr, Slots: slots}
	if data, err := json.Marshal(resp); err == nil {
		cache.CacheAvailability(ctx, serviceID, dateStr, data)
	}
	return resp, nil
}

// Create validates and persists a booking submission. Checks run in a fixed
// order and the first failure wins; nothing is written on failure. The
// datastore carries an exclusion constraint on the slot range, so two
// concurrent submissions for the same slot cannot both commit.
func (s *BookingService) Create(ctx context.Context, userID int, role string, req *models.CreateBookingRequest) (*models.Booking, error) {
	if role != models.RoleClient && role != models.RoleSecretary && role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	if req.ServiceID == 0 || req.ClientName == "" || req.ClientPhone == "" || req.Date == "" || req.StartTime == "" {
		return nil, validation("service_id, client_name, client_phone, date and start_time are required")
	}

	service, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, validation("service not found")
	}

	date, err := timeutil.ParseInParis(timeutil.DateLayout, req.Date)
	if err != nil {
		return nil, validation("invalid date, expected YYYY-MM-DD")
	}
	if date.Before(timeutil.StartOfDay(timeutil.Now())) {
		return nil, validation("booking date is in the past")
	}

	startMinute, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, validation("invalid start_time, expected HH:MM")
	}
	endMinute := startMinute + service.Duration + service.BufferMinutes

	window, ok := windowFor(service, date)
	if !ok {
		return nil, validation(fmt.Sprintf("service has no availability on %s", timeutil.Weekday(date)))
	}
	windowStart, err := ParseClock(window.Start)
	if err != nil {
		return nil, fmt.Errorf("service %d window start: %w", service.ID, err)
	}
	windowEnd, err := ParseClock(window.End)
	if err != nil {
		return nil, fmt.Errorf("service %d window end: %w", service.ID, err)
	}
	if startMinute < windowStart || endMinute > windowEnd {
		return nil, validation("requested time is outside the service's availability window")
	}

	existing, err := s.bookingRepo.ListActiveByServiceDate(ctx, req.ServiceID, date)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		bStart, err := ParseClock(b.StartTime)
		if err != nil {
			return nil, fmt.Errorf("booking %d start: %w", b.ID, err)
		}
		bEnd, err := ParseClock(b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("booking %d end: %w", b.ID, err)
		}
		if overlaps(startMinute, endMinute, bStart, bEnd) {
			metrics.BookingConflictsTotal.Inc()
			return nil, repositories.ErrSlotTaken
		}
	}

	booking := &models.Booking{
		ServiceID:   req.ServiceID,
		ArtisanID:   service.ArtisanID,
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientPhone: strings.TrimSpace(req.ClientPhone),
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		Address:     strings.TrimSpace(req.Address),
		BookingDate: date,
		StartTime:   FormatClock(startMinute),
		EndTime:     FormatClock(endMinute),
		Status:      models.BookingPending,
		Notes:       req.Notes,
		CreatedByID: userID,
	}
	if role == models.RoleClient {
		booking.ClientUserID = &userID
	}

	if err := s.bookingRepo.Create(ctx, booking, startMinute, endMinute); err != nil {
		if errors.Is(err, repositories.ErrSlotTaken) {
			metrics.BookingConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.BookingsCreatedTotal.Inc()
	cache.InvalidateAvailability(ctx, req.ServiceID)
	log.Printf("[Booking] created booking %d for service %d on %s %s", booking.ID, booking.ServiceID, req.Date, booking.StartTime)
	return booking, nil
}

// Get returns a booking visible to the caller: staff see everything, an
// artisan their own services' bookings, a client their own submissions.
func (s *BookingService) Get(ctx context.Context, userID int, role string, id int) (*models.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if !canSeeBooking(userID, role, booking) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func canSeeBooking(userID int, role string, booking *models.Booking) bool {
	switch role {
	case models.RoleSecretary, models.RoleAdmin:
		return true
	case models.RoleArtisan:
		return booking.ArtisanID == userID
	default:
		return booking.CreatedByID == userID
	}
}

// List returns the bookings the caller may see, newest first.
func (s *BookingService) List(ctx context.Context, userID int, role string) ([]*models.BookingWithService, error) {
	switch role {
	case models.RoleSecretary, models.RoleAdmin:
		return s.bookingRepo.ListAll(ctx)
	case models.RoleArtisan:
		return s.bookingRepo.ListByArtisan(ctx, userID)
	default:
		return s.bookingRepo.ListByCreator(ctx, userID)
	}
}

// UpdateStatus moves a booking along its lifecycle. Only the owning artisan
// or staff may transition it, and only along the allowed edges. Accepting a
// booking creates its mission.
func (s *BookingService) UpdateStatus(ctx context.Context, userID int, role string, id int, newStatus models.BookingStatus) (*models.Booking, error) {
	if !models.ValidBookingStatus(newStatus) {
		return nil, validation(fmt.Sprintf("unknown booking status %q", newStatus))
	}

	booking, err := s.bookingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	switch role {
	case models.RoleSecretary, models.RoleAdmin:
	case models.RoleArtisan:
		if booking.ArtisanID != userID {
			return nil, ErrForbidden
		}
	case models.RoleClient:
		// A client may only cancel their own pending booking.
		if booking.CreatedByID != userID || newStatus != models.BookingCancelled {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if !models.CanTransitionBooking(booking.Status, newStatus) {
		return nil, validation(fmt.Sprintf("cannot move booking from %q to %q", booking.Status, newStatus))
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	booking.Status = newStatus
	cache.InvalidateAvailability(ctx, booking.ServiceID)

	if newStatus == models.BookingAccepted {
		if _, err := s.missionService.CreateForBooking(ctx, booking); err != nil {
			log.Printf("[Booking] mission creation for booking %d failed: %v", id, err)
		}
	}

	log.Printf("[Booking] booking %d moved to %q", id, newStatus)
	return booking, nil
}

// canDeleteBooking holds the deletion rule: only the original creator may
// delete a booking, and only while it is still pending.
func canDeleteBooking(userID int, booking *models.Booking) error {
	if booking == nil {
		return ErrNotFound
	}
	if booking.CreatedByID != userID {
		return ErrForbidden
	}
	if booking.Status != models.BookingPending {
		return validation("only pending bookings can be deleted")
	}
	return nil
}

// Delete removes a booking. Only the original creator may delete it, and
// only while it is still pending.
func (s *BookingService) Delete(ctx context.Context, userID int, id int) error {
	booking, err := s.bookingRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := canDeleteBooking(userID, booking); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id, userID); err != nil {
		return err
	}
	cache.InvalidateAvailability(ctx, booking.ServiceID)
	return nil
}

// CountsByStatus returns booking counts per status for dashboards.
func (s *BookingService) CountsByStatus(ctx context.Context) (map[models.BookingStatus]int, error) {
	counts := make(map[models.BookingStatus]int)
	for _, status := range []models.BookingStatus{models.BookingPending, models.BookingAccepted, models.BookingRejected, models.BookingCompleted, models.BookingCancelled} {
		n, err := s.bookingRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}
