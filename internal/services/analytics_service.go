package services

import (
	"context"
	"log"
	"time"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"
	"ouveo-backend/internal/timeutil"
)

// AnalyticsService rolls platform activity up into daily snapshots. A
// background collector refreshes today's snapshot on an interval; the admin
// panel reads the stored rows.
type AnalyticsService struct {
	analyticsRepo *repositories.AnalyticsRepository
	userRepo      *repositories.UserRepository
	serviceRepo   *repositories.ServiceRepository
	bookingRepo   *repositories.BookingRepository
	reportRepo    *repositories.ReportRepository
	invoiceRepo   *repositories.InvoiceRepository

	stop chan struct{}
	done chan struct{}
}

func NewAnalyticsService(
	analyticsRepo *repositories.AnalyticsRepository,
	userRepo *repositories.UserRepository,
	serviceRepo *repositories.ServiceRepository,
	bookingRepo *repositories.BookingRepository,
	reportRepo *repositories.ReportRepository,
	invoiceRepo *repositories.InvoiceRepository,
) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		userRepo:      userRepo,
		serviceRepo:   serviceRepo,
		bookingRepo:   bookingRepo,
		reportRepo:    reportRepo,
		invoiceRepo:   invoiceRepo,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Collect computes and stores today's snapshot.
func (s *AnalyticsService) Collect(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	snapshot := &models.AnalyticsSnapshot{
		SnapshotDate: timeutil.StartOfDay(timeutil.Now()),
	}

	var err error
	if snapshot.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if snapshot.TotalArtisans, err = s.userRepo.CountByRole(ctx, models.RoleArtisan); err != nil {
		return nil, err
	}
	if snapshot.TotalClients, err = s.userRepo.CountByRole(ctx, models.RoleClient); err != nil {
		return nil, err
	}
	if snapshot.TotalServices, err = s.serviceRepo.Count(ctx); err != nil {
		return nil, err
	}
	if snapshot.PendingBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingPending); err != nil {
		return nil, err
	}
	if snapshot.AcceptedBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingAccepted); err != nil {
		return nil, err
	}
	if snapshot.CompletedBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingCompleted); err != nil {
		return nil, err
	}
	if snapshot.CancelledBookings, err = s.bookingRepo.CountByStatus(ctx, models.BookingCancelled); err != nil {
		return nil, err
	}
	if snapshot.OpenReports, err = s.reportRepo.CountOpen(ctx); err != nil {
		return nil, err
	}
	if snapshot.PaidRevenue, err = s.invoiceRepo.PaidRevenue(ctx); err != nil {
		return nil, err
	}

	if err := s.analyticsRepo.Upsert(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Start launches the background collector. One collection runs immediately,
// then every interval until Stop is called.
func (s *AnalyticsService) Start(interval time.Duration) {
	go func() {
		defer close(s.done)

		collect := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := s.Collect(ctx); err != nil {
				log.Printf("[Analytics] collection failed: %v", err)
			}
		}

		collect()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				collect()
			case <-s.stop:
				return
			}
		}
	}()
	log.Printf("[Analytics] collector started (every %s)", interval)
}

// Stop halts the background collector and waits for it to exit.
func (s *AnalyticsService) Stop() {
	close(s.stop)
	<-s.done
	log.Println("[Analytics] collector stopped")
}

// Latest returns the most recent snapshot.
func (s *AnalyticsService) Latest(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	snapshot, err := s.analyticsRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrNotFound
	}
	return snapshot, nil
}

// History returns the snapshots of the last n days, oldest first.
func (s *AnalyticsService) History(ctx context.Context, days int) ([]*models.AnalyticsSnapshot, error) {
	if days <= 0 {
		days = 30
	}
	since := timeutil.StartOfDay(timeutil.Now()).AddDate(0, 0, -days)
	return s.analyticsRepo.ListSince(ctx, since)
}
