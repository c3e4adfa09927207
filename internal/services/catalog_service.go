package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"ouveo-backend/internal/cache"
	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"
)

var frenchWeekdays = []string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"}

func validWeekday(day string) bool {
	for _, d := range frenchWeekdays {
		if strings.EqualFold(day, d) {
			return true
		}
	}
	return false
}

// CatalogService manages the service offerings artisans publish.
type CatalogService struct {
	serviceRepo *repositories.ServiceRepository
}

func NewCatalogService(serviceRepo *repositories.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// Create publishes a new service for the calling artisan. Every declared
// window must parse, start before it ends, and carry a real weekday name.
func (s *CatalogService) Create(ctx context.Context, artisanID int, req *models.CreateServiceRequest) (*models.Service, error) {
	if req.Title == "" || req.Category == "" {
		return nil, validation("title and category are required")
	}
	if req.Price < 0 {
		return nil, validation("price cannot be negative")
	}
	if req.Duration <= 0 {
		return nil, validation("duration must be a positive number of minutes")
	}
	if req.BufferMinutes < 0 {
		return nil, validation("buffer_time cannot be negative")
	}

	for i, slot := range req.TimeSlots {
		if !validWeekday(slot.Day) {
			return nil, validation(fmt.Sprintf("time_slots[%d]: unknown weekday %q", i, slot.Day))
		}
		start, err := ParseClock(slot.Start)
		if err != nil {
			return nil, validation(fmt.Sprintf("time_slots[%d]: invalid start, expected HH:MM", i))
		}
		end, err := ParseClock(slot.End)
		if err != nil {
			return nil, validation(fmt.Sprintf("time_slots[%d]: invalid end, expected HH:MM", i))
		}
		if start >= end {
			return nil, validation(fmt.Sprintf("time_slots[%d]: start must be before end", i))
		}
	}

	service := &models.Service{
		ArtisanID:     artisanID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		Duration:      req.Duration,
		BufferMinutes: req.BufferMinutes,
		TimeSlots:     req.TimeSlots,
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	invalidateCatalog(ctx, service.Category)
	log.Printf("[Catalog] artisan %d published service %d (%s)", artisanID, service.ID, service.Title)
	return service, nil
}

// Get returns one service with its availability windows.
func (s *CatalogService) Get(ctx context.Context, id int) (*models.Service, error) {
	service, err := s.serviceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, ErrNotFound
	}
	return service, nil
}

// catalogListKey names the cache entry for one catalog listing. The empty
// category is the unfiltered list.
func catalogListKey(category string) string {
	if category == "" {
		return "catalog:list:all"
	}
	return "catalog:list:" + category
}

// invalidateCatalog drops the cached listings a service write can affect:
// the unfiltered list and the service's own category.
func invalidateCatalog(ctx context.Context, category string) {
	cache.InvalidateKeys(ctx, catalogListKey(""), catalogListKey(category))
}

// List returns the public catalog, optionally filtered by category. Listings
// are cached briefly since this is the most-hit public endpoint.
func (s *CatalogService) List(ctx context.Context, category string) ([]*models.ServiceWithArtisan, error) {
	key := catalogListKey(category)
	if data, ok := cache.GetCached(ctx, key); ok {
		var services []*models.ServiceWithArtisan
		if err := json.Unmarshal(data, &services); err == nil {
			return services, nil
		}
	}

	services, err := s.serviceRepo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(services); err == nil {
		cache.SetCached(ctx, key, data, 5*time.Minute)
	}
	return services, nil
}

// ListByArtisan returns one artisan's published services.
func (s *CatalogService) ListByArtisan(ctx context.Context, artisanID int) ([]*models.Service, error) {
	return s.serviceRepo.ListByArtisan(ctx, artisanID)
}

// SetImage stores a freshly uploaded illustration path on a service owned
// by the caller.
func (s *CatalogService) SetImage(ctx context.Context, artisanID, serviceID int, path string) (*models.Service, error) {
	service, err := s.serviceRepo.Get(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, ErrNotFound
	}
	if service.ArtisanID != artisanID {
		return nil, ErrForbidden
	}
	if err := s.serviceRepo.SetImage(ctx, serviceID, path); err != nil {
		return nil, err
	}
	service.ImagePath = path
	invalidateCatalog(ctx, service.Category)
	return service, nil
}

// Delete unpublishes a service. Only the owning artisan may delete it.
func (s *CatalogService) Delete(ctx context.Context, artisanID, serviceID int) error {
	service, err := s.serviceRepo.Get(ctx, serviceID)
	if err != nil {
		return err
	}
	if service == nil {
		return ErrNotFound
	}
	if service.ArtisanID != artisanID {
		return ErrForbidden
	}
	if err := s.serviceRepo.Delete(ctx, serviceID, artisanID); err != nil {
		return err
	}
	cache.InvalidateAvailability(ctx, serviceID)
	invalidateCatalog(ctx, service.Category)
	return nil
}
