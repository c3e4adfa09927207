package services

import (
	"context"
	"strings"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"
)

// PortfolioService manages the showcase entries on artisan profiles.
type PortfolioService struct {
	portfolioRepo *repositories.PortfolioRepository
}

func NewPortfolioService(portfolioRepo *repositories.PortfolioRepository) *PortfolioService {
	return &PortfolioService{portfolioRepo: portfolioRepo}
}

// Create adds a showcase entry to the calling artisan's profile.
func (s *PortfolioService) Create(ctx context.Context, artisanID int, req *models.CreatePortfolioItemRequest) (*models.PortfolioItem, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, validation("title is required")
	}

	item := &models.PortfolioItem{
		ArtisanID:   artisanID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImagePath:   req.ImagePath,
	}
	if err := s.portfolioRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns one showcase entry.
func (s *PortfolioService) Get(ctx context.Context, id int) (*models.PortfolioItem, error) {
	item, err := s.portfolioRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// ListByArtisan returns an artisan's public portfolio.
func (s *PortfolioService) ListByArtisan(ctx context.Context, artisanID int) ([]*models.PortfolioItem, error) {
	return s.portfolioRepo.ListByArtisan(ctx, artisanID)
}

// Update edits an entry owned by the caller.
func (s *PortfolioService) Update(ctx context.Context, artisanID, id int, req *models.CreatePortfolioItemRequest) (*models.PortfolioItem, error) {
	item, err := s.portfolioRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if item.ArtisanID != artisanID {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, validation("title is required")
	}

	item.Title = strings.TrimSpace(req.Title)
	item.Description = req.Description
	if req.ImagePath != "" {
		item.ImagePath = req.ImagePath
	}
	if err := s.portfolioRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an entry owned by the caller.
func (s *PortfolioService) Delete(ctx context.Context, artisanID, id int) error {
	item, err := s.portfolioRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	if item.ArtisanID != artisanID {
		return ErrForbidden
	}
	return s.portfolioRepo.Delete(ctx, id, artisanID)
}
