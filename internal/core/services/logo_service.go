package services

import (
	"context"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
)

// LogoService handles partner logo management for the landing page
type LogoService struct {
	logoRepo *repositories.LogoRepository
}

// NewLogoService creates a new logo service
func NewLogoService(logoRepo *repositories.LogoRepository) *LogoService {
	return &LogoService{logoRepo: logoRepo}
}

// List returns all logos
func (s *LogoService) List(ctx context.Context) ([]*models.Logo, error) {
	return s.logoRepo.List(ctx)
}

// Create stores an uploaded logo
func (s *LogoService) Create(ctx context.Context, title, imagePath string, uploadedBy uint) (*models.Logo, error) {
	logo := &models.Logo{
		Title:      title,
		ImagePath:  imagePath,
		UploadedBy: uploadedBy,
	}
	if err := s.logoRepo.Create(ctx, logo); err != nil {
		return nil, err
	}
	return logo, nil
}

// Delete removes a logo
func (s *LogoService) Delete(ctx context.Context, id uint) error {
	return s.logoRepo.Delete(ctx, id)
}
