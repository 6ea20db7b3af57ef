package services

import (
	"context"
	"errors"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/core/domain"

	"gorm.io/gorm"
)

// ShelterService handles shelter management
type ShelterService struct {
	shelterRepo *repositories.ShelterRepository
}

// NewShelterService creates a new shelter service
func NewShelterService(shelterRepo *repositories.ShelterRepository) *ShelterService {
	return &ShelterService{shelterRepo: shelterRepo}
}

// ShelterInput carries shelter fields for create and update
type ShelterInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Capacity      int    `json:"capacity"`
	IsActive      *bool  `json:"isActive"`
}

// List lists shelters
func (s *ShelterService) List(ctx context.Context, activeOnly bool) ([]*models.Shelter, error) {
	return s.shelterRepo.List(ctx, activeOnly)
}

// GetByID returns a shelter
func (s *ShelterService) GetByID(ctx context.Context, id uint) (*models.Shelter, error) {
	shelter, err := s.shelterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShelterNotFound
		}
		return nil, err
	}
	return shelter, nil
}

// Create registers a new shelter
func (s *ShelterService) Create(ctx context.Context, input *ShelterInput) (*models.Shelter, error) {
	shelter := &models.Shelter{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		City:          input.City,
		Capacity:      input.Capacity,
		IsActive:      true,
	}
	if err := s.shelterRepo.Create(ctx, shelter); err != nil {
		return nil, err
	}
	return shelter, nil
}

// Update edits shelter fields
func (s *ShelterService) Update(ctx context.Context, id uint, input *ShelterInput) (*models.Shelter, error) {
	shelter, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		shelter.Name = input.Name
	}
	if input.ContactPerson != "" {
		shelter.ContactPerson = input.ContactPerson
	}
	if input.Phone != "" {
		shelter.Phone = input.Phone
	}
	if input.Email != "" {
		shelter.Email = input.Email
	}
	if input.Address != "" {
		shelter.Address = input.Address
	}
	if input.City != "" {
		shelter.City = input.City
	}
	if input.Capacity > 0 {
		shelter.Capacity = input.Capacity
	}
	if input.IsActive != nil {
		shelter.IsActive = *input.IsActive
	}

	if err := s.shelterRepo.Update(ctx, shelter); err != nil {
		return nil, err
	}
	return shelter, nil
}

// Delete soft deletes a shelter
func (s *ShelterService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.shelterRepo.Delete(ctx, id)
}
