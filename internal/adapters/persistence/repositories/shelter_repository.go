package repositories

import (
	"context"

	"scrapseva/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ShelterRepository provides access to shelters
type ShelterRepository struct {
	db *gorm.DB
}

// NewShelterRepository creates a new shelter repository
func NewShelterRepository(db *gorm.DB) *ShelterRepository {
	return &ShelterRepository{db: db}
}

// Create creates a new shelter
func (r *ShelterRepository) Create(ctx context.Context, shelter *models.Shelter) error {
	return r.db.WithContext(ctx).Create(shelter).Error
}

// GetByID gets a shelter by ID
func (r *ShelterRepository) GetByID(ctx context.Context, id uint) (*models.Shelter, error) {
	var shelter models.Shelter
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&shelter).Error
	if err != nil {
		return nil, err
	}
	return &shelter, nil
}

// Update updates a shelter
func (r *ShelterRepository) Update(ctx context.Context, shelter *models.Shelter) error {
	return r.db.WithContext(ctx).Save(shelter).Error
}

// Delete soft deletes a shelter
func (r *ShelterRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Shelter{}, id).Error
}

// List lists shelters, optionally only active ones
func (r *ShelterRepository) List(ctx context.Context, activeOnly bool) ([]*models.Shelter, error) {
	var shelters []*models.Shelter
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&shelters).Error
	return shelters, err
}

// Count counts shelters
func (r *ShelterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Shelter{}).Count(&count).Error
	return count, err
}
