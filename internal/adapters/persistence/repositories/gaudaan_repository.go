package repositories

import (
	"context"

	"scrapseva/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// gaudaanRepository implements GaudaanRepository interface
type gaudaanRepository struct {
	db *gorm.DB
}

// NewGaudaanRepository creates a new gaudaan repository
func NewGaudaanRepository(db *gorm.DB) GaudaanRepository {
	return &gaudaanRepository{db: db}
}

// Create creates a new gaudaan request
func (r *gaudaanRepository) Create(ctx context.Context, gaudaan *models.Gaudaan) error {
	return r.db.WithContext(ctx).Create(gaudaan).Error
}

// GetByID gets a gaudaan request by ID with relations preloaded
func (r *gaudaanRepository) GetByID(ctx context.Context, id uint) (*models.Gaudaan, error) {
	var gaudaan models.Gaudaan
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Volunteer").
		Preload("Shelter").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("gaudaan_status_histories.created_at ASC")
		}).
		Preload("StatusHistory.Performer").
		Where("id = ?", id).
		First(&gaudaan).Error
	if err != nil {
		return nil, err
	}
	return &gaudaan, nil
}

// Update updates a gaudaan request
func (r *gaudaanRepository) Update(ctx context.Context, gaudaan *models.Gaudaan) error {
	return r.db.WithContext(ctx).Save(gaudaan).Error
}

// List lists gaudaan requests matching the filter with pagination
func (r *gaudaanRepository) List(ctx context.Context, filter *GaudaanFilter) ([]*models.Gaudaan, int64, error) {
	var gaudaans []*models.Gaudaan
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Gaudaan{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.DonorID != nil {
		query = query.Where("donor_id = ?", *filter.DonorID)
	}
	if filter.VolunteerID != nil {
		query = query.Where("volunteer_id = ?", *filter.VolunteerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Donor").
		Preload("Volunteer").
		Preload("Shelter").
		Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&gaudaans).Error
	if err != nil {
		return nil, 0, err
	}

	return gaudaans, total, nil
}

// AppendHistory appends a status history entry
func (r *gaudaanRepository) AppendHistory(ctx context.Context, entry *models.GaudaanStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
