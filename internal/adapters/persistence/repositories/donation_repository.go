package repositories

import (
	"context"

	"scrapseva/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// donationRepository implements DonationRepository interface
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// Create creates a new donation
func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

// GetByID gets a donation by ID with relations preloaded
func (r *donationRepository) GetByID(ctx context.Context, id uint) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Dealer").
		Preload("Images").
		Preload("ActivityLog", func(db *gorm.DB) *gorm.DB {
			return db.Order("activity_logs.created_at ASC")
		}).
		Preload("ActivityLog.Performer").
		Where("id = ?", id).
		First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// Update updates a donation
func (r *donationRepository) Update(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Save(donation).Error
}

// List lists donations matching the filter with pagination
func (r *donationRepository) List(ctx context.Context, filter *DonationFilter) ([]*models.Donation, int64, error) {
	var donations []*models.Donation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Donation{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.DonorID != nil {
		query = query.Where("donor_id = ?", *filter.DonorID)
	}
	if filter.DealerID != nil {
		query = query.Where("dealer_id = ?", *filter.DealerID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("scrap_type LIKE ? OR address LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Donor").
		Preload("Dealer").
		Preload("Images").
		Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

// AppendLog appends an activity log entry
func (r *donationRepository) AppendLog(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// AddImage attaches an image to a donation
func (r *donationRepository) AddImage(ctx context.Context, image *models.DonationImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// ListForPickupDate lists donations scheduled for pickup on a given date
func (r *donationRepository) ListForPickupDate(ctx context.Context, date string, status string) ([]*models.Donation, error) {
	var donations []*models.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Dealer").
		Where("DATE(pickup_date) = ? AND status = ?", date, status).
		Find(&donations).Error
	return donations, err
}
