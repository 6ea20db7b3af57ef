package repositories

import (
	"context"

	"scrapseva/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Contact Messages
// ============================================================

// ContactRepository provides access to contact messages
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create stores a contact message
func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// List lists contact messages with pagination
func (r *ContactRepository) List(ctx context.Context, offset, limit int) ([]*models.ContactMessage, int64, error) {
	var messages []*models.ContactMessage
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// ============================================================
// Logos
// ============================================================

// LogoRepository provides access to landing page logos
type LogoRepository struct {
	db *gorm.DB
}

// NewLogoRepository creates a new logo repository
func NewLogoRepository(db *gorm.DB) *LogoRepository {
	return &LogoRepository{db: db}
}

// Create stores a logo record
func (r *LogoRepository) Create(ctx context.Context, logo *models.Logo) error {
	return r.db.WithContext(ctx).Create(logo).Error
}

// List lists all logos
func (r *LogoRepository) List(ctx context.Context) ([]*models.Logo, error) {
	var logos []*models.Logo
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&logos).Error
	return logos, err
}

// Delete soft deletes a logo
func (r *LogoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Logo{}, id).Error
}

// ============================================================
// Device Tokens
// ============================================================

// deviceTokenRepository implements DeviceTokenRepository interface
type deviceTokenRepository struct {
	db *gorm.DB
}

// NewDeviceTokenRepository creates a new device token repository
func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

// Upsert stores a device token, reassigning it if another user registered it
func (r *deviceTokenRepository) Upsert(ctx context.Context, token *models.DeviceToken) error {
	var existing models.DeviceToken
	err := r.db.WithContext(ctx).Where("token = ?", token.Token).First(&existing).Error
	if err == nil {
		existing.UserID = token.UserID
		existing.Platform = token.Platform
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByUserID gets all device tokens registered by a user
func (r *deviceTokenRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.DeviceToken, error) {
	var tokens []*models.DeviceToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tokens).Error
	return tokens, err
}

// DeleteByToken removes a device token (e.g. when FCM reports it stale)
func (r *deviceTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.DeviceToken{}).Error
}
