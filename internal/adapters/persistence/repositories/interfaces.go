package repositories

import (
	"context"

	"scrapseva/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *UserFilter) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	CountByRole(ctx context.Context, role string, activeOnly bool) (int64, error)
}

// UserFilter narrows user listings
type UserFilter struct {
	Role   string
	City   string
	Search string
	Active *bool
	Offset int
	Limit  int
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ResetTokenRepository defines password reset token repository interface
type ResetTokenRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id uint) error
	DeleteStale(ctx context.Context) (int64, error)
}

// DonationRepository defines donation repository interface
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByID(ctx context.Context, id uint) (*models.Donation, error)
	Update(ctx context.Context, donation *models.Donation) error
	List(ctx context.Context, filter *DonationFilter) ([]*models.Donation, int64, error)
	AppendLog(ctx context.Context, entry *models.ActivityLog) error
	AddImage(ctx context.Context, image *models.DonationImage) error
	ListForPickupDate(ctx context.Context, date string, status string) ([]*models.Donation, error)
}

// DonationFilter narrows donation listings
type DonationFilter struct {
	Status   string
	City     string
	Search   string
	DonorID  *uint
	DealerID *uint
	Offset   int
	Limit    int
}

// GaudaanRepository defines gaudaan repository interface
type GaudaanRepository interface {
	Create(ctx context.Context, gaudaan *models.Gaudaan) error
	GetByID(ctx context.Context, id uint) (*models.Gaudaan, error)
	Update(ctx context.Context, gaudaan *models.Gaudaan) error
	List(ctx context.Context, filter *GaudaanFilter) ([]*models.Gaudaan, int64, error)
	AppendHistory(ctx context.Context, entry *models.GaudaanStatusHistory) error
}

// GaudaanFilter narrows gaudaan listings
type GaudaanFilter struct {
	Status      string
	City        string
	DonorID     *uint
	VolunteerID *uint
	Offset      int
	Limit       int
}

// TaskRepository defines volunteer task repository interface
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *TaskFilter) ([]*models.Task, int64, error)
	SetVolunteers(ctx context.Context, task *models.Task, volunteers []*models.User) error
}

// TaskFilter narrows task listings
type TaskFilter struct {
	Status      string
	VolunteerID *uint
	Offset      int
	Limit       int
}

// DeviceTokenRepository defines FCM device token repository interface
type DeviceTokenRepository interface {
	Upsert(ctx context.Context, token *models.DeviceToken) error
	GetByUserID(ctx context.Context, userID uint) ([]*models.DeviceToken, error)
	DeleteByToken(ctx context.Context, token string) error
}
