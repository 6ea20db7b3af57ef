package services

import (
	"context"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService computes the admin dashboard aggregates straight from the
// database. Each figure is also exposed on its own endpoint so dashboard
// widgets can refresh independently.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardStats is the aggregate bundle behind the admin dashboard
type DashboardStats struct {
	TotalPickups       int64   `json:"totalpickups"`
	TotalScraped       float64 `json:"totalscraped"`
	TotalDonationValue float64 `json:"totaldonationValue"`
	ActiveUsers        int64   `json:"activeUsers"`
	ActiveDealers      int64   `json:"activeDealers"`
	ActiveVolunteers   int64   `json:"activeVolunteers"`
	PendingDonations   int64   `json:"pendingDonation"`
	Shelters           int64   `json:"shelters"`
	Logos              int64   `json:"logos"`
}

// completedStatuses are the donation states that count toward totals
var completedStatuses = []string{
	string(domain.DonationDonated),
	string(domain.DonationProcessed),
	string(domain.DonationRecycled),
}

// GetStats returns the full aggregate bundle
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalPickups, err = s.TotalPickups(ctx); err != nil {
		return nil, err
	}
	if stats.TotalScraped, err = s.TotalScraped(ctx); err != nil {
		return nil, err
	}
	if stats.TotalDonationValue, err = s.TotalDonationValue(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.ActiveCountByRole(ctx, domain.RoleUser); err != nil {
		return nil, err
	}
	if stats.ActiveDealers, err = s.ActiveCountByRole(ctx, domain.RoleDealer); err != nil {
		return nil, err
	}
	if stats.ActiveVolunteers, err = s.ActiveCountByRole(ctx, domain.RoleVolunteer); err != nil {
		return nil, err
	}
	if stats.PendingDonations, err = s.PendingDonations(ctx); err != nil {
		return nil, err
	}
	if stats.Shelters, err = s.ShelterCount(ctx); err != nil {
		return nil, err
	}
	if stats.Logos, err = s.LogoCount(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

// TotalPickups counts donations that reached at least picked-up
func (s *DashboardService) TotalPickups(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Donation{}).
		Where("status IN ?", append([]string{string(domain.DonationPickedUp)}, completedStatuses...)).
		Count(&count).Error
	return count, err
}

// TotalScraped sums the recorded weight of completed donations in kg
func (s *DashboardService) TotalScraped(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&models.Donation{}).
		Where("status IN ?", completedStatuses).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&total).Error
	return total, err
}

// TotalDonationValue sums the recorded price of completed donations
func (s *DashboardService) TotalDonationValue(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&models.Donation{}).
		Where("status IN ?", completedStatuses).
		Select("COALESCE(SUM(price), 0)").
		Scan(&total).Error
	return total, err
}

// ActiveCountByRole counts active accounts holding a role
func (s *DashboardService) ActiveCountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND is_active = ?", string(role), true).
		Count(&count).Error
	return count, err
}

// PendingDonations counts donations waiting for a dealer
func (s *DashboardService) PendingDonations(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Donation{}).
		Where("status = ?", string(domain.DonationPending)).
		Count(&count).Error
	return count, err
}

// ShelterCount counts registered shelters
func (s *DashboardService) ShelterCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Shelter{}).Count(&count).Error
	return count, err
}

// LogoCount counts partner logos
func (s *DashboardService) LogoCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Logo{}).Count(&count).Error
	return count, err
}
