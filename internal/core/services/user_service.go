package services

import (
	"context"
	"errors"
	"log"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/core/domain"
	"scrapseva/internal/pkg/pagination"
	"scrapseva/internal/pkg/password"

	"gorm.io/gorm"
)

var (
	ErrWrongPassword  = errors.New("current password is incorrect")
	ErrEmailTaken     = errors.New("email is already in use")
	ErrPhoneTaken     = errors.New("phone number is already in use")
	ErrCannotEditSelf = errors.New("admins cannot change their own account state")
)

// UserService handles user management for admin screens and self-service
// profile operations
type UserService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, refreshTokenRepo repositories.RefreshTokenRepository) *UserService {
	return &UserService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// UpdateProfileInput carries the editable profile fields. Nil pointers leave
// the stored value alone.
type UpdateProfileInput struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	ShopName     *string `json:"shopName"`
	ProfileImage *string `json:"-"`
}

// AdminUpdateUserInput carries the fields an admin may edit on any account
type AdminUpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	ShopName *string `json:"shopName"`
	IsActive *bool   `json:"isActive"`
}

// ListUsers returns users matching the filter, with pagination metadata
func (s *UserService) ListUsers(ctx context.Context, role, city, search string, active *bool, params *pagination.Params) ([]*models.UserResponse, *pagination.Meta, error) {
	filter := &repositories.UserFilter{
		Role:   role,
		City:   city,
		Search: search,
		Active: active,
		Offset: params.Offset,
		Limit:  params.Limit,
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	return responses, pagination.GetMeta(params, total), nil
}

// ListDealers returns active dealers, optionally narrowed by city
func (s *UserService) ListDealers(ctx context.Context, city string, params *pagination.Params) ([]*models.UserResponse, *pagination.Meta, error) {
	active := true
	return s.ListUsers(ctx, string(domain.RoleDealer), city, "", &active, params)
}

// ListVolunteers returns active volunteers
func (s *UserService) ListVolunteers(ctx context.Context, city string, params *pagination.Params) ([]*models.UserResponse, *pagination.Meta, error) {
	active := true
	return s.ListUsers(ctx, string(domain.RoleVolunteer), city, "", &active, params)
}

// GetProfile returns the profile of a user
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile applies self-service profile edits
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Phone != nil && *input.Phone != user.Phone {
		taken, err := s.userRepo.ExistsByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPhoneTaken
		}
		user.Phone = *input.Phone
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.ShopName != nil {
		user.ShopName = *input.ShopName
	}
	if input.ProfileImage != nil {
		user.ProfileImage = *input.ProfileImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// ChangePassword verifies the current password before setting the new one.
// Other sessions are revoked.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !password.Verify(currentPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

// DeleteAccount soft deletes the caller's own account and kills its sessions
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

// AdminGetUser returns any user by ID
func (s *UserService) AdminGetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// AdminUpdateUser applies admin edits to any account
func (s *UserService) AdminUpdateUser(ctx context.Context, adminID, id uint, input *AdminUpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.IsActive != nil && adminID == id {
		return nil, ErrCannotEditSelf
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Phone != nil && *input.Phone != user.Phone {
		taken, err := s.userRepo.ExistsByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPhoneTaken
		}
		user.Phone = *input.Phone
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.ShopName != nil {
		user.ShopName = *input.ShopName
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Deactivation ends every live session immediately
	if input.IsActive != nil && !*input.IsActive {
		if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, id); err != nil {
			log.Printf("⚠️ Failed to revoke sessions for deactivated user %d: %v", id, err)
		}
	}

	return user.ToResponse(), nil
}

// AdminDeleteUser soft deletes any account
func (s *UserService) AdminDeleteUser(ctx context.Context, adminID, id uint) error {
	if adminID == id {
		return ErrCannotEditSelf
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, id)
}
