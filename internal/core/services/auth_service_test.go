package services

import (
	"context"
	"testing"
	"time"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/config"
	"scrapseva/internal/core/domain"
	"scrapseva/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockResetTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PasswordResetToken), args.Error(1)
}

func (m *MockResetTokenRepository) MarkUsed(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResetTokenRepository) DeleteStale(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockGoogleVerifier struct {
	claims *GoogleClaims
	err    error
}

func (v *mockGoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	return v.claims, v.err
}

type authFixture struct {
	userRepo         *MockUserRepository
	refreshTokenRepo *MockRefreshTokenRepository
	resetTokenRepo   *MockResetTokenRepository
	otpService       *OTPService
	googleVerifier   *mockGoogleVerifier
	svc              *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:         new(MockUserRepository),
		refreshTokenRepo: new(MockRefreshTokenRepository),
		resetTokenRepo:   new(MockResetTokenRepository),
		otpService:       NewOTPService(),
		googleVerifier:   &mockGoogleVerifier{},
	}
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	f.svc = NewAuthService(f.userRepo, f.refreshTokenRepo, f.resetTokenRepo, f.otpService, f.googleVerifier, nil, cfg)
	return f
}

func (f *authFixture) verifyPhone(t *testing.T, phone string) {
	t.Helper()
	code, err := f.otpService.Generate(phone)
	require.NoError(t, err)
	require.NoError(t, f.otpService.Verify(phone, code))
}

func TestSignupRequiresVerifiedPhone(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Signup(context.Background(), &SignupInput{
		Email: "asha@example.com",
		Phone: "9876543210",
	})
	assert.ErrorIs(t, err, ErrPhoneNotVerified)
}

func TestSignup(t *testing.T) {
	f := newAuthFixture()
	f.verifyPhone(t, "9876543210")

	f.userRepo.On("ExistsByEmail", mock.Anything, "asha@example.com").Return(false, nil)
	f.userRepo.On("ExistsByPhone", mock.Anything, "9876543210").Return(false, nil)
	f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 7
		}).Return(nil)
	f.refreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	resp, err := f.svc.Signup(context.Background(), &SignupInput{
		Name:     "Asha Patel",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Password: "secret1",
		City:     "Pune",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.User.ID)
	assert.Equal(t, string(domain.RoleUser), resp.User.Role)
	assert.Equal(t, "/dashboard", resp.RedirectTo)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The OTP is spent; a second signup with the same phone needs a new one
	assert.False(t, f.otpService.IsVerified("9876543210"))

	f.userRepo.AssertExpectations(t)
	f.refreshTokenRepo.AssertExpectations(t)
}

func TestSignupRoleWhitelist(t *testing.T) {
	f := newAuthFixture()
	f.verifyPhone(t, "9876543210")

	_, err := f.svc.Signup(context.Background(), &SignupInput{
		Email: "root@example.com",
		Phone: "9876543210",
		Role:  "ADMIN",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.verifyPhone(t, "9876543210")

	f.userRepo.On("ExistsByEmail", mock.Anything, "asha@example.com").Return(true, nil)

	_, err := f.svc.Signup(context.Background(), &SignupInput{
		Email: "asha@example.com",
		Phone: "9876543210",
		Role:  "DEALER",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestSignupDuplicatePhone(t *testing.T) {
	f := newAuthFixture()
	f.verifyPhone(t, "9876543210")

	f.userRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	f.userRepo.On("ExistsByPhone", mock.Anything, "9876543210").Return(true, nil)

	_, err := f.svc.Signup(context.Background(), &SignupInput{
		Email: "asha@example.com",
		Phone: "9876543210",
	})
	assert.ErrorIs(t, err, ErrPhoneAlreadyUsed)
}

func TestSignin(t *testing.T) {
	f := newAuthFixture()

	hashed, err := password.Hash("secret1")
	require.NoError(t, err)
	dealer := &models.User{ID: 3, Name: "Kabadiwala Bros", Email: "dealer@example.com", Password: hashed, Role: "DEALER", IsActive: true}

	f.userRepo.On("GetByEmail", mock.Anything, "dealer@example.com").Return(dealer, nil)
	f.refreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	resp, err := f.svc.Signin(context.Background(), &SigninInput{Email: "dealer@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "/dealer/dashboard", resp.RedirectTo)

	_, err = f.svc.Signin(context.Background(), &SigninInput{Email: "dealer@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSigninUnknownEmail(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Signin(context.Background(), &SigninInput{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSigninInactive(t *testing.T) {
	f := newAuthFixture()

	user := &models.User{ID: 3, Email: "gone@example.com", IsActive: false}
	f.userRepo.On("GetByEmail", mock.Anything, "gone@example.com").Return(user, nil)

	_, err := f.svc.Signin(context.Background(), &SigninInput{Email: "gone@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestGoogleSigninCreatesDonor(t *testing.T) {
	f := newAuthFixture()
	f.googleVerifier.claims = &GoogleClaims{Sub: "google-sub-1", Email: "asha@gmail.com", EmailVerified: "true", Name: "Asha"}

	f.userRepo.On("GetByGoogleID", mock.Anything, "google-sub-1").Return(nil, gorm.ErrRecordNotFound)
	f.userRepo.On("GetByEmail", mock.Anything, "asha@gmail.com").Return(nil, gorm.ErrRecordNotFound)
	f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 9
		}).Return(nil)
	f.refreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	resp, err := f.svc.GoogleSignin(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleUser), resp.User.Role)
	assert.Equal(t, "/dashboard", resp.RedirectTo)
}

func TestGoogleSigninLinksExistingAccount(t *testing.T) {
	f := newAuthFixture()
	f.googleVerifier.claims = &GoogleClaims{Sub: "google-sub-1", Email: "dealer@example.com", EmailVerified: "true"}

	dealer := &models.User{ID: 3, Email: "dealer@example.com", Role: "DEALER", IsActive: true}
	f.userRepo.On("GetByGoogleID", mock.Anything, "google-sub-1").Return(nil, gorm.ErrRecordNotFound)
	f.userRepo.On("GetByEmail", mock.Anything, "dealer@example.com").Return(dealer, nil)
	f.userRepo.On("Update", mock.Anything, dealer).Return(nil)
	f.refreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	resp, err := f.svc.GoogleSignin(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", dealer.GoogleID)
	assert.Equal(t, "/dealer/dashboard", resp.RedirectTo)
}

func TestGoogleSigninBadToken(t *testing.T) {
	f := newAuthFixture()
	f.googleVerifier.err = ErrGoogleTokenInvalid

	_, err := f.svc.GoogleSignin(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrGoogleTokenInvalid)
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture()

	user := &models.User{ID: 7, Name: "Asha", Email: "asha@example.com", Role: "USER", IsActive: true}
	f.userRepo.On("GetByID", mock.Anything, uint(7)).Return(user, nil)

	var stored string
	f.refreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.RefreshToken).TokenHash
		}).Return(nil)

	pair, err := f.svc.generateTokens(user)
	require.NoError(t, err)
	require.NoError(t, f.svc.storeRefreshToken(context.Background(), 7, pair.RefreshToken))

	f.refreshTokenRepo.On("GetByTokenHash", mock.Anything, stored).
		Return(&models.RefreshToken{ID: 1, UserID: 7, TokenHash: stored, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	f.refreshTokenRepo.On("Revoke", mock.Anything, uint(1)).Return(nil)

	resp, err := f.svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, resp.RefreshToken)

	// The old token is dead after one use
	f.refreshTokenRepo.AssertCalled(t, "Revoke", mock.Anything, uint(1))
}

func TestRefreshTokenRevoked(t *testing.T) {
	f := newAuthFixture()

	user := &models.User{ID: 7, IsActive: true}
	pair, err := f.svc.generateTokens(user)
	require.NoError(t, err)

	now := time.Now()
	f.refreshTokenRepo.On("GetByTokenHash", mock.Anything, password.HashToken(pair.RefreshToken)).
		Return(&models.RefreshToken{ID: 1, UserID: 7, ExpiresAt: now.Add(time.Hour), RevokedAt: &now}, nil)

	_, err = f.svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshTokenUnknownHash(t *testing.T) {
	f := newAuthFixture()

	pair, err := f.svc.generateTokens(&models.User{ID: 7})
	require.NoError(t, err)

	f.refreshTokenRepo.On("GetByTokenHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	_, err = f.svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenGarbage(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture()

	stored := &models.PasswordResetToken{ID: 2, UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}
	user := &models.User{ID: 7, Email: "asha@example.com"}

	f.resetTokenRepo.On("GetByTokenHash", mock.Anything, password.HashToken("reset-token")).Return(stored, nil)
	f.userRepo.On("GetByID", mock.Anything, uint(7)).Return(user, nil)
	f.userRepo.On("Update", mock.Anything, user).Return(nil)
	f.resetTokenRepo.On("MarkUsed", mock.Anything, uint(2)).Return(nil)
	f.refreshTokenRepo.On("RevokeAllByUserID", mock.Anything, uint(7)).Return(nil)

	require.NoError(t, f.svc.ResetPassword(context.Background(), "reset-token", "newsecret"))

	assert.True(t, password.Verify("newsecret", user.Password))
	f.resetTokenRepo.AssertExpectations(t)
	f.refreshTokenRepo.AssertExpectations(t)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture()

	stored := &models.PasswordResetToken{ID: 2, UserID: 7, ExpiresAt: time.Now().Add(-time.Hour)}
	f.resetTokenRepo.On("GetByTokenHash", mock.Anything, mock.Anything).Return(stored, nil)

	err := f.svc.ResetPassword(context.Background(), "reset-token", "newsecret")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	f := newAuthFixture()
	f.resetTokenRepo.On("GetByTokenHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	err := f.svc.ResetPassword(context.Background(), "ghost", "newsecret")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}
