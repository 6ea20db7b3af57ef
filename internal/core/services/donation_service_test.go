package services

import (
	"context"
	"testing"
	"time"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock repositories for testing
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) GetByID(ctx context.Context, id uint) (*models.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

func (m *MockDonationRepository) Update(ctx context.Context, donation *models.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) List(ctx context.Context, filter *repositories.DonationFilter) ([]*models.Donation, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) AppendLog(ctx context.Context, entry *models.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDonationRepository) AddImage(ctx context.Context, image *models.DonationImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockDonationRepository) ListForPickupDate(ctx context.Context, date string, status string) ([]*models.Donation, error) {
	args := m.Called(ctx, date, status)
	return args.Get(0).([]*models.Donation), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filter *repositories.UserFilter) ([]*models.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role string, activeOnly bool) (int64, error) {
	args := m.Called(ctx, role, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}

// noopNotifier swallows push notifications in tests
type noopNotifier struct{}

func (noopNotifier) SendToUser(userID uint, title, body string, data map[string]string) {}

func newDonationService(donationRepo *MockDonationRepository, userRepo *MockUserRepository) *DonationService {
	return NewDonationService(donationRepo, userRepo, noopNotifier{})
}

func uintPtr(v uint) *uint { return &v }

func TestCreateDonation(t *testing.T) {
	donationRepo := new(MockDonationRepository)
	userRepo := new(MockUserRepository)

	donationRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Donation")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Donation).ID = 42
		}).Return(nil)
	donationRepo.On("AddImage", mock.Anything, mock.AnythingOfType("*models.DonationImage")).Return(nil)
	donationRepo.On("AppendLog", mock.Anything, mock.AnythingOfType("*models.ActivityLog")).Return(nil)

	svc := newDonationService(donationRepo, userRepo)

	resp, err := svc.Create(context.Background(), 7, &CreateDonationInput{
		ScrapType:  "metal",
		PickupDate: "2026-03-15",
		PickupTime: "10:00",
		Address:    "12 MG Road",
		City:       "Pune",
		Images:     []string{"/uploads/donations/a.jpg", "/uploads/donations/b.jpg"},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), resp.ID)
	assert.Equal(t, string(domain.DonationPending), resp.Status)

	donationRepo.AssertNumberOfCalls(t, "AddImage", 2)
	donationRepo.AssertExpectations(t)
}

func TestCreateDonationBadDate(t *testing.T) {
	svc := newDonationService(new(MockDonationRepository), new(MockUserRepository))

	_, err := svc.Create(context.Background(), 7, &CreateDonationInput{
		ScrapType:  "metal",
		PickupDate: "15-03-2026",
	})
	assert.Error(t, err)
}

func TestAssignDealer(t *testing.T) {
	donationRepo := new(MockDonationRepository)
	userRepo := new(MockUserRepository)

	donation := &models.Donation{ID: 1, DonorID: 7, Status: string(domain.DonationPending), ScrapType: "metal", City: "Pune"}
	dealer := &models.User{ID: 3, Name: "Kabadiwala Bros", Role: "DEALER", IsActive: true}

	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)
	userRepo.On("GetByID", mock.Anything, uint(3)).Return(dealer, nil)
	donationRepo.On("Update", mock.Anything, donation).Return(nil)
	donationRepo.On("AppendLog", mock.Anything, mock.AnythingOfType("*models.ActivityLog")).Return(nil)

	svc := newDonationService(donationRepo, userRepo)

	resp, err := svc.AssignDealer(context.Background(), 1, 3, 99)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DonationAssigned), resp.Status)
	require.NotNil(t, donation.DealerID)
	assert.Equal(t, uint(3), *donation.DealerID)

	donationRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestAssignDealerInactive(t *testing.T) {
	donationRepo := new(MockDonationRepository)
	userRepo := new(MockUserRepository)

	donation := &models.Donation{ID: 1, DonorID: 7, Status: string(domain.DonationPending)}
	dealer := &models.User{ID: 3, Role: "DEALER", IsActive: false}

	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)
	userRepo.On("GetByID", mock.Anything, uint(3)).Return(dealer, nil)

	svc := newDonationService(donationRepo, userRepo)

	_, err := svc.AssignDealer(context.Background(), 1, 3, 99)
	assert.ErrorIs(t, err, ErrDealerNotFound)
	assert.Equal(t, string(domain.DonationPending), donation.Status)
}

func TestAssignDealerWrongState(t *testing.T) {
	donationRepo := new(MockDonationRepository)
	userRepo := new(MockUserRepository)

	donation := &models.Donation{ID: 1, Status: string(domain.DonationPickedUp)}
	dealer := &models.User{ID: 3, Role: "DEALER", IsActive: true}

	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)
	userRepo.On("GetByID", mock.Anything, uint(3)).Return(dealer, nil)

	svc := newDonationService(donationRepo, userRepo)

	_, err := svc.AssignDealer(context.Background(), 1, 3, 99)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	donationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDonationNotFound(t *testing.T) {
	donationRepo := new(MockDonationRepository)
	donationRepo.On("GetByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	_, err := svc.GetDetail(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

func TestGetDetailProjectsTimeline(t *testing.T) {
	donationRepo := new(MockDonationRepository)

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	donation := &models.Donation{
		ID:     1,
		Status: string(domain.DonationAssigned),
		ActivityLog: []models.ActivityLog{
			{Action: models.LogActionCreated, CreatedAt: created},
			{Action: models.LogActionAssigned, CreatedAt: created.Add(time.Hour)},
		},
	}
	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	detail, err := svc.GetDetail(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, detail.Timeline, 6)
	assert.True(t, detail.Timeline[0].Done)
	assert.True(t, detail.Timeline[1].Done)
	assert.False(t, detail.Timeline[2].Done)
}

func TestAcceptRequiresAssignment(t *testing.T) {
	donationRepo := new(MockDonationRepository)

	donation := &models.Donation{ID: 1, DealerID: uintPtr(3), Status: string(domain.DonationAssigned)}
	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)
	donationRepo.On("AppendLog", mock.Anything, mock.AnythingOfType("*models.ActivityLog")).Return(nil)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	// Another dealer cannot accept
	_, err := svc.Accept(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrNotAssignedDealer)

	// The assigned dealer can; the status does not move
	resp, err := svc.Accept(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DonationAssigned), resp.Status)
}

func TestAcceptAfterPickupRefused(t *testing.T) {
	donationRepo := new(MockDonationRepository)

	donation := &models.Donation{ID: 1, DealerID: uintPtr(3), Status: string(domain.DonationPickedUp)}
	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	_, err := svc.Accept(context.Background(), 1, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelOwnership(t *testing.T) {
	donationRepo := new(MockDonationRepository)

	donation := &models.Donation{ID: 1, DonorID: 7, Status: string(domain.DonationPending)}
	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)
	donationRepo.On("Update", mock.Anything, donation).Return(nil)
	donationRepo.On("AppendLog", mock.Anything, mock.AnythingOfType("*models.ActivityLog")).Return(nil)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	_, err := svc.Cancel(context.Background(), 1, 8)
	assert.ErrorIs(t, err, ErrNotDonationOwner)

	resp, err := svc.Cancel(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DonationCancelled), resp.Status)
}

func TestCancelAfterPickupRefused(t *testing.T) {
	donationRepo := new(MockDonationRepository)

	donation := &models.Donation{ID: 1, DonorID: 7, Status: string(domain.DonationPickedUp)}
	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	_, err := svc.Cancel(context.Background(), 1, 7)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUnassignReturnsToPool(t *testing.T) {
	donationRepo := new(MockDonationRepository)

	donation := &models.Donation{ID: 1, DonorID: 7, DealerID: uintPtr(3), Status: string(domain.DonationAssigned)}
	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)
	donationRepo.On("Update", mock.Anything, donation).Return(nil)
	donationRepo.On("AppendLog", mock.Anything, mock.AnythingOfType("*models.ActivityLog")).Return(nil)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	resp, err := svc.Unassign(context.Background(), 1, 3, "")
	require.NoError(t, err)
	assert.Equal(t, string(domain.DonationPending), resp.Status)
	assert.Nil(t, donation.DealerID)
}

func TestMarkDonatedRequiresPriceAndWeight(t *testing.T) {
	donationRepo := new(MockDonationRepository)

	donation := &models.Donation{ID: 1, DonorID: 7, DealerID: uintPtr(3), Status: string(domain.DonationPickedUp)}
	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	_, err := svc.MarkDonated(context.Background(), 1, 3, true, &DonatedInput{Price: 0, Weight: 12})
	assert.ErrorIs(t, err, ErrPriceWeightRequired)

	_, err = svc.MarkDonated(context.Background(), 1, 3, true, &DonatedInput{Price: 340, Weight: 0})
	assert.ErrorIs(t, err, ErrPriceWeightRequired)

	donationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkDonated(t *testing.T) {
	donationRepo := new(MockDonationRepository)

	donation := &models.Donation{ID: 1, DonorID: 7, DealerID: uintPtr(3), Status: string(domain.DonationPickedUp)}
	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)
	donationRepo.On("Update", mock.Anything, donation).Return(nil)
	donationRepo.On("AppendLog", mock.Anything, mock.AnythingOfType("*models.ActivityLog")).Return(nil)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	// A dealer who is not assigned is refused
	_, err := svc.MarkDonated(context.Background(), 1, 5, true, &DonatedInput{Price: 340, Weight: 12})
	assert.ErrorIs(t, err, ErrNotAssignedDealer)

	// An admin skips the assignment check
	resp, err := svc.MarkDonated(context.Background(), 1, 99, false, &DonatedInput{Price: 340, Weight: 12})
	require.NoError(t, err)
	assert.Equal(t, string(domain.DonationDonated), resp.Status)
	require.NotNil(t, donation.Price)
	assert.Equal(t, 340.0, *donation.Price)
	assert.Equal(t, 12.0, *donation.Weight)
}

func TestProcessedAndRecycledChain(t *testing.T) {
	donationRepo := new(MockDonationRepository)

	donation := &models.Donation{ID: 1, DonorID: 7, Status: string(domain.DonationDonated)}
	donationRepo.On("GetByID", mock.Anything, uint(1)).Return(donation, nil)
	donationRepo.On("Update", mock.Anything, donation).Return(nil)
	donationRepo.On("AppendLog", mock.Anything, mock.AnythingOfType("*models.ActivityLog")).Return(nil)

	svc := newDonationService(donationRepo, new(MockUserRepository))

	// Recycled before processed is refused
	_, err := svc.MarkRecycled(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	resp, err := svc.MarkProcessed(context.Background(), 1, 99)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DonationProcessed), resp.Status)

	resp, err = svc.MarkRecycled(context.Background(), 1, 99)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DonationRecycled), resp.Status)
}
