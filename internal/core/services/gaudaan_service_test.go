package services

import (
	"context"
	"testing"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGaudaanRepository struct {
	mock.Mock
}

func (m *MockGaudaanRepository) Create(ctx context.Context, gaudaan *models.Gaudaan) error {
	args := m.Called(ctx, gaudaan)
	return args.Error(0)
}

func (m *MockGaudaanRepository) GetByID(ctx context.Context, id uint) (*models.Gaudaan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gaudaan), args.Error(1)
}

func (m *MockGaudaanRepository) Update(ctx context.Context, gaudaan *models.Gaudaan) error {
	args := m.Called(ctx, gaudaan)
	return args.Error(0)
}

func (m *MockGaudaanRepository) List(ctx context.Context, filter *repositories.GaudaanFilter) ([]*models.Gaudaan, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Gaudaan), args.Get(1).(int64), args.Error(2)
}

func (m *MockGaudaanRepository) AppendHistory(ctx context.Context, entry *models.GaudaanStatusHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func newGaudaanService(gaudaanRepo *MockGaudaanRepository, userRepo *MockUserRepository) *GaudaanService {
	// Shelter lookups are skipped when no shelter ID is passed
	return NewGaudaanService(gaudaanRepo, userRepo, nil, noopNotifier{})
}

func TestCreateGaudaan(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)

	gaudaanRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Gaudaan")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Gaudaan).ID = 11
		}).Return(nil)
	gaudaanRepo.On("AppendHistory", mock.Anything, mock.AnythingOfType("*models.GaudaanStatusHistory")).Return(nil)

	svc := newGaudaanService(gaudaanRepo, new(MockUserRepository))

	resp, err := svc.Create(context.Background(), 7, &CreateGaudaanInput{
		AnimalType: "cow",
		Condition:  "injured leg",
		Address:    "Village road",
		City:       "Nashik",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(11), resp.ID)
	assert.Equal(t, string(domain.GaudaanUnassigned), resp.Status)
	// A zero animal count defaults to one
	assert.Equal(t, 1, resp.AnimalCount)

	gaudaanRepo.AssertExpectations(t)
}

func TestAssignVolunteer(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)
	userRepo := new(MockUserRepository)

	gaudaan := &models.Gaudaan{ID: 1, DonorID: 7, Status: string(domain.GaudaanUnassigned), AnimalType: "cow", City: "Nashik"}
	volunteer := &models.User{ID: 4, Name: "Ravi", Role: "VOLUNTEER", IsActive: true}

	gaudaanRepo.On("GetByID", mock.Anything, uint(1)).Return(gaudaan, nil)
	userRepo.On("GetByID", mock.Anything, uint(4)).Return(volunteer, nil)
	gaudaanRepo.On("Update", mock.Anything, gaudaan).Return(nil)
	gaudaanRepo.On("AppendHistory", mock.Anything, mock.AnythingOfType("*models.GaudaanStatusHistory")).Return(nil)

	svc := newGaudaanService(gaudaanRepo, userRepo)

	resp, err := svc.AssignVolunteer(context.Background(), 1, 4, nil, 99)
	require.NoError(t, err)
	assert.Equal(t, string(domain.GaudaanAssigned), resp.Status)
	require.NotNil(t, gaudaan.VolunteerID)
	assert.Equal(t, uint(4), *gaudaan.VolunteerID)
}

func TestAssignVolunteerWrongRole(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)
	userRepo := new(MockUserRepository)

	gaudaan := &models.Gaudaan{ID: 1, Status: string(domain.GaudaanUnassigned)}
	dealer := &models.User{ID: 4, Role: "DEALER", IsActive: true}

	gaudaanRepo.On("GetByID", mock.Anything, uint(1)).Return(gaudaan, nil)
	userRepo.On("GetByID", mock.Anything, uint(4)).Return(dealer, nil)

	svc := newGaudaanService(gaudaanRepo, userRepo)

	_, err := svc.AssignVolunteer(context.Background(), 1, 4, nil, 99)
	assert.ErrorIs(t, err, ErrVolunteerNotFound)
}

func TestUpdateStatusRequiresAssignment(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)

	gaudaan := &models.Gaudaan{ID: 1, DonorID: 7, VolunteerID: uintPtr(4), Status: string(domain.GaudaanAssigned)}
	gaudaanRepo.On("GetByID", mock.Anything, uint(1)).Return(gaudaan, nil)

	svc := newGaudaanService(gaudaanRepo, new(MockUserRepository))

	_, err := svc.UpdateStatus(context.Background(), 1, 5, string(domain.GaudaanPickedUp), nil, "")
	assert.ErrorIs(t, err, ErrNotAssignedVolunteer)
}

func TestUpdateStatusShelterRequired(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)

	gaudaan := &models.Gaudaan{ID: 1, DonorID: 7, VolunteerID: uintPtr(4), Status: string(domain.GaudaanPickedUp)}
	gaudaanRepo.On("GetByID", mock.Anything, uint(1)).Return(gaudaan, nil)

	svc := newGaudaanService(gaudaanRepo, new(MockUserRepository))

	// No shelter set at assignment and none passed now
	_, err := svc.UpdateStatus(context.Background(), 1, 4, string(domain.GaudaanShelter), nil, "")
	assert.ErrorIs(t, err, ErrShelterRequired)
}

func TestUpdateStatusShelterWithTarget(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)

	gaudaan := &models.Gaudaan{
		ID:          1,
		DonorID:     7,
		VolunteerID: uintPtr(4),
		ShelterID:   uintPtr(2),
		Status:      string(domain.GaudaanPickedUp),
	}
	gaudaanRepo.On("GetByID", mock.Anything, uint(1)).Return(gaudaan, nil)
	gaudaanRepo.On("Update", mock.Anything, gaudaan).Return(nil)
	gaudaanRepo.On("AppendHistory", mock.Anything, mock.AnythingOfType("*models.GaudaanStatusHistory")).Return(nil)

	svc := newGaudaanService(gaudaanRepo, new(MockUserRepository))

	resp, err := svc.UpdateStatus(context.Background(), 1, 4, string(domain.GaudaanShelter), nil, "Reached shelter")
	require.NoError(t, err)
	assert.Equal(t, string(domain.GaudaanShelter), resp.Status)
}

func TestUpdateStatusRestrictedTargets(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)

	svc := newGaudaanService(gaudaanRepo, new(MockUserRepository))

	// Give-back and rejection are not reachable through the status walk
	for _, status := range []string{
		string(domain.GaudaanUnassigned),
		string(domain.GaudaanRejected),
		"bogus",
	} {
		_, err := svc.UpdateStatus(context.Background(), 1, 4, status, nil, "")
		assert.ErrorIs(t, err, ErrStatusNotAllowed, status)
	}
	gaudaanRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUnassignClearsVolunteer(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)

	gaudaan := &models.Gaudaan{ID: 1, DonorID: 7, VolunteerID: uintPtr(4), Status: string(domain.GaudaanAssigned)}
	gaudaanRepo.On("GetByID", mock.Anything, uint(1)).Return(gaudaan, nil)
	gaudaanRepo.On("Update", mock.Anything, gaudaan).Return(nil)
	gaudaanRepo.On("AppendHistory", mock.Anything, mock.AnythingOfType("*models.GaudaanStatusHistory")).Return(nil)

	svc := newGaudaanService(gaudaanRepo, new(MockUserRepository))

	resp, err := svc.Unassign(context.Background(), 1, 4, "Unreachable donor")
	require.NoError(t, err)
	assert.Equal(t, string(domain.GaudaanUnassigned), resp.Status)
	assert.Nil(t, gaudaan.VolunteerID)
}

func TestUnassignRequiresAssignment(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)

	gaudaan := &models.Gaudaan{ID: 1, DonorID: 7, VolunteerID: uintPtr(4), Status: string(domain.GaudaanAssigned)}
	gaudaanRepo.On("GetByID", mock.Anything, uint(1)).Return(gaudaan, nil)

	svc := newGaudaanService(gaudaanRepo, new(MockUserRepository))

	_, err := svc.Unassign(context.Background(), 1, 5, "")
	assert.ErrorIs(t, err, ErrNotAssignedVolunteer)
	gaudaanRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatusInvalidEdge(t *testing.T) {
	gaudaanRepo := new(MockGaudaanRepository)

	gaudaan := &models.Gaudaan{ID: 1, DonorID: 7, VolunteerID: uintPtr(4), Status: string(domain.GaudaanAssigned)}
	gaudaanRepo.On("GetByID", mock.Anything, uint(1)).Return(gaudaan, nil)

	svc := newGaudaanService(gaudaanRepo, new(MockUserRepository))

	// Skipping straight to dropped from assigned is refused
	_, err := svc.UpdateStatus(context.Background(), 1, 4, string(domain.GaudaanDropped), nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	gaudaanRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
