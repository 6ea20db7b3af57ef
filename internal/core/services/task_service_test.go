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

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) List(ctx context.Context, filter *repositories.TaskFilter) ([]*models.Task, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Task), args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskRepository) SetVolunteers(ctx context.Context, task *models.Task, volunteers []*models.User) error {
	args := m.Called(ctx, task, volunteers)
	return args.Error(0)
}

func newTaskService(taskRepo *MockTaskRepository, userRepo *MockUserRepository) *TaskService {
	return NewTaskService(taskRepo, userRepo, noopNotifier{})
}

func TestCreateTask(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	userRepo := new(MockUserRepository)

	volunteer := &models.User{ID: 4, Name: "Ravi", Role: "VOLUNTEER", IsActive: true}

	taskRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Task")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Task).ID = 5
		}).Return(nil)
	userRepo.On("GetByID", mock.Anything, uint(4)).Return(volunteer, nil)
	taskRepo.On("SetVolunteers", mock.Anything, mock.AnythingOfType("*models.Task"), mock.Anything).Return(nil)

	svc := newTaskService(taskRepo, userRepo)

	resp, err := svc.Create(context.Background(), 99, &TaskInput{
		TaskTitle:    "Shelter cleanup",
		TaskType:     "maintenance",
		Date:         "2026-04-10",
		Time:         "09:00",
		Address:      "Gaushala lane",
		VolunteerIDs: []uint{4},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(5), resp.ID)
	assert.Equal(t, string(domain.TaskPending), resp.Status)

	taskRepo.AssertExpectations(t)
}

func TestCreateTaskBadDate(t *testing.T) {
	svc := newTaskService(new(MockTaskRepository), new(MockUserRepository))

	_, err := svc.Create(context.Background(), 99, &TaskInput{TaskTitle: "x", Date: "10/04/2026"})
	assert.Error(t, err)
}

func TestCreateTaskRejectsNonVolunteer(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	userRepo := new(MockUserRepository)

	dealer := &models.User{ID: 3, Role: "DEALER", IsActive: true}

	taskRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Task")).Return(nil)
	userRepo.On("GetByID", mock.Anything, uint(3)).Return(dealer, nil)

	svc := newTaskService(taskRepo, userRepo)

	_, err := svc.Create(context.Background(), 99, &TaskInput{
		TaskTitle:    "Shelter cleanup",
		Date:         "2026-04-10",
		VolunteerIDs: []uint{3},
	})
	assert.ErrorIs(t, err, ErrVolunteerNotFound)
	taskRepo.AssertNotCalled(t, "SetVolunteers", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskUpdateStatus(t *testing.T) {
	taskRepo := new(MockTaskRepository)

	task := &models.Task{ID: 5, TaskTitle: "Shelter cleanup", Status: string(domain.TaskPending)}
	taskRepo.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
	taskRepo.On("Update", mock.Anything, task).Return(nil)

	svc := newTaskService(taskRepo, new(MockUserRepository))

	resp, err := svc.UpdateStatus(context.Background(), 5, string(domain.TaskActive))
	require.NoError(t, err)
	assert.Equal(t, string(domain.TaskActive), resp.Status)

	// Pending straight to completed is refused
	task.Status = string(domain.TaskPending)
	_, err = svc.UpdateStatus(context.Background(), 5, string(domain.TaskCompleted))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCompleteTask(t *testing.T) {
	taskRepo := new(MockTaskRepository)

	task := &models.Task{
		ID:         5,
		Status:     string(domain.TaskActive),
		Volunteers: []models.User{{ID: 4, Role: "VOLUNTEER"}},
	}
	taskRepo.On("GetByID", mock.Anything, uint(5)).Return(task, nil)
	taskRepo.On("Update", mock.Anything, task).Return(nil)

	svc := newTaskService(taskRepo, new(MockUserRepository))

	// A volunteer outside the task's set is refused
	_, err := svc.Complete(context.Background(), 5, 8)
	assert.ErrorIs(t, err, ErrNotTaskVolunteer)

	resp, err := svc.Complete(context.Background(), 5, 4)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TaskCompleted), resp.Status)
}

func TestCompleteTaskNotActive(t *testing.T) {
	taskRepo := new(MockTaskRepository)

	task := &models.Task{
		ID:         5,
		Status:     string(domain.TaskCancelled),
		Volunteers: []models.User{{ID: 4}},
	}
	taskRepo.On("GetByID", mock.Anything, uint(5)).Return(task, nil)

	svc := newTaskService(taskRepo, new(MockUserRepository))

	_, err := svc.Complete(context.Background(), 5, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
