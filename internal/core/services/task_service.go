package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/core/domain"
	"scrapseva/internal/pkg/pagination"

	"gorm.io/gorm"
)

var ErrNotTaskVolunteer = errors.New("task is not assigned to this volunteer")

// TaskService handles volunteer task management
type TaskService struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
	notifier Notifier
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repositories.TaskRepository, userRepo repositories.UserRepository, notifier Notifier) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// TaskInput carries task fields for create and update
type TaskInput struct {
	TaskTitle    string `json:"taskTitle"`
	TaskType     string `json:"taskType"`
	Description  string `json:"description"`
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"`
	Address      string `json:"address"`
	VolunteerIDs []uint `json:"volunteerIds"`
}

// Create registers a new task and notifies its volunteers
func (s *TaskService) Create(ctx context.Context, adminID uint, input *TaskInput) (*models.TaskResponse, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid task date: %w", err)
	}

	task := &models.Task{
		TaskTitle:   input.TaskTitle,
		TaskType:    input.TaskType,
		Description: input.Description,
		Status:      string(domain.TaskPending),
		Date:        date,
		Time:        input.Time,
		Address:     input.Address,
		CreatedBy:   adminID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	if len(input.VolunteerIDs) > 0 {
		if err := s.assignVolunteers(ctx, task, input.VolunteerIDs); err != nil {
			return nil, err
		}
	}

	log.Printf("✅ Task %d created: %s", task.ID, task.TaskTitle)

	return task.ToResponse(), nil
}

// List returns tasks matching the filter
func (s *TaskService) List(ctx context.Context, status string, volunteerID *uint, params *pagination.Params) ([]*models.TaskResponse, *pagination.Meta, error) {
	filter := &repositories.TaskFilter{
		Status:      status,
		VolunteerID: volunteerID,
		Offset:      params.Offset,
		Limit:       params.Limit,
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*models.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, t.ToResponse())
	}

	return responses, pagination.GetMeta(params, total), nil
}

// GetByID returns a task by ID
func (s *TaskService) GetByID(ctx context.Context, id uint) (*models.TaskResponse, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return task.ToResponse(), nil
}

// Update edits task fields and replaces its volunteer set when one is given
func (s *TaskService) Update(ctx context.Context, id uint, input *TaskInput) (*models.TaskResponse, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TaskTitle != "" {
		task.TaskTitle = input.TaskTitle
	}
	if input.TaskType != "" {
		task.TaskType = input.TaskType
	}
	if input.Description != "" {
		task.Description = input.Description
	}
	if input.Date != "" {
		date, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid task date: %w", err)
		}
		task.Date = date
	}
	if input.Time != "" {
		task.Time = input.Time
	}
	if input.Address != "" {
		task.Address = input.Address
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if input.VolunteerIDs != nil {
		if err := s.assignVolunteers(ctx, task, input.VolunteerIDs); err != nil {
			return nil, err
		}
	}

	return task.ToResponse(), nil
}

// UpdateStatus moves a task along its lifecycle
func (s *TaskService) UpdateStatus(ctx context.Context, id uint, status string) (*models.TaskResponse, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	from := domain.TaskStatus(task.Status)
	to := domain.TaskStatus(status)
	if !from.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	task.Status = string(to)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	for i := range task.Volunteers {
		s.notifier.SendToUser(task.Volunteers[i].ID, "Task update",
			fmt.Sprintf("Task %q is now %s", task.TaskTitle, task.Status),
			map[string]string{"type": "task_update", "task_id": fmt.Sprint(task.ID)})
	}

	return task.ToResponse(), nil
}

// Complete marks an active task completed on behalf of an assigned volunteer
func (s *TaskService) Complete(ctx context.Context, id, volunteerID uint) (*models.TaskResponse, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	assigned := false
	for i := range task.Volunteers {
		if task.Volunteers[i].ID == volunteerID {
			assigned = true
			break
		}
	}
	if !assigned {
		return nil, ErrNotTaskVolunteer
	}

	from := domain.TaskStatus(task.Status)
	if !from.CanTransition(domain.TaskCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, domain.TaskCompleted)
	}
	task.Status = string(domain.TaskCompleted)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task.ToResponse(), nil
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getTask(ctx, id); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

// assignVolunteers validates and replaces the task's volunteer set,
// notifying the newly assigned
func (s *TaskService) assignVolunteers(ctx context.Context, task *models.Task, volunteerIDs []uint) error {
	volunteers := make([]*models.User, 0, len(volunteerIDs))
	for _, vid := range volunteerIDs {
		v, err := s.userRepo.GetByID(ctx, vid)
		if err != nil || v.Role != string(domain.RoleVolunteer) || !v.IsActive {
			return ErrVolunteerNotFound
		}
		volunteers = append(volunteers, v)
	}

	if err := s.taskRepo.SetVolunteers(ctx, task, volunteers); err != nil {
		return err
	}

	for _, v := range volunteers {
		s.notifier.SendToUser(v.ID, "New task assigned",
			fmt.Sprintf("You have been assigned to %q on %s", task.TaskTitle, task.Date.Format("2006-01-02")),
			map[string]string{"type": "task_assigned", "task_id": fmt.Sprint(task.ID)})
	}
	return nil
}

func (s *TaskService) getTask(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}
