package repositories

import (
	"context"

	"scrapseva/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// taskRepository implements TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task
func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID gets a task by ID with volunteers preloaded
func (r *taskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Volunteers").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a task
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete soft deletes a task
func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

// List lists tasks matching the filter with pagination
func (r *taskRepository) List(ctx context.Context, filter *TaskFilter) ([]*models.Task, int64, error) {
	var tasks []*models.Task
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Task{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.VolunteerID != nil {
		query = query.
			Joins("JOIN task_volunteers ON task_volunteers.task_id = tasks.id").
			Where("task_volunteers.user_id = ?", *filter.VolunteerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Volunteers").
		Order("date ASC, time ASC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// SetVolunteers replaces the volunteer assignment of a task
func (r *taskRepository) SetVolunteers(ctx context.Context, task *models.Task, volunteers []*models.User) error {
	return r.db.WithContext(ctx).Model(task).Association("Volunteers").Replace(volunteers)
}
