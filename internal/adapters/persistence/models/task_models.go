package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Volunteer Task Tables
// ============================================================

// Task represents tasks table
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TaskTitle   string         `gorm:"size:150;not null" json:"task_title"`
	TaskType    string         `gorm:"size:50;not null" json:"task_type"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Date        time.Time      `gorm:"type:date;not null" json:"date"`
	Time        string         `gorm:"size:10" json:"time"`
	Address     string         `gorm:"type:text" json:"address"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Volunteers []User `gorm:"many2many:task_volunteers" json:"volunteers,omitempty"`
	Creator    *User  `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskResponse DTO
type TaskResponse struct {
	ID          uint            `json:"id"`
	TaskTitle   string          `json:"task_title"`
	TaskType    string          `json:"task_type"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Address     string          `json:"address"`
	Volunteers  []*UserResponse `json:"volunteers"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (t *Task) ToResponse() *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID,
		TaskTitle:   t.TaskTitle,
		TaskType:    t.TaskType,
		Description: t.Description,
		Status:      t.Status,
		Date:        t.Date.Format("2006-01-02"),
		Time:        t.Time,
		Address:     t.Address,
		Volunteers:  make([]*UserResponse, 0, len(t.Volunteers)),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	for i := range t.Volunteers {
		resp.Volunteers = append(resp.Volunteers, t.Volunteers[i].ToResponse())
	}
	return resp
}
