package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	// TaskStatusPending is the state new tasks start in.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusCompleted marks a finished task.
	TaskStatusCompleted TaskStatus = "completed"
)

// Valid reports whether s is a known status value.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// Task represents a to-do item owned by a single user. Reads and writes only
// ever reach a task through its owner's authenticated requests.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description,omitempty" gorm:"size:1024"`
	Status      TaskStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	OwnerID     uuid.UUID  `json:"owner_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate sets the UUID and default status before inserting the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return nil
}
