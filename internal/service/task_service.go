package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/apperr"
	"taskboard/internal/cache"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const listCacheTTL = time.Minute

// TaskUpdate carries the fields of a partial update; nil means "leave as is".
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
}

// TaskService implements owner-scoped task CRUD. Every call takes the
// authenticated owner id extracted by the auth middleware.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, status model.TaskStatus) ([]model.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, upd TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}

type taskService struct {
	tasks repository.TaskRepository
	cache *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{tasks: tasks, cache: cache}
}

func listCacheKey(ownerID uuid.UUID, status model.TaskStatus) string {
	return fmt.Sprintf("tasks:%s:%s", ownerID, status)
}

// invalidateLists drops every cached list variant for the owner. The status
// enum is closed, so the three keys cover all of them.
func (s *taskService) invalidateLists(ctx context.Context, ownerID uuid.UUID) {
	s.cache.Delete(ctx,
		listCacheKey(ownerID, ""),
		listCacheKey(ownerID, model.TaskStatusPending),
		listCacheKey(ownerID, model.TaskStatusCompleted),
	)
}

// Create stores a new pending task for the owner.
func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Task, error) {
	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      model.TaskStatusPending,
		OwnerID:     ownerID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.invalidateLists(ctx, ownerID)
	return task, nil
}

// List returns the owner's tasks, optionally filtered by exact status,
// served from the read-through cache when Redis has them.
func (s *taskService) List(ctx context.Context, ownerID uuid.UUID, status model.TaskStatus) ([]model.Task, error) {
	key := listCacheKey(ownerID, status)
	if data := s.cache.Get(ctx, key); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.tasks.ListByOwner(ctx, ownerID, status)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if payload, err := json.Marshal(tasks); err == nil {
		s.cache.Set(ctx, key, payload, listCacheTTL)
	}
	return tasks, nil
}

// Update merges the supplied fields into the task matching both id and owner
// in a single statement. updated_at is refreshed even when no field changed.
func (s *taskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, upd TaskUpdate) (*model.Task, error) {
	values := map[string]interface{}{"updated_at": time.Now()}
	if upd.Title != nil {
		values["title"] = *upd.Title
	}
	if upd.Description != nil {
		values["description"] = *upd.Description
	}
	if upd.Status != nil {
		values["status"] = *upd.Status
	}

	affected, err := s.tasks.UpdateOwned(ctx, taskID, ownerID, values)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return nil, apperr.ErrTaskNotFound
	}
	s.invalidateLists(ctx, ownerID)

	task, err := s.tasks.FindOwned(ctx, taskID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	return task, nil
}

// Delete removes the task matching both id and owner.
func (s *taskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	affected, err := s.tasks.DeleteOwned(ctx, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return apperr.ErrTaskNotFound
	}
	s.invalidateLists(ctx, ownerID)
	return nil
}
