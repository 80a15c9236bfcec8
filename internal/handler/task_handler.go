package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskboard/internal/apperr"
	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// TaskHandler handles task CRUD endpoints. All routes sit behind the bearer
// middleware; the owner id comes from the request context.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// UpdateTaskRequest represents a partial task update; absent fields are left
// untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending completed"`
}

// CreateTaskResponse wraps the created task.
type CreateTaskResponse struct {
	Task *model.Task `json:"task"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Msg string `json:"msg"`
}

func ownerID(c echo.Context) (uuid.UUID, bool) {
	return auth.UserID(c)
}

// Create godoc
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 200 {object} CreateTaskResponse
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Failure 500 {object} apperr.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperr.ErrorResponse{Msg: "Unauthorized"})
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Msg: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Msg: err.Error()})
	}

	task, err := h.taskService.Create(c.Request().Context(), owner, req.Title, req.Description)
	if err != nil {
		status, body := apperr.MapToHTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, CreateTaskResponse{Task: task})
}

// List godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, completed)
// @Success 200 {array} model.Task
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Failure 500 {object} apperr.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperr.ErrorResponse{Msg: "Unauthorized"})
	}

	status := model.TaskStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Msg: "Invalid status filter"})
	}

	tasks, err := h.taskService.List(c.Request().Context(), owner, status)
	if err != nil {
		s, body := apperr.MapToHTTP(err)
		return c.JSON(s, body)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Failure 500 {object} apperr.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperr.ErrorResponse{Msg: "Unauthorized"})
	}

	// A malformed id cannot match any task, so it reads as not found.
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		status, body := apperr.MapToHTTP(apperr.ErrTaskNotFound)
		return c.JSON(status, body)
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Msg: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Msg: err.Error()})
	}

	upd := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		upd.Status = &status
	}

	task, err := h.taskService.Update(c.Request().Context(), owner, id, upd)
	if err != nil {
		status, body := apperr.MapToHTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Failure 500 {object} apperr.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperr.ErrorResponse{Msg: "Unauthorized"})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		status, body := apperr.MapToHTTP(apperr.ErrTaskNotFound)
		return c.JSON(status, body)
	}

	if err := h.taskService.Delete(c.Request().Context(), owner, id); err != nil {
		status, body := apperr.MapToHTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "Task removed"})
}
