package handlers

import (
	"errors"

	"scrapseva/internal/core/domain"
	"scrapseva/internal/core/services"
	"scrapseva/internal/pkg/pagination"
	"scrapseva/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles volunteer task endpoints
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create godoc
// @Summary Create a volunteer task (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /admin/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	var req services.TaskInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	errs := map[string]string{}
	if req.TaskTitle == "" {
		errs["taskTitle"] = "Task title is required"
	}
	if req.TaskType == "" {
		errs["taskType"] = "Task type is required"
	}
	if req.Date == "" {
		errs["date"] = "Date is required"
	}
	if len(errs) > 0 {
		return response.ValidationFailed(c, errs)
	}

	task, err := h.taskService.Create(c.Context(), adminID, &req)
	if err != nil {
		return taskError(c, err)
	}

	return response.Created(c, "Task created", task)
}

// ListAll godoc
// @Summary List tasks (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /admin/tasks [get]
func (h *TaskHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	tasks, meta, err := h.taskService.List(c.Context(), c.Query("status"), nil, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tasks")
	}

	return c.JSON(pagination.Response{Data: tasks, Meta: meta})
}

// ListMine godoc
// @Summary List tasks assigned to the signed-in volunteer
// @Tags volunteer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /volunteer/tasks [get]
func (h *TaskHandler) ListMine(c *fiber.Ctx) error {
	volunteerID := c.Locals("userID").(uint)
	params := pagination.GetParams(c)

	tasks, meta, err := h.taskService.List(c.Context(), c.Query("status"), &volunteerID, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tasks")
	}

	return c.JSON(pagination.Response{Data: tasks, Meta: meta})
}

// GetByID godoc
// @Summary Get a task (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Router /admin/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.GetByID(c.Context(), uint(id))
	if err != nil {
		return taskError(c, err)
	}

	return response.Success(c, "", task)
}

// Update godoc
// @Summary Update a task (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Router /admin/tasks/{id} [patch]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid task ID")
	}

	var req services.TaskInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.taskService.Update(c.Context(), uint(id), &req)
	if err != nil {
		return taskError(c, err)
	}

	return response.Success(c, "Task updated", task)
}

// UpdateStatus godoc
// @Summary Move a task along its lifecycle (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Router /admin/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid task ID")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return response.BadRequest(c, "status is required")
	}

	task, err := h.taskService.UpdateStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		return taskError(c, err)
	}

	return response.Success(c, "Task status updated", task)
}

// Complete godoc
// @Summary Mark an assigned task completed (volunteer)
// @Tags volunteer
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Router /volunteer/tasks/{id}/complete [patch]
func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	volunteerID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Complete(c.Context(), uint(id), volunteerID)
	if err != nil {
		return taskError(c, err)
	}

	return response.Success(c, "Task completed", task)
}

// Delete godoc
// @Summary Delete a task (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Router /admin/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid task ID")
	}

	if err := h.taskService.Delete(c.Context(), uint(id)); err != nil {
		return taskError(c, err)
	}

	return response.Success(c, "Task deleted", nil)
}

// taskError maps task service errors to HTTP responses
func taskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return response.NotFound(c, "Task not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrVolunteerNotFound):
		return response.BadRequest(c, "Volunteer not found or not active")
	case errors.Is(err, services.ErrNotTaskVolunteer):
		return response.Forbidden(c, "You don't have permission to access this resource")
	default:
		return response.BadRequest(c, err.Error())
	}
}
