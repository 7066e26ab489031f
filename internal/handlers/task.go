package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/dto"
	apierrors "github.com/BharadwajDivyanshu/Task-Manager/internal/errors"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/middleware"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/services"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
	}
}

// ListTasks returns the filtered view for the caller's view state
func (h *TaskHandler) ListTasks(c *gin.Context) {
	view := middleware.GetViewState(c)
	tasks := h.tasks.FilteredView(view.Search, view.Status)

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, view.Search, view.Status, h.tasks.Stats()))
}

// GetTask returns a specific task by ID
// Task is already loaded by RequireTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.tasks.Add(c.Request.Context(), req.ToDraft())
	if err != nil {
		respondWithTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask replaces the editable fields of an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	current, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	draft := req.ToDraft()
	task, found, err := h.tasks.Update(c.Request.Context(), models.Task{
		ID:          current.ID,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
	})
	if err != nil {
		respondWithTaskError(c, err)
		return
	}
	if !found {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, task)
}

// ToggleTask flips the completion state of a task
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	current, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	task, found, err := h.tasks.ToggleCompletion(c.Request.Context(), current.ID)
	if err != nil {
		respondWithTaskError(c, err)
		return
	}
	if !found {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	current, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	found, err := h.tasks.Delete(c.Request.Context(), current.ID)
	if err != nil {
		respondWithTaskError(c, err)
		return
	}
	if !found {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondWithTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.MissingField(c, "title")
	case errors.Is(err, models.ErrInvalidDueDate):
		apierrors.InvalidFormat(c, err.Error())
	default:
		log.Printf("Task operation failed: %v", err)
		apierrors.StorageFailed(c)
	}
}
