package handlers

import (
	"errors"
	"net/http"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/assistant"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/constants"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/dto"
	apierrors "github.com/BharadwajDivyanshu/Task-Manager/internal/errors"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/notifications"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/services"
	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	assistant     *services.AssistantService
	notifications *notifications.Center
}

func NewAssistantHandler(assistant *services.AssistantService, center *notifications.Center) *AssistantHandler {
	return &AssistantHandler{
		assistant:     assistant,
		notifications: center,
	}
}

// BreakDown returns sub-task suggestions for a complex task. Nothing is
// added until the suggestions are accepted.
func (h *AssistantHandler) BreakDown(c *gin.Context) {
	var req dto.BreakDownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	suggestions, err := h.assistant.BreakDown(c.Request.Context(), req.Task)
	if err != nil {
		h.respondWithAssistantError(c, err, "task")
		return
	}

	c.JSON(http.StatusOK, dto.BreakDownResponse{Suggestions: suggestions})
}

// DraftDescription generates a description for a task title
func (h *AssistantHandler) DraftDescription(c *gin.Context) {
	var req dto.DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	description, err := h.assistant.DraftDescription(c.Request.Context(), req.Title)
	if err != nil {
		h.respondWithAssistantError(c, err, "title")
		return
	}

	c.JSON(http.StatusOK, dto.DescriptionResponse{Description: description})
}

// AcceptSuggestions adds the selected suggestions as tasks
func (h *AssistantHandler) AcceptSuggestions(c *gin.Context) {
	var req dto.AcceptSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tasks, err := h.assistant.AcceptSuggestions(c.Request.Context(), req.Suggestions)
	if err != nil {
		if errors.Is(err, services.ErrTooManySuggestions) {
			apierrors.BadRequestWithDetails(c, err.Error(), gin.H{"max": constants.MaxAIGeneratedTasks})
			return
		}
		respondWithTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AcceptSuggestionsResponse{Tasks: tasks, Count: len(tasks)})
}

// ListNotifications returns the recent AI error notifications
func (h *AssistantHandler) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NotificationListResponse{Notifications: h.notifications.List()})
}

// DismissNotification removes a notification
func (h *AssistantHandler) DismissNotification(c *gin.Context) {
	if !h.notifications.Dismiss(c.Param("id")) {
		apierrors.NotFound(c, "Notification not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification dismissed",
	})
}

func (h *AssistantHandler) respondWithAssistantError(c *gin.Context, err error, field string) {
	switch {
	case errors.Is(err, services.ErrPromptRequired):
		apierrors.MissingField(c, field)
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.AINotConfigured(c)
	default:
		message, ok := services.FailureMessage(err)
		if !ok {
			message = assistant.UnavailableMessage
		}
		apierrors.AIRequestFailed(c, message)
	}
}
