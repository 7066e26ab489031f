package dto

import (
	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/notifications"
)

// TaskRequest is the body of create and update requests
type TaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
}

// ToDraft converts the request into a task draft
func (r TaskRequest) ToDraft() models.TaskDraft {
	return models.TaskDraft{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     models.DueDate(r.DueDate),
		Priority:    models.Priority(r.Priority),
	}
}

// ViewStateDTO is the search term and status filter of a task list
type ViewStateDTO struct {
	Search string              `json:"search"`
	Status models.StatusFilter `json:"status"`
}

// TaskListResponse is the filtered view together with collection counts
type TaskListResponse struct {
	Tasks []models.Task    `json:"tasks"`
	View  ViewStateDTO     `json:"view"`
	Stats models.TaskStats `json:"stats"`
}

// BreakDownRequest asks for sub-task suggestions for a complex task
type BreakDownRequest struct {
	Task string `json:"task"`
}

// BreakDownResponse carries the suggestions for review
type BreakDownResponse struct {
	Suggestions []models.SubTaskSuggestion `json:"suggestions"`
}

// AcceptSuggestionsRequest holds reviewed suggestions; only selected ones
// become tasks
type AcceptSuggestionsRequest struct {
	Suggestions []models.SubTaskSuggestion `json:"suggestions" binding:"required"`
}

// AcceptSuggestionsResponse lists the tasks that were created
type AcceptSuggestionsResponse struct {
	Tasks []models.Task `json:"tasks"`
	Count int           `json:"count"`
}

// DescriptionRequest asks for a description of a task title
type DescriptionRequest struct {
	Title string `json:"title"`
}

// DescriptionResponse carries the generated description
type DescriptionResponse struct {
	Description string `json:"description"`
}

// NotificationListResponse lists notifications, newest first
type NotificationListResponse struct {
	Notifications []notifications.Notification `json:"notifications"`
}

// ToTaskListResponse builds the list response for a view
func ToTaskListResponse(tasks []models.Task, search string, status models.StatusFilter, stats models.TaskStats) TaskListResponse {
	if tasks == nil {
		tasks = []models.Task{}
	}
	return TaskListResponse{
		Tasks: tasks,
		View:  ViewStateDTO{Search: search, Status: status},
		Stats: stats,
	}
}
