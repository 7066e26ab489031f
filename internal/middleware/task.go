package middleware

import (
	"github.com/BharadwajDivyanshu/Task-Manager/internal/constants"
	apierrors "github.com/BharadwajDivyanshu/Task-Manager/internal/errors"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/services"
	"github.com/gin-gonic/gin"
)

// RequireTask loads the task named by the :id parameter into the context
func RequireTask(tasks *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			apierrors.BadRequest(c, "Invalid task ID")
			return
		}

		task, ok := tasks.Get(id)
		if !ok {
			apierrors.NotFound(c, "Task not found")
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task set by RequireTask
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}
