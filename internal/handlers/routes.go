package handlers

import (
	"net/http"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/middleware"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/notifications"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the health check and the API. Session middleware
// must already be installed on r.
func RegisterRoutes(r gin.IRouter, tasks *services.TaskService, assistant *services.AssistantService, center *notifications.Center) {
	taskHandler := NewTaskHandler(tasks)
	assistantHandler := NewAssistantHandler(assistant, center)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Manager API is running",
			"ai":      assistant.Configured(),
		})
	})

	api := r.Group("/api")
	{
		taskRoutes := api.Group("/tasks")
		{
			taskRoutes.GET("", middleware.RememberViewState(), taskHandler.ListTasks)
			taskRoutes.POST("", taskHandler.CreateTask)
			taskRoutes.POST("/accept", assistantHandler.AcceptSuggestions)
			taskRoutes.GET("/:id", middleware.RequireTask(tasks), taskHandler.GetTask)
			taskRoutes.PUT("/:id", middleware.RequireTask(tasks), taskHandler.UpdateTask)
			taskRoutes.DELETE("/:id", middleware.RequireTask(tasks), taskHandler.DeleteTask)
			taskRoutes.POST("/:id/toggle", middleware.RequireTask(tasks), taskHandler.ToggleTask)
		}

		assistantRoutes := api.Group("/assistant")
		{
			assistantRoutes.POST("/breakdown", assistantHandler.BreakDown)
			assistantRoutes.POST("/description", assistantHandler.DraftDescription)
		}

		notificationRoutes := api.Group("/notifications")
		{
			notificationRoutes.GET("", assistantHandler.ListNotifications)
			notificationRoutes.DELETE("/:id", assistantHandler.DismissNotification)
		}
	}
}
