package repository

import (
	"context"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
)

// TaskRepository defines the interface for task collection persistence.
// The whole collection is the unit of persistence.
type TaskRepository interface {
	// Load returns the persisted collection. Missing or unreadable data
	// yields an empty collection; only storage failures are errors.
	Load(ctx context.Context) ([]models.Task, error)

	// Save replaces the persisted collection with tasks
	Save(ctx context.Context, tasks []models.Task) error
}
