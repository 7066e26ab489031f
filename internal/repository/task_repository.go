package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/constants"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/storage"
)

// KVTaskRepository stores the task collection as a JSON array under a
// single key of a storage.Store.
type KVTaskRepository struct {
	store storage.Store
	key   string
}

// NewTaskRepository creates a TaskRepository using the default "tasks" key
func NewTaskRepository(store storage.Store) TaskRepository {
	return &KVTaskRepository{store: store, key: constants.StorageKeyTasks}
}

// Load reads the collection. A payload that fails to parse is treated as
// "no data yet".
func (r *KVTaskRepository) Load(ctx context.Context) ([]models.Task, error) {
	data, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	if !ok {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		log.Printf("Discarding unreadable %q payload: %v", r.key, err)
		return []models.Task{}, nil
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Save serializes the full collection and overwrites the stored value
func (r *KVTaskRepository) Save(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	return nil
}
