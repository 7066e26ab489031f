package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
)

// TaskService is the single source of truth for the task collection.
//
// Every mutation runs load-current -> mutate -> persist-full-collection under
// one lock, and the in-memory collection is only replaced once the write has
// succeeded, so a read after a mutation returns always observes what was
// persisted.
type TaskService struct {
	mu    sync.Mutex
	repo  repository.TaskRepository
	tasks []models.Task
	newID func() string
}

// NewTaskService creates a new TaskService. Call Load before use to pick up
// previously persisted tasks.
func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{
		repo:  repo,
		tasks: []models.Task{},
		newID: uuid.NewString,
	}
}

// Load replaces the in-memory collection with the persisted one. Stored
// placeholders are normalized and empty or repeated ids get a fresh id;
// the cleaned collection is written on the next mutation.
func (s *TaskService) Load(ctx context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	s.tasks = s.normalizeLoaded(tasks)
	return cloneTasks(s.tasks), nil
}

// List returns every task in insertion order
func (s *TaskService) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Get returns the task with the given id
func (s *TaskService) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.tasks, id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// Add assigns a fresh id to draft, appends it and persists the collection
func (s *TaskService) Add(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	draft, err := prepareDraft(draft)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.Task{
		ID:          s.uniqueID(),
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		IsCompleted: false,
	}

	next := append(cloneTasks(s.tasks), task)
	if err := s.commit(ctx, next); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// AddAll adds drafts in order as one persisted change. Either every draft
// is added or, on a validation or storage error, none is.
func (s *TaskService) AddAll(ctx context.Context, drafts []models.TaskDraft) ([]models.Task, error) {
	prepared := make([]models.TaskDraft, 0, len(drafts))
	for i, draft := range drafts {
		draft, err := prepareDraft(draft)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		prepared = append(prepared, draft)
	}
	if len(prepared) == 0 {
		return []models.Task{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneTasks(s.tasks)
	created := make([]models.Task, 0, len(prepared))
	for _, draft := range prepared {
		// uniqueID checks s.tasks only, so guard against ids of this batch too
		id := s.uniqueID()
		for indexOf(created, id) >= 0 {
			id = s.uniqueID()
		}
		task := models.Task{
			ID:          id,
			Title:       draft.Title,
			Description: draft.Description,
			DueDate:     draft.DueDate,
			Priority:    draft.Priority,
		}
		created = append(created, task)
		next = append(next, task)
	}

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the editable fields of the task with the same id. The
// completion flag is kept; it only changes through ToggleCompletion.
// A missing id leaves the collection unchanged and returns false.
func (s *TaskService) Update(ctx context.Context, task models.Task) (models.Task, bool, error) {
	draft, err := prepareDraft(task.Draft())
	if err != nil {
		return models.Task{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks, task.ID)
	if i < 0 {
		return models.Task{}, false, nil
	}

	next := cloneTasks(s.tasks)
	updated := next[i]
	updated.Title = draft.Title
	updated.Description = draft.Description
	updated.DueDate = draft.DueDate
	updated.Priority = draft.Priority
	next[i] = updated

	if err := s.commit(ctx, next); err != nil {
		return models.Task{}, false, err
	}
	return updated, true, nil
}

// Delete removes the task with the given id. A missing id returns false.
func (s *TaskService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks, id)
	if i < 0 {
		return false, nil
	}

	next := make([]models.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleCompletion flips the completion flag of the task with the given id
func (s *TaskService) ToggleCompletion(ctx context.Context, id string) (models.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks, id)
	if i < 0 {
		return models.Task{}, false, nil
	}

	next := cloneTasks(s.tasks)
	next[i].IsCompleted = !next[i].IsCompleted

	if err := s.commit(ctx, next); err != nil {
		return models.Task{}, false, err
	}
	return next[i], true, nil
}

// FilteredView returns the tasks matching status and searchTerm
func (s *TaskService) FilteredView(searchTerm string, status models.StatusFilter) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterTasks(s.tasks, searchTerm, status)
}

// Stats counts the tasks by completion state
func (s *TaskService) Stats() models.TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.TaskStats{Total: len(s.tasks)}
	for _, task := range s.tasks {
		if task.IsCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats
}

// commit persists next and makes it the current collection. Callers hold s.mu.
func (s *TaskService) commit(ctx context.Context, next []models.Task) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.tasks = next
	return nil
}

// uniqueID returns an id not used by any task. Callers hold s.mu.
func (s *TaskService) uniqueID() string {
	for {
		id := s.newID()
		if indexOf(s.tasks, id) < 0 {
			return id
		}
	}
}

// normalizeLoaded cleans a persisted collection. Callers hold s.mu.
func (s *TaskService) normalizeLoaded(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		task.Priority = task.Priority.Normalize()
		if dueDate, err := models.ParseDueDate(string(task.DueDate)); err == nil {
			task.DueDate = dueDate
		} else {
			log.Printf("Replacing unreadable due date %q of task %q with %s", task.DueDate, task.ID, models.DueDateTBD)
			task.DueDate = models.DueDateTBD
		}
		if task.ID == "" || seen[task.ID] {
			id := s.newID()
			for seen[id] || indexOf(tasks, id) >= 0 {
				id = s.newID()
			}
			log.Printf("Assigning id %s to task with missing or repeated id %q", id, task.ID)
			task.ID = id
		}
		seen[task.ID] = true
		out = append(out, task)
	}
	return out
}

func prepareDraft(draft models.TaskDraft) (models.TaskDraft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return models.TaskDraft{}, ErrTitleRequired
	}

	dueDate, err := models.ParseDueDate(string(draft.DueDate))
	if err != nil {
		return models.TaskDraft{}, err
	}
	draft.DueDate = dueDate
	draft.Priority = draft.Priority.Normalize()
	return draft, nil
}

func indexOf(tasks []models.Task, id string) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
