package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/assistant"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/constants"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
)

var (
	ErrPromptRequired         = errors.New("a task title is required")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAssistantUnavailable   = errors.New("AI request failed")
	ErrTooManySuggestions     = fmt.Errorf("at most %d suggestions can be accepted at once", constants.MaxAIGeneratedTasks)
)

const (
	breakDownPrompt = `You are a project management assistant. Break down the following complex task into a list of smaller, actionable sub-tasks. For each sub-task, provide a a title, a brief description, a due date (use "TBD" if not applicable), and a priority. Respond with only a JSON array of objects. Task: "%s"`
	describePrompt  = `You are a helpful assistant. Write a concise and clear description for the following task title. Task Title: "%s"`
)

// Generator produces text for a prompt. *assistant.Client implements it.
// A failed call returns an *assistant.Failure carrying the message that
// was reported for it.
type Generator interface {
	Complete(ctx context.Context, prompt string, schema *assistant.Schema) (string, error)
}

// SubTaskListSchema is the response schema of a task breakdown
func SubTaskListSchema() *assistant.Schema {
	return &assistant.Schema{
		Type: assistant.TypeArray,
		Items: &assistant.Schema{
			Type: assistant.TypeObject,
			Properties: map[string]*assistant.Schema{
				"title":       {Type: assistant.TypeString},
				"description": {Type: assistant.TypeString},
				"dueDate":     {Type: assistant.TypeString},
				"priority": {
					Type: assistant.TypeString,
					Enum: []string{
						string(models.PriorityHigh),
						string(models.PriorityMedium),
						string(models.PriorityLow),
						string(models.PriorityTBD),
					},
				},
			},
		},
	}
}

// AssistantService turns AI output into task suggestions and descriptions
type AssistantService struct {
	generator Generator
	tasks     *TaskService
}

// NewAssistantService creates a new AssistantService. A nil generator
// means no AI provider is configured.
func NewAssistantService(generator Generator, tasks *TaskService) *AssistantService {
	return &AssistantService{generator: generator, tasks: tasks}
}

// Configured reports whether an AI provider is available
func (s *AssistantService) Configured() bool {
	return s.generator != nil
}

// BreakDown asks the model to split mainTask into sub-task suggestions.
// Every suggestion starts out selected. A response that is not a JSON
// array of suggestions is logged and yields no suggestions.
func (s *AssistantService) BreakDown(ctx context.Context, mainTask string) ([]models.SubTaskSuggestion, error) {
	mainTask = strings.TrimSpace(mainTask)
	if mainTask == "" {
		return nil, ErrPromptRequired
	}
	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}

	text, err := s.generator.Complete(ctx, fmt.Sprintf(breakDownPrompt, mainTask), SubTaskListSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssistantUnavailable, err)
	}

	var parsed []models.SubTaskSuggestion
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		log.Printf("Failed to parse sub-tasks JSON: %v", err)
		return []models.SubTaskSuggestion{}, nil
	}

	suggestions := make([]models.SubTaskSuggestion, 0, len(parsed))
	for _, suggestion := range parsed {
		suggestion.Title = strings.TrimSpace(suggestion.Title)
		if suggestion.Title == "" {
			continue
		}
		suggestion.Selected = true
		suggestions = append(suggestions, suggestion)
	}
	if len(suggestions) > constants.MaxAIGeneratedTasks {
		log.Printf("Keeping the first %d of %d sub-tasks", constants.MaxAIGeneratedTasks, len(suggestions))
		suggestions = suggestions[:constants.MaxAIGeneratedTasks]
	}
	return suggestions, nil
}

// DraftDescription asks the model for a short description of title
func (s *AssistantService) DraftDescription(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrPromptRequired
	}
	if s.generator == nil {
		return "", ErrAIServiceNotConfigured
	}

	text, err := s.generator.Complete(ctx, fmt.Sprintf(describePrompt, title), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssistantUnavailable, err)
	}
	return strings.TrimSpace(text), nil
}

// AcceptSuggestions adds the selected suggestions as new tasks, in order,
// and returns the created tasks. Unselected suggestions are ignored.
func (s *AssistantService) AcceptSuggestions(ctx context.Context, suggestions []models.SubTaskSuggestion) ([]models.Task, error) {
	drafts := make([]models.TaskDraft, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if !suggestion.Selected || strings.TrimSpace(suggestion.Title) == "" {
			continue
		}
		drafts = append(drafts, suggestion.ToDraft())
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, ErrTooManySuggestions
	}
	return s.tasks.AddAll(ctx, drafts)
}

// FailureMessage returns the message reported for a failed assistant call
func FailureMessage(err error) (string, bool) {
	var failure *assistant.Failure
	if errors.As(err, &failure) {
		return failure.Message, true
	}
	return "", false
}
