package models

// SubTaskSuggestion is an AI-proposed task awaiting review. It is never
// persisted on its own.
type SubTaskSuggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Selected    bool     `json:"selected"`
}

// ToDraft converts an accepted suggestion into a task draft. Placeholder
// priorities are normalized and due dates the model made up in a free-form
// style ("next week") become TBD.
func (s SubTaskSuggestion) ToDraft() TaskDraft {
	dueDate, err := ParseDueDate(s.DueDate)
	if err != nil {
		dueDate = DueDateTBD
	}
	return TaskDraft{
		Title:       s.Title,
		Description: s.Description,
		DueDate:     dueDate,
		Priority:    s.Priority.Normalize(),
	}
}
