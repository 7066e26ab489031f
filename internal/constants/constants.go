package constants

import "time"

// Storage
const (
	// StorageKeyTasks is the key the full task collection is persisted under
	StorageKeyTasks = "tasks"
)

// Sessions and request context
const (
	SessionCookieName = "task_session"
	SessionKeySearch  = "view_search"
	SessionKeyStatus  = "view_status"

	ContextKeyTask      = "task"
	ContextKeyViewState = "view_state"
)

// Assistant
const (
	DefaultAssistantMaxAttempts = 4
	DefaultAssistantBackoffUnit = time.Second
	MaxAssistantBackoff         = 5 * time.Minute
	MaxAIGeneratedTasks         = 20
	MaxNotifications            = 20
)
