package app

import (
	"context"
	"fmt"
	"log"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/assistant"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/config"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/constants"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/database"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/notifications"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/repository"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/services"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/storage"
	"github.com/spf13/afero"
)

// App holds the wired services shared by the server and the CLI
type App struct {
	Config        *config.Config
	Tasks         *services.TaskService
	Assistant     *services.AssistantService
	Notifications *notifications.Center

	closeStore func() error
}

// Build opens the configured store, loads the task collection and wires
// the assistant.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	store, closeStore, err := NewStore(cfg, afero.NewOsFs())
	if err != nil {
		return nil, err
	}

	tasks := services.NewTaskService(repository.NewTaskRepository(store))
	loaded, err := tasks.Load(ctx)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	log.Printf("Loaded %d tasks from %s store", len(loaded), cfg.StoreBackend)

	center := notifications.NewCenter(constants.MaxNotifications)

	return &App{
		Config:        cfg,
		Tasks:         tasks,
		Assistant:     services.NewAssistantService(NewGenerator(cfg, center), tasks),
		Notifications: center,
		closeStore:    closeStore,
	}, nil
}

// Close releases the store
func (a *App) Close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

// NewStore creates the key-value store selected by cfg.StoreBackend.
// The returned func releases it.
func NewStore(cfg *config.Config, fsys afero.Fs) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), noop, nil
	case config.BackendFile, "":
		store, err := storage.NewFileStore(fsys, cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case config.BackendSQLite, config.BackendMySQL, config.BackendPostgres:
		if cfg.StoreBackend == config.BackendSQLite {
			if err := fsys.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create data directory: %w", err)
			}
		}
		if err := database.Connect(cfg); err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(); err != nil {
			_ = database.Close()
			return nil, nil, err
		}
		return storage.NewGormStore(database.GetDB()), database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// NewGenerator creates the assistant client for the configured provider.
// It returns nil when the provider has no API key.
func NewGenerator(cfg *config.Config, reporter assistant.Reporter) services.Generator {
	if !cfg.AssistantConfigured() {
		log.Printf("AI assistant disabled: no API key for provider %q", cfg.AssistantProvider)
		return nil
	}

	var backend assistant.Backend
	switch cfg.AssistantProvider {
	case config.ProviderOpenAI:
		backend = assistant.NewOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.AssistantHTTPTimeout)
	default:
		endpoint := cfg.GeminiEndpoint
		if endpoint == "" {
			endpoint = assistant.GeminiEndpoint(cfg.GeminiModel)
		}
		backend = assistant.NewGeminiBackend(endpoint, cfg.GeminiAPIKey, cfg.AssistantHTTPTimeout)
	}

	policy := assistant.RetryPolicy{
		MaxAttempts: cfg.AssistantMaxAttempts,
		Backoff:     assistant.ExponentialBackoff(cfg.AssistantBackoffUnit),
	}
	return assistant.NewClient(backend, policy, reporter)
}
