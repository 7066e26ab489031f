package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/assistant"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/config"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		StoreBackend:         backend,
		DataDir:              dir,
		SQLitePath:           filepath.Join(dir, "tasks.db"),
		AssistantProvider:    config.ProviderGemini,
		AssistantMaxAttempts: 4,
	}
}

func TestBuild_PersistsAcrossRestarts(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			first, err := Build(ctx, cfg)
			require.NoError(t, err)
			task, err := first.Tasks.Add(ctx, models.TaskDraft{Title: "Survive restart", Priority: models.PriorityHigh})
			require.NoError(t, err)
			require.NoError(t, first.Close())

			second, err := Build(ctx, cfg)
			require.NoError(t, err)
			defer second.Close()

			assert.Equal(t, []models.Task{task}, second.Tasks.List())
		})
	}
}

func TestBuild_AssistantDisabledWithoutKey(t *testing.T) {
	a, err := Build(context.Background(), testConfig(t, config.BackendMemory))
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Assistant.Configured())
}

func TestNewStore_UnknownBackend(t *testing.T) {
	_, _, err := NewStore(&config.Config{StoreBackend: "cassandra"}, afero.NewMemMapFs())
	assert.ErrorContains(t, err, "cassandra")
}

func TestNewGenerator(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	assert.Nil(t, NewGenerator(cfg, nil))

	cfg.GeminiAPIKey = "key"
	assert.IsType(t, &assistant.Client{}, NewGenerator(cfg, nil))

	cfg.AssistantProvider = config.ProviderOpenAI
	assert.Nil(t, NewGenerator(cfg, nil))

	cfg.OpenAIAPIKey = "key"
	assert.IsType(t, &assistant.Client{}, NewGenerator(cfg, nil))
}
