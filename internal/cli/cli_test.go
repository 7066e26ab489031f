package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/app"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/config"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t   *testing.T
	app *app.App
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{StoreBackend: config.BackendMemory}
	}
	a, err := app.Build(context.Background(), cfg)
	require.NoError(t, err)
	return &harness{t: t, app: a}
}

func (h *harness) run(args ...string) (string, error) {
	var out bytes.Buffer
	build := func(context.Context) (*app.App, error) { return h.app, nil }
	err := Execute(context.Background(), build, args, &out)
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t, nil)

	out := h.mustRun("add", "Launch Website", "--priority", "high", "--due", "2025-06-01")
	assert.Contains(t, out, "Added ")
	h.mustRun("add", "Buy milk")

	out = h.mustRun("list")
	assert.Contains(t, out, "Launch Website")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "2 shown, 2 total (2 pending, 0 completed)")

	out = h.mustRun("list", "--search", "website")
	assert.Contains(t, out, "Launch Website")
	assert.NotContains(t, out, "Buy milk")
}

func TestList_InvalidStatus(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.run("list", "--status", "archived")
	assert.ErrorIs(t, err, models.ErrInvalidStatusFilter)
}

func TestAdd_InvalidDueDate(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.run("add", "X", "--due", "someday")
	assert.ErrorIs(t, err, models.ErrInvalidDueDate)
	assert.Empty(t, h.app.Tasks.List())
}

func TestEditDoneDelete(t *testing.T) {
	h := newHarness(t, nil)
	task, err := h.app.Tasks.Add(context.Background(), models.TaskDraft{Title: "Draft", Description: "keep me", Priority: models.PriorityLow})
	require.NoError(t, err)

	h.mustRun("edit", task.ID, "--title", "Final")
	edited, ok := h.app.Tasks.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "Final", edited.Title)
	assert.Equal(t, "keep me", edited.Description)
	assert.Equal(t, models.PriorityLow, edited.Priority)

	out := h.mustRun("done", task.ID)
	assert.Contains(t, out, "is now completed")

	out = h.mustRun("list", "--status", "completed")
	assert.Contains(t, out, "Final")

	h.mustRun("delete", task.ID)
	assert.Empty(t, h.app.Tasks.List())

	_, err = h.run("delete", task.ID)
	assert.ErrorContains(t, err, "not found")
	_, err = h.run("done", task.ID)
	assert.ErrorContains(t, err, "not found")
}

func geminiConfig(t *testing.T, status int, text string) *config.Config {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		payload := map[string]any{"candidates": []any{map[string]any{
			"content": map[string]any{"parts": []any{map[string]any{"text": text}}},
		}}}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(server.Close)

	return &config.Config{
		StoreBackend:         config.BackendMemory,
		AssistantProvider:    config.ProviderGemini,
		GeminiAPIKey:         "test-key",
		GeminiEndpoint:       server.URL,
		AssistantMaxAttempts: 2,
		AssistantBackoffUnit: time.Millisecond,
		AssistantHTTPTimeout: 5 * time.Second,
	}
}

func TestBreakDown(t *testing.T) {
	h := newHarness(t, geminiConfig(t, http.StatusOK,
		`[{"title":"Buy domain","description":"","dueDate":"TBD","priority":"high"},{"title":"Write copy","description":"Landing page","dueDate":"2025-06-01","priority":"TBD"}]`))

	out := h.mustRun("breakdown", "Launch Website")
	assert.Contains(t, out, " 1. Buy domain [high, due TBD]")
	assert.Contains(t, out, "--accept")
	assert.Empty(t, h.app.Tasks.List())

	out = h.mustRun("breakdown", "Launch Website", "--accept")
	assert.Contains(t, out, "Added 2 tasks.")

	tasks := h.app.Tasks.List()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy domain", tasks[0].Title)
	assert.Equal(t, models.PriorityMedium, tasks[1].Priority)
}

func TestDescribe(t *testing.T) {
	h := newHarness(t, geminiConfig(t, http.StatusOK, "Register a domain name."))

	out := h.mustRun("describe", "Buy domain")
	assert.Equal(t, "Register a domain name.", strings.TrimSpace(out))
}

func TestDescribe_ReportsServiceError(t *testing.T) {
	h := newHarness(t, geminiConfig(t, http.StatusTooManyRequests, ""))

	_, err := h.run("describe", "Buy domain")
	assert.EqualError(t, err, "An error occurred while contacting the AI service (Status: 429).")
}

func TestDescribe_NotConfigured(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.run("describe", "Buy domain")
	assert.ErrorContains(t, err, "not configured")
}
