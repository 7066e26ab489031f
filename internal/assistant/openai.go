package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend calls an OpenAI-compatible chat completions API
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend creates a backend. An empty baseURL uses the OpenAI API
// and an empty model uses GPT-4o.
func NewOpenAIBackend(apiKey, baseURL, model string, timeout time.Duration) *OpenAIBackend {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIBackend{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Send performs one chat completion. Error responses from the API become
// a Reply carrying their status code.
func (b *OpenAIBackend) Send(ctx context.Context, req Request) (Reply, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: 0.3,
	}
	if req.Schema != nil {
		schema, err := req.Schema.wrappedJSONSchema()
		if err != nil {
			return Reply{}, fmt.Errorf("failed to encode schema: %w", err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "response",
				Schema: schema,
			},
		}
	}

	resp, err := b.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		if status := httpStatus(err); status != 0 {
			return Reply{StatusCode: status}, nil
		}
		return Reply{}, err
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to encode response: %w", err)
	}
	return Reply{StatusCode: http.StatusOK, Body: body}, nil
}

// Decode returns the first choice's content, unwrapping array responses
func (b *OpenAIBackend) Decode(req Request, body []byte) (string, error) {
	var resp openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("no response from OpenAI")
	}
	content := resp.Choices[0].Message.Content

	if !req.Schema.IsArray() {
		return content, nil
	}

	var wrapped struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
		return "", fmt.Errorf("failed to unwrap response: %w", err)
	}
	if len(wrapped.Items) == 0 {
		return "", errors.New("response has no items")
	}
	return string(wrapped.Items), nil
}

func httpStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
