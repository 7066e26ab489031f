package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash-preview-05-20"
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
)

var errNoCandidateText = errors.New("invalid response structure from API")

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiBackend calls the generateContent endpoint of the Gemini REST API
type GeminiBackend struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// GeminiEndpoint returns the generateContent URL of model
func GeminiEndpoint(model string) string {
	if model == "" {
		model = DefaultGeminiModel
	}
	return fmt.Sprintf("%s/%s:generateContent", geminiBaseURL, model)
}

// NewGeminiBackend creates a backend for endpoint. The API key is sent as
// the "key" query parameter.
func NewGeminiBackend(endpoint, apiKey string, timeout time.Duration) *GeminiBackend {
	return &GeminiBackend{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (b *GeminiBackend) requestURL() (string, error) {
	u, err := url.Parse(b.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", b.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Send posts the prompt once
func (b *GeminiBackend) Send(ctx context.Context, req Request) (Reply, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}},
	}
	if req.Schema != nil {
		payload.GenerationConfig = &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   req.Schema,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to encode request: %w", err)
	}

	target, err := b.requestURL()
	if err != nil {
		return Reply{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return Reply{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to read response: %w", err)
	}
	return Reply{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// Decode returns candidates[0].content.parts[0].text
func (b *GeminiBackend) Decode(_ Request, body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errNoCandidateText
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", errNoCandidateText
	}
	return text, nil
}
