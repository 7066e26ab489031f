package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Messages reported when a request cannot produce text
const (
	UnavailableMessage = "The AI service is currently unavailable. Please try again later."
	MalformedMessage   = "Failed to parse the response from the AI service."
)

// BadStatusMessage is reported when the final attempt got a non-2xx status
func BadStatusMessage(status int) string {
	return fmt.Sprintf("An error occurred while contacting the AI service (Status: %d).", status)
}

// Reporter receives the user-visible message of a failed request
type Reporter interface {
	Report(message string)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(message string)

func (f ReporterFunc) Report(message string) { f(message) }

// Request is a single prompt, optionally constrained by a response schema
type Request struct {
	Prompt string
	Schema *Schema
}

// Reply is the raw outcome of one attempt that reached the service
type Reply struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is 2xx
func (r Reply) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Backend speaks one provider's wire format
type Backend interface {
	// Send performs a single request. An error means no response was
	// received at all.
	Send(ctx context.Context, req Request) (Reply, error)

	// Decode extracts the generated text from a successful reply body
	Decode(req Request, body []byte) (string, error)
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.status)
}

// Client sends prompts to a generative model with retries. It never
// returns errors: failures are reported to the Reporter and surface as
// an absent result.
type Client struct {
	backend  Backend
	policy   RetryPolicy
	reporter Reporter
}

// NewClient creates a Client. A nil reporter discards messages.
func NewClient(backend Backend, policy RetryPolicy, reporter Reporter) *Client {
	if reporter == nil {
		reporter = ReporterFunc(func(string) {})
	}
	return &Client{backend: backend, policy: policy, reporter: reporter}
}

// Failure is returned by Complete when no text was obtained. Message is
// the text that was reported for this request.
type Failure struct {
	Message string
}

func (f *Failure) Error() string { return f.Message }

// Generate sends prompt and returns the generated text. With a schema the
// text is JSON following it. The second result is false if no text was
// obtained, in which case exactly one message has been reported.
func (c *Client) Generate(ctx context.Context, prompt string, schema *Schema) (string, bool) {
	text, err := c.Complete(ctx, prompt, schema)
	return text, err == nil
}

// Complete is Generate returning the reported message as a *Failure, so
// concurrent callers each see the outcome of their own request.
func (c *Client) Complete(ctx context.Context, prompt string, schema *Schema) (string, error) {
	req := Request{Prompt: prompt, Schema: schema}

	var reply Reply
	err := c.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		r, err := c.backend.Send(ctx, req)
		if err != nil {
			log.Printf("AI request attempt %d failed: %v", attempt+1, err)
			return err
		}
		reply = r
		if !r.OK() {
			log.Printf("AI request attempt %d returned status %d", attempt+1, r.StatusCode)
			return &statusError{status: r.StatusCode}
		}
		return nil
	})

	var statusErr *statusError
	switch {
	case errors.As(err, &statusErr):
		log.Printf("AI request failed with status: %d", statusErr.status)
		return "", c.fail(BadStatusMessage(statusErr.status))
	case err != nil:
		log.Printf("AI request failed after multiple retries: %v", err)
		return "", c.fail(UnavailableMessage)
	}

	text, err := c.backend.Decode(req, reply.Body)
	if err != nil || text == "" {
		log.Printf("Error parsing AI response: %v", err)
		return "", c.fail(MalformedMessage)
	}
	return text, nil
}

func (c *Client) fail(message string) *Failure {
	c.reporter.Report(message)
	return &Failure{Message: message}
}
