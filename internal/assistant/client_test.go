package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// scriptedBackend replays one outcome per attempt
type scriptedBackend struct {
	mu       sync.Mutex
	outcomes []outcome
	calls    int
	decode   func(body []byte) (string, error)
}

type outcome struct {
	reply Reply
	err   error
}

func (b *scriptedBackend) Send(context.Context, Request) (Reply, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o := b.outcomes[b.calls]
	b.calls++
	return o.reply, o.err
}

func (b *scriptedBackend) Decode(_ Request, body []byte) (string, error) {
	if b.decode != nil {
		return b.decode(body)
	}
	return string(body), nil
}

type recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *recorder) Report(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

var errNetwork = errors.New("connection refused")

func ok(body string) outcome { return outcome{reply: Reply{StatusCode: 200, Body: []byte(body)}} }
func status(code int) outcome { return outcome{reply: Reply{StatusCode: code}} }
func networkFailure() outcome { return outcome{err: errNetwork} }

// recordingPolicy returns a policy that records sleeps instead of sleeping
func recordingPolicy(sleeps *[]time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		Backoff:     ExponentialBackoff(time.Second),
		Sleep: func(_ context.Context, d time.Duration) error {
			*sleeps = append(*sleeps, d)
			return nil
		},
	}
}

func TestGenerate_SucceedsAfterRetries(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sleeps []time.Duration
	backend := &scriptedBackend{outcomes: []outcome{networkFailure(), status(503), networkFailure(), ok("hello")}}
	rec := &recorder{}

	text, found := NewClient(backend, recordingPolicy(&sleeps), rec).Generate(context.Background(), "prompt", nil)

	require.True(t, found)
	assert.Equal(t, "hello", text)
	assert.Equal(t, 4, backend.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sleeps)
	assert.Empty(t, rec.messages)
}

func TestGenerate_FirstAttemptSuccessDoesNotSleep(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sleeps []time.Duration
	backend := &scriptedBackend{outcomes: []outcome{ok("done")}}

	text, found := NewClient(backend, recordingPolicy(&sleeps), nil).Generate(context.Background(), "prompt", nil)

	assert.True(t, found)
	assert.Equal(t, "done", text)
	assert.Empty(t, sleeps)
}

func TestGenerate_AllAttemptsUnreachable(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sleeps []time.Duration
	backend := &scriptedBackend{outcomes: []outcome{networkFailure(), networkFailure(), networkFailure(), networkFailure()}}
	rec := &recorder{}

	_, found := NewClient(backend, recordingPolicy(&sleeps), rec).Generate(context.Background(), "prompt", nil)

	assert.False(t, found)
	assert.Equal(t, 4, backend.calls)
	assert.Len(t, sleeps, 3)
	assert.Equal(t, []string{UnavailableMessage}, rec.messages)
}

func TestGenerate_FinalBadStatus(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sleeps []time.Duration
	backend := &scriptedBackend{outcomes: []outcome{networkFailure(), status(500), status(502), status(429)}}
	rec := &recorder{}

	_, found := NewClient(backend, recordingPolicy(&sleeps), rec).Generate(context.Background(), "prompt", nil)

	assert.False(t, found)
	assert.Equal(t, []string{"An error occurred while contacting the AI service (Status: 429)."}, rec.messages)
}

func TestGenerate_FinalAttemptDecidesClassification(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sleeps []time.Duration
	backend := &scriptedBackend{outcomes: []outcome{status(500), status(500), status(500), networkFailure()}}
	rec := &recorder{}

	_, found := NewClient(backend, recordingPolicy(&sleeps), rec).Generate(context.Background(), "prompt", nil)

	assert.False(t, found)
	assert.Equal(t, []string{UnavailableMessage}, rec.messages)
}

func TestGenerate_MalformedIsNotRetried(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sleeps []time.Duration
	backend := &scriptedBackend{
		outcomes: []outcome{ok("garbage")},
		decode:   func([]byte) (string, error) { return "", errors.New("bad json") },
	}
	rec := &recorder{}

	_, found := NewClient(backend, recordingPolicy(&sleeps), rec).Generate(context.Background(), "prompt", nil)

	assert.False(t, found)
	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, []string{MalformedMessage}, rec.messages)
}

func TestGenerate_EmptyTextIsMalformed(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sleeps []time.Duration
	backend := &scriptedBackend{outcomes: []outcome{ok("")}}
	rec := &recorder{}

	_, found := NewClient(backend, recordingPolicy(&sleeps), rec).Generate(context.Background(), "prompt", nil)

	assert.False(t, found)
	assert.Equal(t, []string{MalformedMessage}, rec.messages)
}

func TestGenerate_CancelledDuringBackoff(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	backend := &scriptedBackend{outcomes: []outcome{networkFailure(), ok("late")}}
	rec := &recorder{}

	policy := RetryPolicy{
		MaxAttempts: 4,
		Backoff:     ExponentialBackoff(time.Hour),
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return SleepContext(ctx, d)
		},
	}

	_, found := NewClient(backend, policy, rec).Generate(ctx, "prompt", nil)

	assert.False(t, found)
	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, []string{UnavailableMessage}, rec.messages)
}

func TestReporterFunc(t *testing.T) {
	var got string
	ReporterFunc(func(m string) { got = m }).Report("boom")
	assert.Equal(t, "boom", got)
}

func TestComplete_ReturnsReportedFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sleeps []time.Duration
	backend := &scriptedBackend{outcomes: []outcome{status(500), status(500), status(500), status(503)}}
	rec := &recorder{}

	text, err := NewClient(backend, recordingPolicy(&sleeps), rec).Complete(context.Background(), "prompt", nil)

	assert.Empty(t, text)
	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, BadStatusMessage(503), failure.Message)
	assert.Equal(t, []string{failure.Message}, rec.messages)
}
