package genai

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatModel scripts responses per call, counting invocations and keeping
// the last message batch for prompt assertions.
type fakeChatModel struct {
	calls     int
	lastInput []*schema.Message
	fn        func(call int) (*schema.Message, error)
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.calls++
	f.lastInput = input
	return f.fn(f.calls)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestClient(cm ChatModel) *Client {
	return NewClient(cm, WithBackoff(time.Millisecond), WithMaxRetries(3), WithLogger(quietLogger()))
}

func TestComplete_RateLimitedThenSuccess(t *testing.T) {
	cm := &fakeChatModel{fn: func(call int) (*schema.Message, error) {
		if call <= 2 {
			return nil, errors.New("429 Too Many Requests")
		}
		return &schema.Message{Role: schema.Assistant, Content: "ok"}, nil
	}}

	got, err := newTestClient(cm).complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, cm.calls)
}

func TestComplete_RateLimitBudgetExhausted(t *testing.T) {
	cm := &fakeChatModel{fn: func(int) (*schema.Message, error) {
		return nil, errors.New("rate limit exceeded")
	}}

	_, err := newTestClient(cm).complete(context.Background(), "sys", "user")
	require.ErrorIs(t, err, ErrGenerationFailed)
	// 1 initial call + 3 retries.
	assert.Equal(t, 4, cm.calls)
}

func TestComplete_MisconfiguredFailsWithoutRetry(t *testing.T) {
	cm := &fakeChatModel{fn: func(int) (*schema.Message, error) {
		return nil, errors.New("model_not_found: the model `gpt-99` does not exist")
	}}

	_, err := newTestClient(cm).complete(context.Background(), "sys", "user")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 1, cm.calls)
}

func TestComplete_OtherErrorFailsImmediately(t *testing.T) {
	cm := &fakeChatModel{fn: func(int) (*schema.Message, error) {
		return nil, errors.New("connection reset by peer")
	}}

	_, err := newTestClient(cm).complete(context.Background(), "sys", "user")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 1, cm.calls)
}

func TestComplete_ContextCancelledDuringBackoff(t *testing.T) {
	cm := &fakeChatModel{fn: func(int) (*schema.Message, error) {
		return nil, errors.New("429")
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(cm, WithBackoff(time.Minute), WithMaxRetries(3), WithLogger(quietLogger()))
	_, err := c.complete(ctx, "sys", "user")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, cm.calls)
}
