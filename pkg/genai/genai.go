// Package genai wraps an LLM chat model behind typed generators for the
// career coach: industry outlooks, interview quizzes and cover letters.
// The upstream model is unreliable, so every call goes through the same
// retry / sanitize / parse / normalize pipeline.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
)

// ErrGenerationFailed marks an irrecoverable generator failure: the retry
// budget was exhausted, the model is misconfigured, or the output could not
// be parsed. Callers pick their own policy (skip, surface, or fall back).
var ErrGenerationFailed = errors.New("generation failed")

// ChatModel is the slice of eino's chat model this package needs.
// *openai.ChatModel satisfies it; tests inject fakes.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

const (
	defaultBackoff    = 30 * time.Second
	defaultMaxRetries = 3
)

// Client is the resilient generator. One instance is shared by the HTTP
// service and the batch refresher; it holds no per-call state.
type Client struct {
	cm         ChatModel
	backoff    time.Duration
	maxRetries int
	log        *logrus.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBackoff sets the fixed delay between rate-limit retries.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// WithMaxRetries sets the retry budget for rate-limited calls.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a generator around cm.
func NewClient(cm ChatModel, opts ...Option) *Client {
	c := &Client{
		cm:         cm,
		backoff:    defaultBackoff,
		maxRetries: defaultMaxRetries,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// complete sends one system+user prompt pair and returns the raw model text.
// Rate-limited calls are retried after a fixed backoff up to the budget;
// misconfiguration and every other error class fail immediately.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		resp, err := c.cm.Generate(ctx, messages)
		if err == nil {
			return resp.Content, nil
		}
		if isMisconfigured(err) {
			return "", fmt.Errorf("model unavailable: %v: %w", err, ErrGenerationFailed)
		}
		if !isRateLimited(err) {
			return "", fmt.Errorf("generate: %v: %w", err, ErrGenerationFailed)
		}
		lastErr = err
		if attempt >= c.maxRetries {
			break
		}
		c.log.Warnf("rate limited, retrying in %s (attempt %d/%d)", c.backoff, attempt+1, c.maxRetries)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.backoff):
		}
	}
	return "", fmt.Errorf("rate limit retries exhausted: %v: %w", lastErr, ErrGenerationFailed)
}

// isRateLimited reports whether err looks like an HTTP 429 from the upstream
// API. The OpenAI-compatible providers only expose this through error text.
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "rate limit")
}

// isMisconfigured reports whether err is a configuration problem (unknown
// model, bad credentials). Retrying those just burns the budget.
func isMisconfigured(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "model_not_found") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "incorrect api key") ||
		strings.Contains(msg, "401")
}
