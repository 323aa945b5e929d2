// ABOUTME: Groq chat client over the OpenAI-compatible completions API
// ABOUTME: Key pooling, rate limiting, and retry with exponential backoff
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/harper/duality/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// Client calls Groq chat completions with per-mode model selection.
type Client struct {
	pool    *KeyPool
	limiter *windowLimiter

	pacifyModel string
	defyModel   string
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient builds a Client from configuration. Fails when no API key is set.
func NewClient(cfg *config.Config) (*Client, error) {
	keys := cfg.APIKeys()
	if len(keys) == 0 {
		return nil, fmt.Errorf("GROQ_API_KEY is not set")
	}

	pool, err := NewKeyPool(cfg.BaseURL, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to build key pool: %w", err)
	}

	return &Client{
		pool:        pool,
		limiter:     newWindowLimiter(cfg.RateLimitPerMinute),
		pacifyModel: cfg.PacifyModel,
		defyModel:   cfg.DefyModel,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
	}, nil
}

// Complete sends one chat completion and returns the response text and the
// total latency including retries. Auth failures rotate the key pool before
// the next attempt.
func (c *Client) Complete(ctx context.Context, mode string, messages []openai.ChatCompletionMessage, maxTokens int, temperature float64) (string, time.Duration, error) {
	c.limiter.wait()

	model := c.pacifyModel
	if mode == "defy" {
		model = c.defyModel
	}

	start := time.Now()
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBackoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.pool.Current().CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model:       model,
			Messages:    messages,
			MaxTokens:   maxTokens,
			Temperature: float32(temperature),
		})
		cancel()

		if err != nil {
			if isAuthError(err) {
				c.pool.Rotate()
			}
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if content == "" {
			lastErr = fmt.Errorf("attempt %d: empty response from API", attempt+1)
			continue
		}

		return content, time.Since(start), nil
	}

	return "", 0, fmt.Errorf("chat completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Keys returns how many API keys the client rotates across.
func (c *Client) Keys() int {
	return c.pool.Size()
}

func isAuthError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden
	}
	return false
}

// ClassifyError maps a completion failure onto the session error log's
// type labels.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "api_timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "api_timeout"
		}
		return "network"
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return "api_error"
	}
	return "unknown"
}
