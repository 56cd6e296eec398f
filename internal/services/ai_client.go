package services

import (
	"context"
	"errors"
	"time"

	apperrors "learnai_go_backend/internal/errors"

	openai "github.com/sashabaranov/go-openai"
)

// AIClient talks to an OpenAI-compatible chat-completion endpoint. A custom
// base URL lets deployments point it at any compatible provider.
type AIClient struct {
	client     *openai.Client
	model      string
	maxRetries int
}

func NewAIClient(apiKey, baseURL, model string, maxRetries int) *AIClient {
	if apiKey == "" {
		// Left unconfigured on purpose: Complete reports a configuration
		// error without touching the network.
		return &AIClient{model: model, maxRetries: maxRetries}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &AIClient{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		maxRetries: maxRetries,
	}
}

// Complete sends the message list and returns the generated text. Transient
// provider failures (5xx, timeouts) are retried with doubling backoff up to
// maxRetries times; provider 4xx responses are surfaced immediately.
func (c *AIClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, maxTokens int, temperature float32) (string, error) {
	if c.client == nil {
		return "", apperrors.NewConfigurationError("Completion API key is not configured")
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var lastErr error
	backoff := time.Second
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", apperrors.NewUpstreamError("Completion request cancelled", ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", apperrors.NewUpstreamError("Completion provider returned no choices", nil)
			}
			return resp.Choices[0].Message.Content, nil
		}

		if ctx.Err() != nil {
			return "", apperrors.NewUpstreamError("Completion request cancelled", ctx.Err())
		}

		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 && apiErr.HTTPStatusCode < 500 {
			return "", apperrors.NewUpstreamError(apiErr.Message, err)
		}

		lastErr = err
	}

	return "", apperrors.NewUpstreamError(lastErr.Error(), lastErr)
}
