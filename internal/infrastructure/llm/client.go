// Package llm talks to an OpenAI-compatible chat completion endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
)

// Client is safe for concurrent use; build it once at startup.
type Client struct {
	api *openai.Client
}

// NewClient returns a client for apiKey. An empty baseURL keeps the library
// default (api.openai.com).
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// Complete sends one system and one user message and returns the first choice verbatim.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, p gateway.CompletionParams) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", gateway.ErrUpstreamUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps an upstream failure onto the gateway sentinels while keeping
// the original error in the chain for logging.
func classify(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", gateway.ErrUpstreamAuth, err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %w", gateway.ErrUpstreamRejected, err)
	default:
		return fmt.Errorf("%w: %w", gateway.ErrUpstreamUnavailable, err)
	}
}

var _ gateway.Completer = (*Client)(nil)
