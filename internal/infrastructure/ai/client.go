package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/ports"
)

// Token budgets per operation.
const (
	completionMaxTokens = 100
	harmMaxTokens       = 200
	fixMaxTokens        = 500
)

var errEmptyResponse = errors.New("no completion returned")

// chatRequest is the provider-neutral shape handed to a backend.
type chatRequest struct {
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// chatResponse carries the reply text and token usage.
type chatResponse struct {
	Content          string
	PromptTokens     uint64
	CompletionTokens uint64
}

// backend performs one chat round-trip against a provider's wire format.
type backend interface {
	chat(ctx context.Context, req chatRequest) (chatResponse, error)
}

// Client implements ports.AIClient on top of a provider backend.
type Client struct {
	provider domain.ProviderKind
	model    string
	backend  backend
	usage    ports.UsageRecorder
	log      ports.Logger
}

func (c *Client) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	return c.send(ctx, "complete", system, user, completionMaxTokens, temperature)
}

func (c *Client) ClassifyHarm(ctx context.Context, system, user string) (string, error) {
	return c.send(ctx, "classify_harm", system, user, harmMaxTokens, 0)
}

func (c *Client) SuggestFix(ctx context.Context, system, user string) (string, error) {
	return c.send(ctx, "suggest_fix", system, user, fixMaxTokens, 0)
}

func (c *Client) send(ctx context.Context, op, system, user string, maxTokens int, temperature float32) (string, error) {
	resp, err := c.backend.chat(ctx, chatRequest{
		Model:       c.model,
		System:      system,
		User:        user,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", c.provider, op, err)
	}

	if c.usage != nil {
		c.usage.RecordRequest(string(c.provider), c.model, resp.PromptTokens, resp.CompletionTokens)
	}
	c.log.Debug("ai request completed", map[string]interface{}{
		"provider":          string(c.provider),
		"operation":         op,
		"prompt_tokens":     resp.PromptTokens,
		"completion_tokens": resp.CompletionTokens,
	})

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", fmt.Errorf("%s %s: %w", c.provider, op, errEmptyResponse)
	}
	return content, nil
}

var _ ports.AIClient = (*Client)(nil)
