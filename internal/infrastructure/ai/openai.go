package ai

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// openAIBackend serves OpenAI and every OpenAI-compatible endpoint (Groq).
type openAIBackend struct {
	client *openai.Client
}

func newOpenAIBackend(endpoint, apiKey string, httpClient *http.Client) *openAIBackend {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(strings.TrimRight(endpoint, "/"), "/chat/completions")
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &openAIBackend{client: openai.NewClientWithConfig(cfg)}
}

func (b *openAIBackend) chat(ctx context.Context, req chatRequest) (chatResponse, error) {
	request := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	}
	// Reasoning models reject max_tokens and any temperature but the default.
	if isReasoningModel(req.Model) {
		request.MaxCompletionTokens = req.MaxTokens
	} else {
		request.MaxTokens = req.MaxTokens
		request.Temperature = openAITemperature(req.Temperature)
	}

	resp, err := b.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return chatResponse{}, err
	}
	if len(resp.Choices) == 0 {
		return chatResponse{}, errEmptyResponse
	}
	return chatResponse{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     uint64(resp.Usage.PromptTokens),
		CompletionTokens: uint64(resp.Usage.CompletionTokens),
	}, nil
}

// openAITemperature maps zero to the smallest positive value; the request
// struct omits a zero temperature, which the API reads as its default of 1.
func openAITemperature(t float32) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func isReasoningModel(model string) bool {
	for _, prefix := range []string{"o1", "o3", "o4"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
