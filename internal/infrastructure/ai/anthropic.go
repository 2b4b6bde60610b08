package ai

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const anthropicVersion = "2023-06-01"

type anthropicBackend struct {
	http     *resty.Client
	endpoint string
	apiKey   string
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float32            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  uint64 `json:"input_tokens"`
		OutputTokens uint64 `json:"output_tokens"`
	} `json:"usage"`
}

func (a anthropicResponse) firstText() (string, bool) {
	for _, block := range a.Content {
		if block.Type == "" || block.Type == "text" {
			return block.Text, true
		}
	}
	return "", false
}

func (b *anthropicBackend) chat(ctx context.Context, req chatRequest) (chatResponse, error) {
	var decoded anthropicResponse
	resp, err := b.http.R().
		SetContext(ctx).
		SetHeader("x-api-key", b.apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetBody(anthropicRequest{
			Model:       req.Model,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
			System:      req.System,
			Messages:    []anthropicMessage{{Role: "user", Content: req.User}},
		}).
		SetResult(&decoded).
		Post(b.endpoint)
	if err != nil {
		return chatResponse{}, err
	}
	if resp.IsError() {
		return chatResponse{}, statusError(resp)
	}

	text, ok := decoded.firstText()
	if !ok {
		return chatResponse{}, errEmptyResponse
	}
	return chatResponse{
		Content:          text,
		PromptTokens:     decoded.Usage.InputTokens,
		CompletionTokens: decoded.Usage.OutputTokens,
	}, nil
}

func statusError(resp *resty.Response) error {
	body := truncate(resp.String(), 200)
	if body == "" {
		return fmt.Errorf("http %s", resp.Status())
	}
	return fmt.Errorf("http %s: %s", resp.Status(), body)
}
