package ai

import (
	"context"

	"github.com/go-resty/resty/v2"
)

type ollamaBackend struct {
	http     *resty.Client
	endpoint string
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Message         ollamaMessage `json:"message"`
	PromptEvalCount uint64        `json:"prompt_eval_count"`
	EvalCount       uint64        `json:"eval_count"`
}

func (b *ollamaBackend) chat(ctx context.Context, req chatRequest) (chatResponse, error) {
	var decoded ollamaResponse
	resp, err := b.http.R().
		SetContext(ctx).
		SetBody(ollamaRequest{
			Model: req.Model,
			Messages: []ollamaMessage{
				{Role: "system", Content: req.System},
				{Role: "user", Content: req.User},
			},
			Options: ollamaOptions{Temperature: req.Temperature, NumPredict: req.MaxTokens},
		}).
		SetResult(&decoded).
		Post(b.endpoint)
	if err != nil {
		return chatResponse{}, err
	}
	if resp.IsError() {
		return chatResponse{}, statusError(resp)
	}
	return chatResponse{
		Content:          decoded.Message.Content,
		PromptTokens:     decoded.PromptEvalCount,
		CompletionTokens: decoded.EvalCount,
	}, nil
}
