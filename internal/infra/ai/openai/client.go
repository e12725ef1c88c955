package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/ai"
	"github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/analysis"
	"github.com/GouthamiN25/CyberRisk-Advisor/internal/infra/ai/prompt"
)

const defaultMaxTokens = 2048

type Client struct {
	*openai.Client
	Model       string
	MaxTokens   int
	Temperature float32

	configured bool
}

// NewClient builds a chat-completions client. baseURL may be empty for the
// default OpenAI endpoint, or point at any OpenAI-compatible provider.
func NewClient(apiKey, baseURL, model string, maxTokens int, temperature float32) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{
		Client:      openai.NewClientWithConfig(cfg),
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		configured:  apiKey != "",
	}
}

func (c *Client) Analyze(ctx context.Context, r analysis.Request) (string, error) {
	if !c.configured {
		return "", domai.ErrNotConfigured
	}

	model := c.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: c.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(r)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = c.MaxTokens
		req.Temperature = 0
	} else {
		req.MaxTokens = c.MaxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", domai.ErrQuotaExceeded
		}
		return "", fmt.Errorf("%w: %v", domai.ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in completion", domai.ErrUnavailable)
	}

	return resp.Choices[0].Message.Content, nil
}
