package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
	bounds Bounds
}

func NewAnthropicClient(apiKey, model string, bounds Bounds, timeout time.Duration, opts ...option.RequestOption) *AnthropicClient {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	}, opts...)
	client := anthropic.NewClient(opts...)
	if model == "" {
		model = string(anthropic.ModelClaudeHaiku4_5)
	}
	return &AnthropicClient{
		client: &client,
		model:  anthropic.Model(model),
		bounds: bounds,
	}
}

func (c *AnthropicClient) Name() string {
	return "anthropic:" + string(c.model)
}

func (c *AnthropicClient) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   int64(c.bounds.MaxTokens),
		Temperature: anthropic.Float(0),
		System: []anthropic.TextBlockParam{
			{Text: summaryPrompt(c.bounds)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})

	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return sb.String(), nil
}
