package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// summarySeed pins sampling so identical input yields identical output.
const summarySeed = 7

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
	bounds Bounds
}

// NewOpenAIClient caps each attempt at timeout; opts are applied last.
func NewOpenAIClient(apiKey, model string, bounds Bounds, timeout time.Duration, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	}, opts...)
	client := openai.NewClient(opts...)
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModel(model),
		bounds: bounds,
	}
}

func (c *OpenAIClient) Name() string {
	return "openai:" + string(c.model)
}

func (c *OpenAIClient) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summaryPrompt(c.bounds)),
			openai.UserMessage(text),
		},
		Temperature:         openai.Float(0),
		Seed:                openai.Int(summarySeed),
		MaxCompletionTokens: openai.Int(int64(c.bounds.MaxTokens)),
	})

	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
