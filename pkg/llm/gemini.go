package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiClient struct {
	client *genai.Client
	model  string
	bounds Bounds
}

func NewGeminiClient(client *genai.Client, model string, bounds Bounds) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiClient{client: client, model: model, bounds: bounds}
}

func (c *GeminiClient) Name() string {
	return "gemini:" + c.model
}

func (c *GeminiClient) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(summaryPrompt(c.bounds), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		MaxOutputTokens:   int32(c.bounds.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	return resp.Text(), nil
}
