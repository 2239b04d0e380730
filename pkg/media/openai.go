package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIImageGenerator struct {
	client *openai.Client
	model  openai.ImageModel
}

func NewOpenAIImageGenerator(apiKey, model string, timeout time.Duration, opts ...option.RequestOption) *OpenAIImageGenerator {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	}, opts...)
	client := openai.NewClient(opts...)
	if model == "" {
		model = string(openai.ImageModelDallE3)
	}
	return &OpenAIImageGenerator{client: &client, model: openai.ImageModel(model)}
}

func (g *OpenAIImageGenerator) Name() string {
	return "openai:" + string(g.model)
}

func (g *OpenAIImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          g.model,
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		Size:           openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return nil, fmt.Errorf("openai image error: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no image from openai")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("openai image decode: %w", err)
	}

	return data, nil
}
