package media

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiImageGenerator renders images with an Imagen model through the Gemini API.
type GeminiImageGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiImageGenerator(client *genai.Client, model string) *GeminiImageGenerator {
	if model == "" {
		model = "imagen-4.0-generate-001"
	}
	return &GeminiImageGenerator{client: client, model: model}
}

func (g *GeminiImageGenerator) Name() string {
	return "gemini:" + g.model
}

func (g *GeminiImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini image error: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("no image from gemini")
	}

	return resp.GeneratedImages[0].Image.ImageBytes, nil
}
