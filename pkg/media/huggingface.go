package media

import (
	"context"

	"newsbrief/pkg/hf"
)

const (
	DefaultHFImageModel  = "runwayml/stable-diffusion-v1-5"
	DefaultHFSpeechModel = "espnet/kan-bayashi_ljspeech"
)

type hfInputs struct {
	Inputs string `json:"inputs"`
}

// HuggingFaceImageGenerator calls a text-to-image model; the response body is the image.
type HuggingFaceImageGenerator struct {
	client *hf.Client
	model  string
}

func NewHuggingFaceImageGenerator(client *hf.Client, model string) *HuggingFaceImageGenerator {
	if model == "" {
		model = DefaultHFImageModel
	}
	return &HuggingFaceImageGenerator{client: client, model: model}
}

func (g *HuggingFaceImageGenerator) Name() string {
	return "huggingface:" + g.model
}

func (g *HuggingFaceImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	return g.client.Infer(ctx, g.model, hfInputs{Inputs: prompt})
}

type HuggingFaceSpeechGenerator struct {
	client *hf.Client
	model  string
}

func NewHuggingFaceSpeechGenerator(client *hf.Client, model string) *HuggingFaceSpeechGenerator {
	if model == "" {
		model = DefaultHFSpeechModel
	}
	return &HuggingFaceSpeechGenerator{client: client, model: model}
}

func (g *HuggingFaceSpeechGenerator) Name() string {
	return "huggingface:" + g.model
}

func (g *HuggingFaceSpeechGenerator) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return g.client.Infer(ctx, g.model, hfInputs{Inputs: text})
}
