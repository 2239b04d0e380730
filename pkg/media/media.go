package media

import "context"

// ImageGenerator renders one image for a text prompt and returns its encoded bytes.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
	Name() string
}

// SpeechGenerator reads text aloud and returns WAV bytes.
type SpeechGenerator interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Name() string
}
