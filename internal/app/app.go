package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/genai"

	"newsbrief/internal/briefing"
	"newsbrief/internal/config"
	"newsbrief/pkg/hf"
	"newsbrief/pkg/llm"
	"newsbrief/pkg/media"
	"newsbrief/pkg/news"
)

// NewService builds the briefing pipeline from the configured backends.
func NewService(ctx context.Context, cfg *config.Config) (*briefing.Service, error) {
	e := cfg.Env
	s := cfg.Settings

	if e.HFToken == "" && (e.SummaryBackend == "huggingface" || e.ImageBackend == "huggingface" || s.Speech.Enabled) {
		slog.Warn("HF_TOKEN is not set, Hugging Face requests will be anonymous")
	}
	hfClient := hf.NewClient(e.HFToken, e.HFBaseURL, e.HTTPTimeout)

	var gemini *genai.Client
	if e.SummaryBackend == "gemini" || e.ImageBackend == "gemini" {
		if e.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini backend")
		}
		var err error
		gemini, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     e.GeminiAPIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: &http.Client{Timeout: e.HTTPTimeout},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create GenAI client: %w", err)
		}
	}

	newsClient, err := newNewsClient(e)
	if err != nil {
		return nil, err
	}

	summarizer, err := newSummarizer(cfg, hfClient, gemini)
	if err != nil {
		return nil, err
	}

	images, err := newImageGenerator(cfg, hfClient, gemini)
	if err != nil {
		return nil, err
	}

	var speech media.SpeechGenerator
	if s.Speech.Enabled {
		speech = media.NewHuggingFaceSpeechGenerator(hfClient, s.Speech.Model)
	}

	slog.Info("briefing pipeline configured",
		"news_source", newsClient.Name(),
		"summarizer", summarizer.Name(),
		"image_generator", images.Name(),
		"speech", s.Speech.Enabled,
	)

	return briefing.NewService(
		newsClient,
		summarizer,
		images,
		speech,
		media.NewStore(s.ImagesDir, s.AudioDir),
		briefing.Options{DefaultTopic: s.DefaultTopic, ArticleCount: s.ArticleCount},
	), nil
}

func newNewsClient(e config.Env) (news.NewsClient, error) {
	switch e.NewsSource {
	case "newsapi":
		if e.NewsAPIKey == "" {
			return nil, fmt.Errorf("NEWS_API_KEY is required for the newsapi source")
		}
		return news.NewNewsAPIClient(e.NewsAPIKey, e.NewsAPIURL, e.HTTPTimeout), nil
	case "rss":
		return news.NewRSSClient("", e.HTTPTimeout), nil
	case "finnhub":
		if e.FinnhubAPIKey == "" {
			return nil, fmt.Errorf("FINNHUB_API_KEY is required for the finnhub source")
		}
		return news.NewFinnHubClient(e.FinnhubAPIKey, e.HTTPTimeout), nil
	}
	return nil, fmt.Errorf("unknown NEWS_SOURCE %q", e.NewsSource)
}

func newSummarizer(cfg *config.Config, hfClient *hf.Client, gemini *genai.Client) (llm.Summarizer, error) {
	e := cfg.Env
	s := cfg.Settings
	bounds := llm.Bounds{MinTokens: s.Summary.MinTokens, MaxTokens: s.Summary.MaxTokens}

	var inner llm.Summarizer
	switch e.SummaryBackend {
	case "huggingface":
		inner = llm.NewHuggingFaceSummarizer(hfClient, s.Summary.Model, bounds)
	case "openai":
		if e.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai summarizer")
		}
		inner = llm.NewOpenAIClient(e.OpenAIAPIKey, s.OpenAI.ChatModel, bounds, e.HTTPTimeout)
	case "anthropic":
		if e.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic summarizer")
		}
		inner = llm.NewAnthropicClient(e.AnthropicAPIKey, s.Anthropic.Model, bounds, e.HTTPTimeout)
	case "gemini":
		inner = llm.NewGeminiClient(gemini, s.Gemini.ChatModel, bounds)
	default:
		return nil, fmt.Errorf("unknown SUMMARY_BACKEND %q", e.SummaryBackend)
	}

	return llm.Bounded(inner, bounds), nil
}

func newImageGenerator(cfg *config.Config, hfClient *hf.Client, gemini *genai.Client) (media.ImageGenerator, error) {
	e := cfg.Env
	s := cfg.Settings

	switch e.ImageBackend {
	case "huggingface":
		return media.NewHuggingFaceImageGenerator(hfClient, s.Image.Model), nil
	case "openai":
		if e.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai image backend")
		}
		return media.NewOpenAIImageGenerator(e.OpenAIAPIKey, s.OpenAI.ImageModel, e.HTTPTimeout), nil
	case "gemini":
		return media.NewGeminiImageGenerator(gemini, s.Gemini.ImageModel), nil
	}
	return nil, fmt.Errorf("unknown IMAGE_BACKEND %q", e.ImageBackend)
}
