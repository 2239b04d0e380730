package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed settings.yaml
var defaultSettings []byte

type Env struct {
	NewsAPIKey      string        `env:"NEWS_API_KEY"`
	HFToken         string        `env:"HF_TOKEN"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	FinnhubAPIKey   string        `env:"FINNHUB_API_KEY"`
	NewsSource      string        `env:"NEWS_SOURCE"     envDefault:"newsapi"`
	SummaryBackend  string        `env:"SUMMARY_BACKEND" envDefault:"huggingface"`
	ImageBackend    string        `env:"IMAGE_BACKEND"   envDefault:"huggingface"`
	Port            string        `env:"PORT"            envDefault:"8000"`
	FrontendURL     string        `env:"FRONTEND_URL"`
	SettingsFile    string        `env:"SETTINGS_FILE"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT"    envDefault:"120s"`
	HFBaseURL       string        `env:"HF_BASE_URL"     envDefault:"https://router.huggingface.co/hf-inference/models"`
	NewsAPIURL      string        `env:"NEWS_API_URL"    envDefault:"https://newsapi.org/v2/everything"`
}

// Settings holds pipeline tuning that is not secret and rarely changes.
type Settings struct {
	DefaultTopic string `yaml:"default_topic"`
	ArticleCount int    `yaml:"article_count"`
	MediaDir     string `yaml:"media_dir"`
	ImagesDir    string `yaml:"images_dir"`
	AudioDir     string `yaml:"audio_dir"`
	Summary      struct {
		Model     string `yaml:"model"`
		MinTokens int    `yaml:"min_tokens"`
		MaxTokens int    `yaml:"max_tokens"`
	} `yaml:"summary"`
	Image struct {
		Model string `yaml:"model"`
	} `yaml:"image"`
	Speech struct {
		Enabled bool   `yaml:"enabled"`
		Model   string `yaml:"model"`
	} `yaml:"speech"`
	OpenAI struct {
		ChatModel  string `yaml:"chat_model"`
		ImageModel string `yaml:"image_model"`
	} `yaml:"openai"`
	Anthropic struct {
		Model string `yaml:"model"`
	} `yaml:"anthropic"`
	Gemini struct {
		ChatModel  string `yaml:"chat_model"`
		ImageModel string `yaml:"image_model"`
	} `yaml:"gemini"`
}

type Config struct {
	Env      Env
	Settings Settings
}

func Load() (*Config, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	settings, err := LoadSettings(e.SettingsFile)
	if err != nil {
		return nil, err
	}

	return &Config{Env: e, Settings: *settings}, nil
}

// LoadSettings reads the embedded defaults and overlays path when it is set.
// Keys missing from the override file keep their default values.
func LoadSettings(path string) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(defaultSettings, &s); err != nil {
		return nil, fmt.Errorf("parse default settings: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read settings file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse settings file %s: %w", path, err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if s.ArticleCount < 1 {
		return errors.New("article_count must be at least 1")
	}
	if s.Summary.MinTokens < 1 {
		return errors.New("summary.min_tokens must be at least 1")
	}
	if s.Summary.MaxTokens < s.Summary.MinTokens {
		return fmt.Errorf("summary.max_tokens (%d) is below summary.min_tokens (%d)", s.Summary.MaxTokens, s.Summary.MinTokens)
	}
	if s.ImagesDir == "" {
		return errors.New("images_dir is required")
	}
	if s.MediaDir == "" {
		return errors.New("media_dir is required")
	}
	// /static serves media_dir only, so generated files must land beneath it.
	if !within(s.MediaDir, s.ImagesDir) {
		return fmt.Errorf("images_dir %q is outside media_dir %q", s.ImagesDir, s.MediaDir)
	}
	if s.AudioDir != "" && !within(s.MediaDir, s.AudioDir) {
		return fmt.Errorf("audio_dir %q is outside media_dir %q", s.AudioDir, s.MediaDir)
	}
	return nil
}

func within(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
