package briefing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"newsbrief/internal/model"
	"newsbrief/pkg/llm"
	"newsbrief/pkg/media"
	"newsbrief/pkg/news"
)

const (
	StepFetch     = "fetch"
	StepSummarize = "summarize"
	StepImage     = "image"
	StepSpeech    = "speech"
)

// StepError reports which step of which article stopped a briefing.
// Index is -1 for the fetch step.
type StepError struct {
	Step  string
	Index int
	Err   error
}

func (e *StepError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("briefing %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("briefing %s (article %d): %v", e.Step, e.Index, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// MediaStore persists generated files and returns their paths.
type MediaStore interface {
	SaveImage(id string, data []byte) (string, error)
	SaveAudio(id string, data []byte) (string, error)
}

type Options struct {
	DefaultTopic string
	ArticleCount int
}

type Service struct {
	news       news.NewsClient
	summarizer llm.Summarizer
	images     media.ImageGenerator
	speech     media.SpeechGenerator
	store      MediaStore
	opts       Options
}

// NewService wires the pipeline. speech may be nil, in which case items carry no audio.
func NewService(
	newsClient news.NewsClient,
	summarizer llm.Summarizer,
	images media.ImageGenerator,
	speech media.SpeechGenerator,
	store MediaStore,
	opts Options,
) *Service {
	return &Service{
		news:       newsClient,
		summarizer: summarizer,
		images:     images,
		speech:     speech,
		store:      store,
		opts:       opts,
	}
}

// Topic returns the topic a request for topic would actually use.
func (s *Service) Topic(topic string) string {
	if t := strings.TrimSpace(topic); t != "" {
		return t
	}
	return s.opts.DefaultTopic
}

// Build fetches articles for topic and turns each one into a briefing item,
// in fetch order. The first failing step aborts the whole briefing; no
// partial result is returned.
func (s *Service) Build(ctx context.Context, topic string) ([]model.BriefingItem, error) {
	topic = s.Topic(topic)

	articles, err := s.news.Fetch(ctx, topic, s.opts.ArticleCount)
	if err != nil {
		return nil, &StepError{Step: StepFetch, Index: -1, Err: err}
	}

	slog.InfoContext(ctx, "building briefing", "topic", topic, "source", s.news.Name(), "article_count", len(articles))

	items := make([]model.BriefingItem, 0, len(articles))
	for i, article := range articles {
		slog.InfoContext(ctx, "processing article", "topic", topic, "article_index", i, "title", article.Title)

		item, err := s.buildItem(ctx, topic, i, article)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	slog.InfoContext(ctx, "briefing complete", "topic", topic, "items", len(items))
	return items, nil
}

func (s *Service) buildItem(ctx context.Context, topic string, index int, article model.Article) (model.BriefingItem, error) {
	id := media.Identifier(topic, index)

	summary, err := s.summarizer.Summarize(ctx, article.Text())
	if err != nil {
		return model.BriefingItem{}, &StepError{Step: StepSummarize, Index: index, Err: err}
	}

	image, err := s.images.Generate(ctx, article.Title)
	if err != nil {
		return model.BriefingItem{}, &StepError{Step: StepImage, Index: index, Err: err}
	}

	imagePath, err := s.store.SaveImage(id, image)
	if err != nil {
		return model.BriefingItem{}, &StepError{Step: StepImage, Index: index, Err: err}
	}

	var audioPath string
	if s.speech != nil {
		audio, err := s.speech.Synthesize(ctx, summary)
		if err != nil {
			return model.BriefingItem{}, &StepError{Step: StepSpeech, Index: index, Err: err}
		}

		audioPath, err = s.store.SaveAudio(id, audio)
		if err != nil {
			return model.BriefingItem{}, &StepError{Step: StepSpeech, Index: index, Err: err}
		}
	}

	return model.BriefingItem{
		Title:     article.Title,
		Summary:   summary,
		ImagePath: imagePath,
		AudioPath: audioPath,
	}, nil
}
