package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyInput = errors.New("summarize: input is empty")

type boundedSummarizer struct {
	inner  Summarizer
	bounds Bounds
}

// Bounded wraps s so that empty input and empty output are errors and the
// returned summary never has more than bounds.MaxTokens words.
func Bounded(s Summarizer, bounds Bounds) Summarizer {
	return &boundedSummarizer{inner: s, bounds: bounds}
}

func (b *boundedSummarizer) Name() string {
	return b.inner.Name()
}

func (b *boundedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}

	summary, err := b.inner.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	summary = clampWords(strings.TrimSpace(summary), b.bounds.MaxTokens)
	if summary == "" {
		return "", fmt.Errorf("%s returned an empty summary", b.inner.Name())
	}

	return summary, nil
}

func clampWords(s string, max int) string {
	if max <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}
	return strings.Join(words[:max], " ")
}

func summaryPrompt(bounds Bounds) string {
	return fmt.Sprintf(`You are a news editor. Summarize the article you are given.

Rules:
- Between %d and %d words.
- Neutral tone, keep names, numbers and dates.
- Output only the summary text, no preamble.`, bounds.MinTokens, bounds.MaxTokens)
}
