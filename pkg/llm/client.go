package llm

import "context"

// Bounds limits summary length in tokens. Backends map it to their own
// min/max length parameters.
type Bounds struct {
	MinTokens int
	MaxTokens int
}

// Summarizer condenses one article body. Implementations decode greedily
// (no sampling) so identical input yields identical output.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
	Name() string
}
