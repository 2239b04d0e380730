package news

import (
	"context"

	"newsbrief/internal/model"
)

// NewsClient returns up to limit articles about topic, in upstream order.
// An upstream answer without an article list is an empty result, not an error.
type NewsClient interface {
	Fetch(ctx context.Context, topic string, limit int) ([]model.Article, error)
	Name() string
}
