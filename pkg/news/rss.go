package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"newsbrief/internal/model"
)

const googleNewsSearchURL = "https://news.google.com/rss/search"

// RSSClient searches a feed endpoint that takes the topic as its q parameter.
type RSSClient struct {
	endpoint string
	parser   *gofeed.Parser
}

func NewRSSClient(endpoint string, timeout time.Duration) *RSSClient {
	if endpoint == "" {
		endpoint = googleNewsSearchURL
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &RSSClient{endpoint: endpoint, parser: parser}
}

func (c *RSSClient) Name() string {
	return "RSS"
}

func (c *RSSClient) Fetch(ctx context.Context, topic string, limit int) ([]model.Article, error) {
	q := url.Values{}
	q.Set("q", topic)

	feed, err := c.parser.ParseURLWithContext(c.endpoint+"?"+q.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch: %w", err)
	}

	articles := make([]model.Article, 0, limit)
	for _, item := range feed.Items {
		if len(articles) == limit {
			break
		}

		title := CleanTitle(item.Title)
		if title == "" {
			continue
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		articles = append(articles, model.Article{
			Title:       title,
			Content:     CleanText(item.Content),
			Description: CleanText(item.Description),
			URL:         item.Link,
			Source:      feed.Title,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}
