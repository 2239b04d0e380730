package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"newsbrief/internal/model"
)

var finnhubCategories = map[string]bool{
	"general": true,
	"forex":   true,
	"crypto":  true,
	"merger":  true,
}

// FinnHubClient serves market news. Finnhub has no free-text search, so a
// topic that is not a Finnhub category is matched against headline and summary.
type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string, timeout time.Duration) *FinnHubClient {
	return newFinnHubClient(apiKey, &http.Client{Timeout: timeout})
}

func newFinnHubClient(apiKey string, httpClient *http.Client) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = httpClient
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

func (c *FinnHubClient) Fetch(ctx context.Context, topic string, limit int) ([]model.Article, error) {
	category := strings.ToLower(strings.TrimSpace(topic))
	filter := ""
	if !finnhubCategories[category] {
		filter = category
		category = "general"
	}

	res, _, err := c.client.MarketNews(ctx).Category(category).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}

	articles := make([]model.Article, 0, limit)
	for _, news := range res {
		if len(articles) == limit {
			break
		}

		a := toFinnhubArticle(news)
		if a.Title == "" {
			continue
		}
		if filter != "" && !mentions(a, filter) {
			continue
		}

		articles = append(articles, a)
	}

	return articles, nil
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

func toFinnhubArticle(news finnhub.MarketNews) model.Article {
	var a model.Article

	if news.Headline != nil {
		a.Title = CleanTitle(*news.Headline)
	}

	if news.Summary != nil {
		a.Description = CleanText(*news.Summary)
	}

	if news.Url != nil {
		a.URL = *news.Url
	}

	if news.Datetime != nil {
		a.PublishedAt = time.Unix(*news.Datetime, 0)
	}

	if news.Source != nil {
		a.Source = *news.Source
	}

	return a
}

func mentions(a model.Article, term string) bool {
	return strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Description), term)
}
