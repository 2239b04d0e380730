package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newsbrief/internal/model"
)

const newsAPIEverythingURL = "https://newsapi.org/v2/everything"

type NewsAPIClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey, endpoint string, timeout time.Duration) *NewsAPIClient {
	if endpoint == "" {
		endpoint = newsAPIEverythingURL
	}
	return &NewsAPIClient{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) Fetch(ctx context.Context, topic string, limit int) ([]model.Article, error) {
	q := url.Values{}
	q.Set("q", topic)
	q.Set("pageSize", strconv.Itoa(limit))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	if raw.Articles == nil {
		if raw.Status == "error" {
			slog.WarnContext(ctx, "newsapi returned an error payload", "topic", topic, "code", raw.Code, "message", raw.Message)
		} else {
			slog.InfoContext(ctx, "no articles found", "topic", topic, "source", c.Name())
		}
		return []model.Article{}, nil
	}

	articles := make([]model.Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		title := CleanTitle(item.Title)
		if title == "" || title == removedPlaceholder {
			slog.WarnContext(ctx, "skipping article without title", "topic", topic, "url", item.URL)
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, model.Article{
			Title:       title,
			Content:     CleanText(item.Content),
			Description: CleanText(item.Description),
			URL:         item.URL,
			Source:      item.Source.Name,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

// NewsAPI replaces withdrawn articles with this literal in every field.
const removedPlaceholder = "[Removed]"

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Source      newsAPISource `json:"source"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
