package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
	"github.com/go-playground/assert/v2"
)

func TestToFinnhubArticle(t *testing.T) {
	headline := "Fed Holds Rates Steady"
	summary := "The Federal Reserve kept interest rates unchanged."
	link := "https://example.com/fed"
	source := "Reuters"
	datetime := int64(1791100800)

	a := toFinnhubArticle(finnhub.MarketNews{
		Headline: &headline,
		Summary:  &summary,
		Url:      &link,
		Source:   &source,
		Datetime: &datetime,
	})

	assert.Equal(t, headline, a.Title)
	assert.Equal(t, summary, a.Description)
	assert.Equal(t, link, a.URL)
	assert.Equal(t, source, a.Source)
	assert.Equal(t, datetime, a.PublishedAt.Unix())
	assert.Equal(t, summary, a.Text())
}

func TestToFinnhubArticleNilFields(t *testing.T) {
	a := toFinnhubArticle(finnhub.MarketNews{})

	assert.Equal(t, "", a.Title)
	assert.Equal(t, true, a.PublishedAt.IsZero())
}

func TestMentions(t *testing.T) {
	headline := "Bitcoin climbs past record"
	a := toFinnhubArticle(finnhub.MarketNews{Headline: &headline})

	assert.Equal(t, true, mentions(a, "bitcoin"))
	assert.Equal(t, false, mentions(a, "oil"))
}

func newTestFinnHubClient(srv *httptest.Server, timeout time.Duration) *FinnHubClient {
	return newFinnHubClient("test-key", &http.Client{
		Timeout:   timeout,
		Transport: &rewriteTransport{base: srv.URL, inner: http.DefaultTransport},
	})
}

func TestFinnHubFetch(t *testing.T) {
	var category, token string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		category = r.URL.Query().Get("category")
		token = r.Header.Get("X-Finnhub-Token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"headline": "Oil slides on supply news", "summary": "Crude fell.", "url": "https://example.com/oil", "source": "Reuters", "datetime": 1791100800},
			{"headline": "Bitcoin climbs past record", "summary": "Crypto rallied.", "url": "https://example.com/btc", "source": "CNBC", "datetime": 1791100900}
		]`))
	}))
	defer srv.Close()

	articles, err := newTestFinnHubClient(srv, 5*time.Second).Fetch(context.Background(), "bitcoin", 2)

	assert.Equal(t, nil, err)
	assert.Equal(t, "general", category)
	assert.Equal(t, "test-key", token)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Bitcoin climbs past record", articles[0].Title)
}

func TestFinnHubFetchWrapsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	articles, err := newTestFinnHubClient(srv, 5*time.Second).Fetch(context.Background(), "general", 2)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.HasPrefix(err.Error(), "finnhub fetch:"))
	assert.Equal(t, 0, len(articles))
}

func TestFinnHubFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := newTestFinnHubClient(srv, 50*time.Millisecond).Fetch(context.Background(), "general", 2)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, time.Since(start) < time.Second)
}
