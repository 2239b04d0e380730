package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://router.huggingface.co/hf-inference/models"

// APIError is returned when the inference endpoint answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Model      string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("huggingface %s: HTTP %d: %s", e.Model, e.StatusCode, e.Body)
}

// Client posts JSON payloads to the Hugging Face inference API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Infer sends payload to model and returns the raw response body.
func (c *Client) Infer(ctx context.Context, model string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("huggingface encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("huggingface request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface %s: %w", model, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Model: model, Body: string(data)}
	}

	return data, nil
}
