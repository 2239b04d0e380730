package model

import (
	"strings"
	"time"
)

type Article struct {
	Title       string
	Content     string
	Description string
	URL         string
	Source      string
	PublishedAt time.Time
}

// Text is the body handed to the summarizer: content, then description, then title.
func (a Article) Text() string {
	if s := strings.TrimSpace(a.Content); s != "" {
		return s
	}
	if s := strings.TrimSpace(a.Description); s != "" {
		return s
	}
	return a.Title
}
