package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"newsbrief/internal/handler"
	"newsbrief/internal/model"
)

type builder interface {
	Build(ctx context.Context, topic string) ([]model.BriefingItem, error)
}

type topicResult struct {
	Topic string                     `json:"topic"`
	Items []handler.BriefingResponse `json:"items"`
}

// uniqueTopics normalizes args and drops repeats, so no two workers write
// the same image paths. No args means the default topic.
func uniqueTopics(args []string, normalize func(string) string) []string {
	if len(args) == 0 {
		return []string{normalize("")}
	}

	seen := make(map[string]bool, len(args))
	topics := make([]string, 0, len(args))
	for _, arg := range args {
		t := normalize(arg)
		if seen[t] {
			continue
		}
		seen[t] = true
		topics = append(topics, t)
	}
	return topics
}

// buildAll runs one briefing per topic, at most limit at a time. Results
// keep the order of topics. The first failure cancels the rest.
func buildAll(ctx context.Context, b builder, topics []string, limit int) ([]topicResult, error) {
	results := make([]topicResult, len(topics))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, topic := range topics {
		g.Go(func() error {
			items, err := b.Build(ctx, topic)
			if err != nil {
				return fmt.Errorf("topic %q: %w", topic, err)
			}

			res := make([]handler.BriefingResponse, 0, len(items))
			for _, item := range items {
				res = append(res, handler.BriefingResponse{
					Title:     item.Title,
					Summary:   item.Summary,
					ImagePath: item.ImagePath,
					AudioPath: item.AudioPath,
				})
			}
			results[i] = topicResult{Topic: topic, Items: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeJSON(w io.Writer, results []topicResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

var (
	topicStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginTop(1)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().PaddingLeft(2).Width(80)
	pathStyle    = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("241"))
	emptyStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
)

func writeStyled(w io.Writer, results []topicResult) {
	for _, r := range results {
		fmt.Fprintln(w, topicStyle.Render("# "+r.Topic))

		if len(r.Items) == 0 {
			fmt.Fprintln(w, emptyStyle.Render("No articles found."))
			continue
		}

		for i, item := range r.Items {
			fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d. %s", i+1, item.Title)))
			fmt.Fprintln(w, summaryStyle.Render(item.Summary))
			fmt.Fprintln(w, pathStyle.Render("image: "+item.ImagePath))
			if item.AudioPath != "" {
				fmt.Fprintln(w, pathStyle.Render("audio: "+item.AudioPath))
			}
		}
	}
}
