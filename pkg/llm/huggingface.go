package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"newsbrief/pkg/hf"
)

const DefaultHFSummaryModel = "facebook/bart-large-cnn"

type HuggingFaceSummarizer struct {
	client *hf.Client
	model  string
	bounds Bounds
}

func NewHuggingFaceSummarizer(client *hf.Client, model string, bounds Bounds) *HuggingFaceSummarizer {
	if model == "" {
		model = DefaultHFSummaryModel
	}
	return &HuggingFaceSummarizer{client: client, model: model, bounds: bounds}
}

func (s *HuggingFaceSummarizer) Name() string {
	return "huggingface:" + s.model
}

type hfSummaryRequest struct {
	Inputs     string          `json:"inputs"`
	Parameters hfSummaryParams `json:"parameters"`
	Options    map[string]bool `json:"options,omitempty"`
}

type hfSummaryParams struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

func (s *HuggingFaceSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	data, err := s.client.Infer(ctx, s.model, hfSummaryRequest{
		Inputs: text,
		Parameters: hfSummaryParams{
			MaxLength: s.bounds.MaxTokens,
			MinLength: s.bounds.MinTokens,
			DoSample:  false,
		},
		Options: map[string]bool{"wait_for_model": true},
	})
	if err != nil {
		return "", err
	}

	var parsed []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse summary response: %w, content: %s", err, data)
	}

	if len(parsed) == 0 {
		return "", fmt.Errorf("no summary from %s", s.model)
	}

	return parsed[0].SummaryText, nil
}
