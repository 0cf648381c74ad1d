package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/kaptinlin/jsonrepair"
	"github.com/nullspace/nullspace/pkg/config"
	"github.com/nullspace/nullspace/pkg/types"
	"github.com/sashabaranov/go-openai"
)

const promptTextLimit = 1024

// Summarizer generates a summary and keywords for one study record.
type Summarizer interface {
	Summarize(ctx context.Context, study types.Study) (string, error)
	Keywords(ctx context.Context, study types.Study) ([]string, error)
	Close() error
}

// OpenAISummarizer summarizes studies through an OpenAI-compatible
// chat completion endpoint.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
	cfg    config.SummarizerConfig
}

// NewOpenAISummarizer creates a summarizer from configuration.
// Supports OpenAI-compatible services through a custom BaseURL.
func NewOpenAISummarizer(cfg config.SummarizerConfig) (*OpenAISummarizer, error) {
	apiKey := cfg.APIKey
	var client *openai.Client
	if cfg.BaseURL != "" {
		if apiKey == "" {
			apiKey = "dummy-key"
		}
		clientConfig := openai.DefaultConfig(apiKey)
		clientConfig.BaseURL = cfg.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		if apiKey == "" {
			return nil, fmt.Errorf("openai summarizer requires an api key")
		}
		client = openai.NewClient(apiKey)
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAISummarizer{client: client, model: model, cfg: cfg}, nil
}

// Summarize implements Summarizer.
func (s *OpenAISummarizer) Summarize(ctx context.Context, study types.Study) (string, error) {
	content, err := s.chat(ctx,
		"You summarize space bioscience studies in two or three sentences for a general audience.",
		summaryText(study))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// Keywords implements Summarizer. The model is asked for a JSON array;
// malformed output is repaired before decoding.
func (s *OpenAISummarizer) Keywords(ctx context.Context, study types.Study) ([]string, error) {
	content, err := s.chat(ctx,
		"Extract up to 8 short domain keywords from the study text. Respond with a JSON array of strings only.",
		keywordText(study))
	if err != nil {
		return nil, err
	}

	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		repaired = content
	}
	var keywords []string
	if err := json.Unmarshal([]byte(repaired), &keywords); err != nil {
		return nil, fmt.Errorf("decoding keyword response: %w", err)
	}
	if len(keywords) > 8 {
		keywords = keywords[:8]
	}
	return keywords, nil
}

// Close implements Summarizer.
func (s *OpenAISummarizer) Close() error { return nil }

func (s *OpenAISummarizer) chat(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// summaryText assembles the study fields the summary prompt sees,
// truncated to the prompt budget.
func summaryText(study types.Study) string {
	var parts []string
	if study.Title != "" {
		parts = append(parts, "Study: "+study.Title)
	}
	if study.Description != "" {
		parts = append(parts, study.Description)
	}
	if study.Organism != "" {
		parts = append(parts, "Organism studied: "+study.Organism)
	}
	if study.Mission != "" {
		parts = append(parts, "Mission: "+study.Mission)
	}
	text := strings.Join(parts, ". ")
	if runes := []rune(text); len(runes) > promptTextLimit {
		text = string(runes[:promptTextLimit])
	}
	return text
}

func keywordText(study types.Study) string {
	var parts []string
	for _, f := range []string{study.Title, study.Description, study.Organism, study.Mission} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
