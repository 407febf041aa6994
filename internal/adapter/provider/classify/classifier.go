// Package classify asks an LLM to categorize a word and score its
// difficulty per language.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/lexibase/curator/internal/config"
	"github.com/lexibase/curator/internal/domain"
	"github.com/lexibase/curator/internal/provider"
)

// Classifier produces category and difficulty judgements for words.
type Classifier struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	enabled   bool
	log       *slog.Logger
}

// New creates a Classifier. An empty API key disables it: Classify then
// returns domain.ErrUnavailable and callers fall back to defaults.
func New(cfg config.ClassifyConfig, logger *slog.Logger) *Classifier {
	return &Classifier{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		enabled:   cfg.APIKey != "",
		log:       logger.With("adapter", "classify"),
	}
}

// Classify returns the matching categories and per-language difficulty
// scores for a word. Scores are the model's raw output; clamping to the
// 1..5 scale is the caller's concern.
func (c *Classifier) Classify(ctx context.Context, word, lang string, categories []domain.Category, languages []domain.Language) (*provider.Classification, error) {
	if !c.enabled {
		return nil, fmt.Errorf("classify: no API key configured: %w", domain.ErrUnavailable)
	}

	prompt := buildPrompt(word, lang, categories, languages)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		c.log.WarnContext(ctx, "classification call failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("classify %q: %w", word, domain.ErrUnavailable)
	}

	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("classify %q: empty response", word)
	}

	result, err := parseResponse(msg.Content[0].Text)
	if err != nil {
		return nil, fmt.Errorf("classify %q: %w", word, err)
	}

	c.log.DebugContext(ctx, "word classified",
		slog.String("word", word),
		slog.Int("categories", len(result.Categories)),
	)

	return result, nil
}

// buildPrompt creates the classification prompt for a single word.
func buildPrompt(word, lang string, categories []domain.Category, languages []domain.Language) string {
	catSlugs := make([]string, len(categories))
	for i, c := range categories {
		catSlugs[i] = c.Slug
	}
	langCodes := make([]string, len(languages))
	for i, l := range languages {
		langCodes[i] = l.Code
	}

	return fmt.Sprintf(`You are a dictionary editor for a language-learning app.

Given the word "%s" (language: %s), classify it.

Output ONLY a valid JSON object matching this exact schema:
{
  "categories": ["<category slug>"],
  "difficulty_scores": {"<language code>": <1-5>}
}

Rules:
- Pick only categories from this list: %s
- Score difficulty for each of these languages: %s
- 1 means a beginner word, 5 means an advanced word
- Output ONLY the JSON, no markdown, no explanations`,
		word, lang, strings.Join(catSlugs, ", "), strings.Join(langCodes, ", "))
}

// parseResponse extracts and decodes the JSON object from the model output.
func parseResponse(text string) (*provider.Classification, error) {
	jsonStr, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(jsonStr)) {
		return nil, fmt.Errorf("response does not contain valid JSON")
	}

	var result provider.Classification
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}

	return &result, nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
