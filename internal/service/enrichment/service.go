// Package enrichment builds complete dictionary data for a single word:
// category labels plus one translation per supported language.
package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lexibase/curator/internal/domain"
	"github.com/lexibase/curator/internal/provider"
)

const defaultDifficulty = 3

type translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type classifier interface {
	Classify(ctx context.Context, word, lang string, categories []domain.Category, languages []domain.Language) (*provider.Classification, error)
}

type referenceRepo interface {
	Languages(ctx context.Context) ([]domain.Language, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// Service runs the enrichment pipeline. It performs no writes; callers
// decide what to do with the result.
type Service struct {
	translator translator
	classifier classifier
	reference  referenceRepo
	log        *slog.Logger
}

// NewService creates a new enrichment service.
func NewService(
	log *slog.Logger,
	translator translator,
	classifier classifier,
	reference referenceRepo,
) *Service {
	return &Service{
		translator: translator,
		classifier: classifier,
		reference:  reference,
		log:        log.With("service", "enrichment"),
	}
}

// Enrich classifies a word and translates it into every supported language.
// On success the returned translations cover exactly the supported-language
// set: a failed or echoed translation falls back to the source word rather
// than leaving a gap. A failed classification fails the whole enrichment;
// there is no partial result.
func (s *Service) Enrich(ctx context.Context, word, sourceLang string) (*domain.Enrichment, error) {
	languages, err := s.reference.Languages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load supported languages: %w", err)
	}
	categories, err := s.reference.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	classification, err := s.classifier.Classify(ctx, word, sourceLang, categories, languages)
	if err != nil {
		return nil, fmt.Errorf("classify %q: %w", word, err)
	}

	scores := clampScores(classification.DifficultyScores, languages)

	enrichment := &domain.Enrichment{
		Categories:   knownCategories(classification.Categories, categories),
		Translations: make(map[string]domain.Translation, len(languages)),
	}

	for _, lang := range languages {
		translated := s.translate(ctx, word, sourceLang, lang.Code)
		enrichment.Translations[lang.Code] = domain.Translation{
			Word:       domain.Capitalize(translated),
			Difficulty: scores[lang.Code],
		}
	}

	s.log.InfoContext(ctx, "word enriched",
		slog.String("word", word),
		slog.String("source_lang", sourceLang),
		slog.Int("categories", len(enrichment.Categories)),
	)

	return enrichment, nil
}

// translate fetches one translation. The source language echoes the word
// itself; provider errors and case-insensitive echoes degrade to the source
// word so the language map stays complete.
func (s *Service) translate(ctx context.Context, word, sourceLang, targetLang string) string {
	if targetLang == sourceLang {
		return word
	}

	translated, err := s.translator.Translate(ctx, word, sourceLang, targetLang)
	if err != nil {
		s.log.WarnContext(ctx, "translation fallback",
			slog.String("word", word),
			slog.String("target_lang", targetLang),
			slog.String("error", err.Error()),
		)
		return word
	}
	if strings.EqualFold(strings.TrimSpace(translated), word) || strings.TrimSpace(translated) == "" {
		return word
	}

	return strings.TrimSpace(translated)
}

// knownCategories keeps only category slugs present in the reference set,
// preserving the classifier's order.
func knownCategories(got []string, known []domain.Category) []string {
	valid := make(map[string]bool, len(known))
	for _, c := range known {
		valid[c.Slug] = true
	}

	out := []string{}
	seen := make(map[string]bool, len(got))
	for _, slug := range got {
		if valid[slug] && !seen[slug] {
			out = append(out, slug)
			seen[slug] = true
		}
	}
	return out
}

// clampScores forces every supported language onto the 1..5 scale,
// defaulting to the middle when the classifier omitted a language.
func clampScores(scores map[string]int, languages []domain.Language) map[string]int {
	out := make(map[string]int, len(languages))
	for _, lang := range languages {
		score, ok := scores[lang.Code]
		if !ok {
			score = defaultDifficulty
		}
		if score < 1 {
			score = 1
		}
		if score > 5 {
			score = 5
		}
		out[lang.Code] = score
	}
	return out
}
