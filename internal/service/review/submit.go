package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lexibase/curator/internal/domain"
)

// Submit creates a pending suggestion from operator input. The base word is
// normalized; translations and categories are stored as given and can be
// completed later by Translate or by enrichment during promotion.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Suggestion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.suggestions.Create(ctx, &domain.Suggestion{
		BaseWord:     domain.NormalizeWord(input.BaseWord),
		SourceLang:   strings.TrimSpace(input.SourceLang),
		Translations: input.Translations,
		Categories:   input.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("create suggestion: %w", err)
	}

	s.log.InfoContext(ctx, "suggestion submitted",
		slog.String("id", created.ID.String()),
		slog.String("base_word", created.BaseWord),
		slog.String("source_lang", created.SourceLang),
	)

	return created, nil
}
