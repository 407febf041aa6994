package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/domain"
)

// Edit applies a partial update to a pending suggestion. Absent fields stay
// untouched; a translation with an empty word removes that language and a
// non-nil empty category list clears the categories.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, input EditInput) (*domain.Suggestion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := current.Clone()

	if input.BaseWord != nil {
		merged.BaseWord = domain.NormalizeWord(*input.BaseWord)
	}

	if input.Translations != nil {
		if merged.Translations == nil {
			merged.Translations = make(map[string]domain.Translation, len(input.Translations))
		}
		for lang, tr := range input.Translations {
			if tr.Word == "" {
				delete(merged.Translations, lang)
				continue
			}
			merged.Translations[lang] = tr
		}
	}

	if input.Categories != nil {
		merged.Categories = append([]string(nil), (*input.Categories)...)
	}

	updated, err := s.suggestions.Update(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("update suggestion: %w", err)
	}

	s.log.InfoContext(ctx, "suggestion edited",
		slog.String("id", id.String()),
		slog.String("base_word", updated.BaseWord),
	)

	return updated, nil
}
