package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/domain"
)

// Translate fills one missing translation on a pending suggestion using the
// translation provider. If the language already has a translation the
// suggestion is returned unchanged; the operation is idempotent and never
// overwrites curated data.
func (s *Service) Translate(ctx context.Context, id uuid.UUID, targetLang string) (*domain.Suggestion, error) {
	targetLang = strings.TrimSpace(targetLang)
	if targetLang == "" {
		return nil, domain.NewValidationError("target_lang", "required")
	}

	current, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tr, ok := current.Translations[targetLang]; ok && tr.Word != "" {
		return current, nil
	}

	word := current.BaseWord
	if targetLang != current.SourceLang {
		translated, err := s.translator.Translate(ctx, current.BaseWord, current.SourceLang, targetLang)
		if err != nil {
			return nil, fmt.Errorf("translate %q to %s: %w", current.BaseWord, targetLang, err)
		}
		if t := strings.TrimSpace(translated); t != "" && !strings.EqualFold(t, current.BaseWord) {
			word = t
		}
	}

	merged := current.Clone()
	if merged.Translations == nil {
		merged.Translations = make(map[string]domain.Translation, 1)
	}
	merged.Translations[targetLang] = domain.Translation{
		Word:       domain.Capitalize(word),
		Difficulty: defaultDifficulty(merged.Translations),
	}

	updated, err := s.suggestions.Update(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("update suggestion: %w", err)
	}

	s.log.InfoContext(ctx, "translation filled",
		slog.String("id", id.String()),
		slog.String("target_lang", targetLang),
	)

	return updated, nil
}

// defaultDifficulty picks a score for a hand-filled translation: the
// highest score already present, or the middle of the scale.
func defaultDifficulty(translations map[string]domain.Translation) int {
	best := 0
	for _, tr := range translations {
		if tr.Difficulty > best {
			best = tr.Difficulty
		}
	}
	if best == 0 {
		return 3
	}
	return best
}
