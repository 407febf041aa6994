package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/domain"
)

// Promote moves a pending suggestion into the canonical dictionary.
//
// A suggestion without translations or categories is enriched first and the
// enrichment persisted back to the pending row, so a later store failure
// does not discard paid provider calls. The canonical insert is conditional
// on the slug: when an identically-slugged word already exists, the earlier
// document stays authoritative and the pending row is still consumed;
// promoting a duplicate is a successful no-op, not an error.
func (s *Service) Promote(ctx context.Context, id uuid.UUID) (*domain.CanonicalWord, error) {
	suggestion, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !suggestion.Enriched() {
		suggestion, err = s.enrichPending(ctx, suggestion)
		if err != nil {
			return nil, err
		}
	}

	slug := domain.Slugify(suggestion.SlugSource())
	if slug == "" {
		return nil, domain.NewValidationError("base_word", "does not yield a usable slug")
	}

	word := &domain.CanonicalWord{
		Slug:         slug,
		BaseWord:     suggestion.BaseWord,
		SourceLang:   suggestion.SourceLang,
		Translations: suggestion.Translations,
		Categories:   suggestion.Categories,
	}

	var inserted bool
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		inserted, txErr = s.words.Create(ctx, word)
		if txErr != nil {
			return fmt.Errorf("create canonical word: %w", txErr)
		}

		// The pending row may already be gone if another operator promoted
		// or rejected concurrently; either way it is consumed.
		if txErr := s.suggestions.Delete(ctx, id); txErr != nil && !errors.Is(txErr, domain.ErrNotFound) {
			return fmt.Errorf("delete promoted suggestion: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "suggestion promoted",
		slog.String("id", id.String()),
		slog.String("slug", slug),
		slog.Bool("inserted", inserted),
	)

	if !inserted {
		return s.words.GetBySlug(ctx, slug)
	}
	return word, nil
}

// enrichPending runs enrichment for an incomplete suggestion and persists
// the result to the pending row before promotion continues.
func (s *Service) enrichPending(ctx context.Context, suggestion *domain.Suggestion) (*domain.Suggestion, error) {
	enrichment, err := s.enricher.Enrich(ctx, suggestion.BaseWord, suggestion.SourceLang)
	if err != nil {
		return nil, fmt.Errorf("enrich before promotion: %w", err)
	}

	enriched := suggestion.Clone()
	enriched.Translations = enrichment.Translations
	enriched.Categories = enrichment.Categories

	updated, err := s.suggestions.Update(ctx, enriched)
	if err != nil {
		return nil, fmt.Errorf("persist enrichment: %w", err)
	}
	return updated, nil
}
