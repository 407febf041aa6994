package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/domain"
)

// List returns pending suggestions matching the filter, newest first.
func (s *Service) List(ctx context.Context, f domain.SuggestionFilter) ([]*domain.Suggestion, error) {
	suggestions, err := s.suggestions.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	if suggestions == nil {
		suggestions = []*domain.Suggestion{}
	}
	return suggestions, nil
}

// Get returns one pending suggestion by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	return s.suggestions.GetByID(ctx, id)
}

// ListWords returns canonical dictionary entries ordered by slug.
func (s *Service) ListWords(ctx context.Context, limit, offset int) ([]*domain.CanonicalWord, error) {
	words, err := s.words.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	if words == nil {
		words = []*domain.CanonicalWord{}
	}
	return words, nil
}
