// Package review implements the curation workflow over pending
// suggestions: submission, editing, translation, batch import, and the
// promote/reject decisions that move entries into (or out of) the
// canonical dictionary.
package review

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/domain"
)

type suggestionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	List(ctx context.Context, f domain.SuggestionFilter) ([]*domain.Suggestion, error)
	ListBaseWords(ctx context.Context) ([]string, error)
	Create(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error)
	Update(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type wordRepo interface {
	Create(ctx context.Context, w *domain.CanonicalWord) (bool, error)
	GetBySlug(ctx context.Context, slug string) (*domain.CanonicalWord, error)
	List(ctx context.Context, limit, offset int) ([]*domain.CanonicalWord, error)
	ListBaseWords(ctx context.Context) ([]string, error)
}

type enricher interface {
	Enrich(ctx context.Context, word, sourceLang string) (*domain.Enrichment, error)
}

type translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the curation operations.
type Service struct {
	suggestions suggestionRepo
	words       wordRepo
	enricher    enricher
	translator  translator
	tx          txManager
	log         *slog.Logger
}

// NewService creates a new review service.
func NewService(
	log *slog.Logger,
	suggestions suggestionRepo,
	words wordRepo,
	enricher enricher,
	translator translator,
	tx txManager,
) *Service {
	return &Service{
		suggestions: suggestions,
		words:       words,
		enricher:    enricher,
		translator:  translator,
		tx:          tx,
		log:         log.With("service", "review"),
	}
}
