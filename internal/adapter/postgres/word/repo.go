// Package word implements the canonical-words repository using PostgreSQL.
// Canonical words are keyed by slug; Create is a conditional insert so that
// concurrent promotions of identically-slugged words cannot produce
// duplicates.
package word

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lexibase/curator/internal/adapter/postgres"
	"github.com/lexibase/curator/internal/domain"
)

// Repo provides canonical word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new canonical word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const wordColumns = "slug, base_word, source_lang, translations, categories, updated_at"

const createWordSQL = `
INSERT INTO words (slug, base_word, source_lang, translations, categories, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (slug) DO NOTHING`

// Create inserts a canonical word unless one already exists at the same
// slug. Returns false (and no error) when an existing word won: the
// earlier document stays authoritative.
func (r *Repo) Create(ctx context.Context, w *domain.CanonicalWord) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	translations, err := json.Marshal(translationsOrEmpty(w.Translations))
	if err != nil {
		return false, fmt.Errorf("word %q: encode translations: %w", w.Slug, err)
	}

	tag, err := q.Exec(ctx, createWordSQL,
		w.Slug, w.BaseWord, w.SourceLang, translations, categoriesOrEmpty(w.Categories),
	)
	if err != nil {
		return false, postgres.MapError(err, "word", w.Slug)
	}

	return tag.RowsAffected() > 0, nil
}

const getWordSQL = `SELECT ` + wordColumns + ` FROM words WHERE slug = $1`

// GetBySlug returns a canonical word by slug.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.CanonicalWord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var (
		w            domain.CanonicalWord
		translations []byte
	)
	err := q.QueryRow(ctx, getWordSQL, slug).
		Scan(&w.Slug, &w.BaseWord, &w.SourceLang, &translations, &w.Categories, &w.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "word", slug)
	}

	if err := json.Unmarshal(translations, &w.Translations); err != nil {
		return nil, fmt.Errorf("word %q: decode translations: %w", slug, err)
	}

	return &w, nil
}

const listWordsSQL = `SELECT ` + wordColumns + ` FROM words ORDER BY slug LIMIT $1 OFFSET $2`

// List returns canonical words ordered by slug with pagination.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]*domain.CanonicalWord, error) {
	if limit <= 0 {
		limit = domain.DefaultFilterLimit
	}
	if limit > domain.MaxFilterLimit {
		limit = domain.MaxFilterLimit
	}
	if offset < 0 {
		offset = 0
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listWordsSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var out []*domain.CanonicalWord
	for rows.Next() {
		var (
			w            domain.CanonicalWord
			translations []byte
		)
		if err := rows.Scan(&w.Slug, &w.BaseWord, &w.SourceLang, &translations, &w.Categories, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		if err := json.Unmarshal(translations, &w.Translations); err != nil {
			return nil, fmt.Errorf("word %q: decode translations: %w", w.Slug, err)
		}
		out = append(out, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	return out, nil
}

const wordBaseWordsSQL = `SELECT lower(base_word) FROM words`

// ListBaseWords returns the lowercased base word of every canonical word.
// Used by the import pipeline's dedupe snapshot.
func (r *Repo) ListBaseWords(ctx context.Context) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, wordBaseWordsSQL)
	if err != nil {
		return nil, fmt.Errorf("list word base words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan base word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate base words: %w", err)
	}

	return words, nil
}

func translationsOrEmpty(m map[string]domain.Translation) map[string]domain.Translation {
	if m == nil {
		return map[string]domain.Translation{}
	}
	return m
}

func categoriesOrEmpty(c []string) []string {
	if c == nil {
		return []string{}
	}
	return c
}
