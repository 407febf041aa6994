// Package suggestion implements the pending-suggestions repository using
// PostgreSQL. Every write fires the suggestions_notify trigger, so the
// change feed observes all mutations regardless of which session made them.
package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/adapter/postgres"
	"github.com/lexibase/curator/internal/domain"
)

// Repo provides suggestion persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new suggestion repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const suggestionColumns = "id, base_word, source_lang, translations, categories, updated_at"

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getSuggestionSQL = `SELECT ` + suggestionColumns + ` FROM suggestions WHERE id = $1`

// GetByID returns a suggestion by primary key.
// Returns domain.ErrNotFound if the suggestion does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, getSuggestionSQL, id)
	s, err := scanSuggestion(row)
	if err != nil {
		return nil, postgres.MapError(err, "suggestion", id.String())
	}

	return s, nil
}

// List returns suggestions matching the filter, newest first.
func (r *Repo) List(ctx context.Context, f domain.SuggestionFilter) ([]*domain.Suggestion, error) {
	f.Normalize()

	builder := psql.Select(suggestionColumns).
		From("suggestions").
		OrderBy("updated_at DESC, id").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	if f.SourceLang != nil {
		builder = builder.Where(sq.Eq{"source_lang": *f.SourceLang})
	}
	if f.BaseWord != nil {
		builder = builder.Where(sq.Expr("lower(base_word) = lower(?)", *f.BaseWord))
	}
	if f.Category != nil {
		builder = builder.Where(sq.Expr("categories @> ARRAY[?]::text[]", *f.Category))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build suggestions query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	return collectSuggestions(rows)
}

const allSuggestionsSQL = `SELECT ` + suggestionColumns + ` FROM suggestions ORDER BY updated_at, id`

// All returns every pending suggestion, oldest first. Used by the change
// feed for its initial snapshot.
func (r *Repo) All(ctx context.Context) ([]*domain.Suggestion, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, allSuggestionsSQL)
	if err != nil {
		return nil, fmt.Errorf("load all suggestions: %w", err)
	}
	defer rows.Close()

	return collectSuggestions(rows)
}

const suggestionBaseWordsSQL = `SELECT lower(base_word) FROM suggestions`

// ListBaseWords returns the lowercased base word of every pending
// suggestion. Used by the import pipeline's dedupe snapshot.
func (r *Repo) ListBaseWords(ctx context.Context) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, suggestionBaseWordsSQL)
	if err != nil {
		return nil, fmt.Errorf("list suggestion base words: %w", err)
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

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSuggestionSQL = `
INSERT INTO suggestions (id, base_word, source_lang, translations, categories, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING updated_at`

// Create inserts a new suggestion and returns it with the store-assigned
// key and server timestamp filled in.
func (r *Repo) Create(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	created := s.Clone()
	created.ID = uuid.New()

	translations, err := marshalTranslations(created.Translations)
	if err != nil {
		return nil, fmt.Errorf("suggestion %q: %w", created.BaseWord, err)
	}

	var updatedAt time.Time
	err = q.QueryRow(ctx, createSuggestionSQL,
		created.ID, created.BaseWord, created.SourceLang, translations, categoriesOrEmpty(created.Categories),
	).Scan(&updatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "suggestion", created.ID.String())
	}

	created.UpdatedAt = updatedAt
	return created, nil
}

const updateSuggestionSQL = `
UPDATE suggestions
SET base_word = $2, source_lang = $3, translations = $4, categories = $5, updated_at = now()
WHERE id = $1
RETURNING updated_at`

// Update overwrites a suggestion's content fields.
// Returns domain.ErrNotFound if the suggestion no longer exists.
func (r *Repo) Update(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	translations, err := marshalTranslations(s.Translations)
	if err != nil {
		return nil, fmt.Errorf("suggestion %s: %w", s.ID, err)
	}

	updated := s.Clone()
	err = q.QueryRow(ctx, updateSuggestionSQL,
		s.ID, s.BaseWord, s.SourceLang, translations, categoriesOrEmpty(s.Categories),
	).Scan(&updated.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "suggestion", s.ID.String())
	}

	return updated, nil
}

const deleteSuggestionSQL = `DELETE FROM suggestions WHERE id = $1`

// Delete removes a suggestion. Returns domain.ErrNotFound if it was
// already gone.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteSuggestionSQL, id)
	if err != nil {
		return postgres.MapError(err, "suggestion", id.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(row rowScanner) (*domain.Suggestion, error) {
	var (
		s            domain.Suggestion
		translations []byte
	)

	err := row.Scan(&s.ID, &s.BaseWord, &s.SourceLang, &translations, &s.Categories, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(translations, &s.Translations); err != nil {
		return nil, fmt.Errorf("decode translations: %w", err)
	}

	return &s, nil
}

func collectSuggestions(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]*domain.Suggestion, error) {
	var out []*domain.Suggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestions: %w", err)
	}
	return out, nil
}

func marshalTranslations(m map[string]domain.Translation) ([]byte, error) {
	if m == nil {
		m = map[string]domain.Translation{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode translations: %w", err)
	}
	return data, nil
}

// categoriesOrEmpty avoids inserting NULL for a nil slice.
func categoriesOrEmpty(c []string) []string {
	if c == nil {
		return []string{}
	}
	return c
}
