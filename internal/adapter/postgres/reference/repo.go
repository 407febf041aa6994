// Package reference reads the supported-languages and categories tables.
// Both are seeded by migration and read-only from this system's
// perspective.
package reference

import (
	"context"
	"fmt"

	"github.com/lexibase/curator/internal/adapter/postgres"
	"github.com/lexibase/curator/internal/domain"
)

// Repo provides access to reference data.
type Repo struct {
	db postgres.Querier
}

// New creates a new reference data repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const languagesSQL = `SELECT code, name FROM supported_languages ORDER BY code`

// Languages returns all supported languages ordered by code.
func (r *Repo) Languages(ctx context.Context) ([]domain.Language, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, languagesSQL)
	if err != nil {
		return nil, fmt.Errorf("list supported languages: %w", err)
	}
	defer rows.Close()

	var langs []domain.Language
	for rows.Next() {
		var l domain.Language
		if err := rows.Scan(&l.Code, &l.Name); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		langs = append(langs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate languages: %w", err)
	}

	return langs, nil
}

const categoriesSQL = `SELECT slug, name FROM categories ORDER BY slug`

// Categories returns all word categories ordered by slug.
func (r *Repo) Categories(ctx context.Context) ([]domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, categoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Slug, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return cats, nil
}
