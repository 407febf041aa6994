package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lexibase/curator/internal/domain"
)

// UniqueWord returns a base word unlikely to collide with other tests.
func UniqueWord(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedSuggestion inserts a pending suggestion directly into the store.
// Returns the suggestion with its server-side timestamp filled in.
func SeedSuggestion(t *testing.T, pool *pgxpool.Pool, s domain.Suggestion) domain.Suggestion {
	t.Helper()
	ctx := context.Background()

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SourceLang == "" {
		s.SourceLang = "ka"
	}
	if s.Translations == nil {
		s.Translations = map[string]domain.Translation{}
	}
	if s.Categories == nil {
		s.Categories = []string{}
	}

	translations, err := json.Marshal(s.Translations)
	if err != nil {
		t.Fatalf("testhelper: SeedSuggestion encode translations: %v", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO suggestions (id, base_word, source_lang, translations, categories, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 RETURNING updated_at`,
		s.ID, s.BaseWord, s.SourceLang, translations, s.Categories,
	).Scan(&s.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSuggestion insert: %v", err)
	}

	return s
}

// SeedWord inserts a canonical word directly into the store.
func SeedWord(t *testing.T, pool *pgxpool.Pool, w domain.CanonicalWord) domain.CanonicalWord {
	t.Helper()
	ctx := context.Background()

	if w.SourceLang == "" {
		w.SourceLang = "ka"
	}
	if w.Translations == nil {
		w.Translations = map[string]domain.Translation{}
	}
	if w.Categories == nil {
		w.Categories = []string{}
	}

	translations, err := json.Marshal(w.Translations)
	if err != nil {
		t.Fatalf("testhelper: SeedWord encode translations: %v", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO words (slug, base_word, source_lang, translations, categories, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 RETURNING updated_at`,
		w.Slug, w.BaseWord, w.SourceLang, translations, w.Categories,
	).Scan(&w.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert: %v", err)
	}

	return w
}
