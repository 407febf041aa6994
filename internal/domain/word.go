package domain

import (
	"time"

	"github.com/google/uuid"
)

// EnglishCode is the language whose form of a word is used to derive
// canonical slugs.
const EnglishCode = "en"

// Translation is one language's rendering of a word together with its
// difficulty score for learners of that language (1..5).
type Translation struct {
	Word       string `json:"word"`
	Difficulty int    `json:"difficulty"`
}

// Suggestion is a pending, unreviewed candidate dictionary entry.
// The ID is assigned by the store on creation. A suggestion stays in the
// pending collection until it is promoted into the canonical dictionary
// or rejected (deleted).
type Suggestion struct {
	ID           uuid.UUID
	BaseWord     string
	SourceLang   string
	Translations map[string]Translation
	Categories   []string
	UpdatedAt    time.Time
}

// Enriched reports whether the suggestion already carries enrichment data
// (translations and categories). Unenriched suggestions are enriched on
// promotion.
func (s *Suggestion) Enriched() bool {
	return len(s.Translations) > 0 && len(s.Categories) > 0
}

// SlugSource returns the word form the canonical slug is derived from:
// the English translation when present, otherwise the base word.
func (s *Suggestion) SlugSource() string {
	if t, ok := s.Translations[EnglishCode]; ok && t.Word != "" {
		return t.Word
	}
	return s.BaseWord
}

// Clone returns a deep copy of the suggestion. The change feed hands
// suggestions to multiple subscribers, so shared maps must not leak.
func (s *Suggestion) Clone() *Suggestion {
	if s == nil {
		return nil
	}
	out := *s
	if s.Translations != nil {
		out.Translations = make(map[string]Translation, len(s.Translations))
		for lang, tr := range s.Translations {
			out.Translations[lang] = tr
		}
	}
	if s.Categories != nil {
		out.Categories = append([]string(nil), s.Categories...)
	}
	return &out
}

// CanonicalWord is an accepted, published dictionary entry. Identity is the
// slug derived from the English form of the word; at most one canonical word
// exists per slug.
type CanonicalWord struct {
	Slug         string
	BaseWord     string
	SourceLang   string
	Translations map[string]Translation
	Categories   []string
	UpdatedAt    time.Time
}

// Language is a supported dictionary language (read-only reference data).
type Language struct {
	Code string
	Name string
}

// Category is a word category label (read-only reference data).
type Category struct {
	Slug string
	Name string
}

// Enrichment is the result of classifying and translating a single word:
// category labels plus one translation per supported language. It is either
// complete or absent; the enrichment engine never produces partial maps.
type Enrichment struct {
	Categories   []string
	Translations map[string]Translation
}
