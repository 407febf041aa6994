package rest

import (
	"time"

	"github.com/lexibase/curator/internal/domain"
)

type translationDTO struct {
	Word       string `json:"word"`
	Difficulty int    `json:"difficulty"`
}

type suggestionDTO struct {
	ID           string                    `json:"id"`
	BaseWord     string                    `json:"base_word"`
	SourceLang   string                    `json:"source_lang"`
	Translations map[string]translationDTO `json:"translations"`
	Categories   []string                  `json:"categories"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

type wordDTO struct {
	Slug         string                    `json:"slug"`
	BaseWord     string                    `json:"base_word"`
	SourceLang   string                    `json:"source_lang"`
	Translations map[string]translationDTO `json:"translations"`
	Categories   []string                  `json:"categories"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

func toTranslationDTOs(m map[string]domain.Translation) map[string]translationDTO {
	out := make(map[string]translationDTO, len(m))
	for lang, tr := range m {
		out[lang] = translationDTO{Word: tr.Word, Difficulty: tr.Difficulty}
	}
	return out
}

func toSuggestionDTO(s *domain.Suggestion) suggestionDTO {
	return suggestionDTO{
		ID:           s.ID.String(),
		BaseWord:     s.BaseWord,
		SourceLang:   s.SourceLang,
		Translations: toTranslationDTOs(s.Translations),
		Categories:   categoriesOrEmpty(s.Categories),
		UpdatedAt:    s.UpdatedAt,
	}
}

func toSuggestionDTOs(list []*domain.Suggestion) []suggestionDTO {
	out := make([]suggestionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, toSuggestionDTO(s))
	}
	return out
}

func toWordDTO(w *domain.CanonicalWord) wordDTO {
	return wordDTO{
		Slug:         w.Slug,
		BaseWord:     w.BaseWord,
		SourceLang:   w.SourceLang,
		Translations: toTranslationDTOs(w.Translations),
		Categories:   categoriesOrEmpty(w.Categories),
		UpdatedAt:    w.UpdatedAt,
	}
}

func toWordDTOs(list []*domain.CanonicalWord) []wordDTO {
	out := make([]wordDTO, 0, len(list))
	for _, w := range list {
		out = append(out, toWordDTO(w))
	}
	return out
}

func toDomainTranslations(m map[string]translationDTO) map[string]domain.Translation {
	if m == nil {
		return nil
	}
	out := make(map[string]domain.Translation, len(m))
	for lang, tr := range m {
		out[lang] = domain.Translation{Word: tr.Word, Difficulty: tr.Difficulty}
	}
	return out
}

func categoriesOrEmpty(c []string) []string {
	if c == nil {
		return []string{}
	}
	return c
}
