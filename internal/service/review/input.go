package review

import (
	"strings"

	"github.com/lexibase/curator/internal/domain"
)

const maxWordLength = 100

// SubmitInput holds the parameters for manually creating a suggestion.
type SubmitInput struct {
	BaseWord     string
	SourceLang   string
	Translations map[string]domain.Translation
	Categories   []string
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	word := strings.TrimSpace(i.BaseWord)
	if word == "" {
		errs = append(errs, domain.FieldError{Field: "base_word", Message: "required"})
	}
	if len(word) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "base_word", Message: "max 100 characters"})
	}

	if strings.TrimSpace(i.SourceLang) == "" {
		errs = append(errs, domain.FieldError{Field: "source_lang", Message: "required"})
	}

	errs = append(errs, validateTranslations(i.Translations)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// EditInput holds a partial update of a pending suggestion. Nil fields are
// left untouched. A translation entry with an empty word removes that
// language; a non-nil empty Categories slice clears the categories.
type EditInput struct {
	BaseWord     *string
	Translations map[string]domain.Translation
	Categories   *[]string
}

// Validate checks all fields and collects all errors.
func (i EditInput) Validate() error {
	var errs []domain.FieldError

	if i.BaseWord != nil {
		word := strings.TrimSpace(*i.BaseWord)
		if word == "" {
			errs = append(errs, domain.FieldError{Field: "base_word", Message: "cannot be cleared"})
		}
		if len(word) > maxWordLength {
			errs = append(errs, domain.FieldError{Field: "base_word", Message: "max 100 characters"})
		}
	}

	errs = append(errs, validateTranslations(i.Translations)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ImportInput holds the parameters for a batch word import. Progress, when
// set, is called after every processed word with (done, total).
type ImportInput struct {
	Text     string
	Lang     string
	Progress func(done, total int)
}

// Validate checks all fields and collects all errors.
func (i ImportInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Lang) == "" {
		errs = append(errs, domain.FieldError{Field: "lang", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateTranslations checks difficulty bounds. An empty word is legal in
// edits (it removes the language), so only the score is validated here.
func validateTranslations(translations map[string]domain.Translation) []domain.FieldError {
	var errs []domain.FieldError
	for lang, tr := range translations {
		if tr.Word != "" && (tr.Difficulty < 1 || tr.Difficulty > 5) {
			errs = append(errs, domain.FieldError{Field: "translations." + lang, Message: "difficulty must be 1..5"})
		}
	}
	return errs
}
