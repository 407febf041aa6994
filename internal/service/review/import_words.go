package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lexibase/curator/internal/domain"
)

// ImportReport summarizes one batch import.
type ImportReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// ImportWords runs the batch import pipeline: one word per line, blank
// lines dropped. Words already present, whether in the canonical dictionary, in
// the pending set, or earlier in the same batch, are skipped. Remaining
// candidates are processed strictly sequentially: enrich, then create a
// pending suggestion. A failed word is counted and the batch continues;
// there are no retries. The progress callback fires after every candidate
// regardless of outcome.
//
// The known-words snapshot is taken once up front; a failure there aborts
// the whole import before any provider call is made.
func (s *Service) ImportWords(ctx context.Context, input ImportInput) (*ImportReport, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	lang := strings.TrimSpace(input.Lang)

	known, err := s.knownBaseWords(ctx)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	var candidates []string
	for _, line := range strings.Split(input.Text, "\n") {
		word := domain.NormalizeWord(line)
		if word == "" {
			continue
		}
		if known[word] {
			report.Skipped++
			continue
		}
		known[word] = true
		candidates = append(candidates, word)
	}

	s.log.InfoContext(ctx, "import started",
		slog.String("lang", lang),
		slog.Int("candidates", len(candidates)),
		slog.Int("skipped", report.Skipped),
	)

	for i, word := range candidates {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("import interrupted: %w", err)
		}

		if err := s.importOne(ctx, word, lang); err != nil {
			report.Failed++
			s.log.WarnContext(ctx, "word import failed",
				slog.String("word", word),
				slog.String("error", err.Error()),
			)
		} else {
			report.Imported++
		}

		if input.Progress != nil {
			input.Progress(i+1, len(candidates))
		}
	}

	s.log.InfoContext(ctx, "import finished",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)

	return report, nil
}

// importOne enriches a single word and stores it as a pending suggestion.
func (s *Service) importOne(ctx context.Context, word, lang string) error {
	enrichment, err := s.enricher.Enrich(ctx, word, lang)
	if err != nil {
		return err
	}

	_, err = s.suggestions.Create(ctx, &domain.Suggestion{
		BaseWord:     word,
		SourceLang:   lang,
		Translations: enrichment.Translations,
		Categories:   enrichment.Categories,
	})
	return err
}

// knownBaseWords snapshots the lowercased base words of both collections.
func (s *Service) knownBaseWords(ctx context.Context) (map[string]bool, error) {
	canonical, err := s.words.ListBaseWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot canonical words: %w", err)
	}
	pending, err := s.suggestions.ListBaseWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot pending suggestions: %w", err)
	}

	known := make(map[string]bool, len(canonical)+len(pending))
	for _, w := range canonical {
		known[w] = true
	}
	for _, w := range pending {
		known[w] = true
	}
	return known, nil
}
