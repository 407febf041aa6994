// Command import runs the batch word import pipeline from the command line.
// It reads a newline-separated word list from a file, enriches each new word
// through the classification and translation providers, and creates pending
// suggestions for operator review.
//
// Flags:
//
//	--file  path to the word list (one word per line)
//	--lang  source language code of the words
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lexibase/curator/internal/adapter/postgres"
	"github.com/lexibase/curator/internal/adapter/postgres/reference"
	"github.com/lexibase/curator/internal/adapter/postgres/suggestion"
	"github.com/lexibase/curator/internal/adapter/postgres/word"
	"github.com/lexibase/curator/internal/adapter/provider/classify"
	"github.com/lexibase/curator/internal/adapter/provider/translate"
	"github.com/lexibase/curator/internal/app"
	"github.com/lexibase/curator/internal/config"
	"github.com/lexibase/curator/internal/service/enrichment"
	"github.com/lexibase/curator/internal/service/review"
)

func main() {
	filePath := flag.String("file", "", "path to the word list (one word per line)")
	lang := flag.String("lang", "", "source language code of the words")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("--file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	text, err := os.ReadFile(*filePath)
	if err != nil {
		logger.Error("read word list", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Provider calls dominate the runtime; one word can take seconds.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	suggestions := suggestion.New(pool)
	words := word.New(pool)
	refs := reference.New(pool)
	txm := postgres.NewTxManager(pool)

	translator := translate.NewClient(cfg.Translate, logger)
	classifier := classify.New(cfg.Classify, logger)
	enricher := enrichment.NewService(logger, translator, classifier, refs)
	reviewSvc := review.NewService(logger, suggestions, words, enricher, translator, txm)

	report, err := reviewSvc.ImportWords(ctx, review.ImportInput{
		Text: string(text),
		Lang: *lang,
		Progress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rprocessed %d/%d", done, total)
		},
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import finished",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
}
