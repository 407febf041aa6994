// Command promote reviews a single pending suggestion from the command
// line: it promotes the suggestion into the canonical dictionary, or with
// --reject discards it.
//
// Flags:
//
//	--id      suggestion UUID (required)
//	--reject  discard the suggestion instead of promoting it
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

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
	idArg := flag.String("id", "", "suggestion UUID")
	reject := flag.Bool("reject", false, "discard the suggestion instead of promoting it")
	flag.Parse()

	id, err := uuid.Parse(*idArg)
	if err != nil {
		log.Fatalf("--id must be a valid UUID: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
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

	if *reject {
		if err := reviewSvc.Reject(ctx, id); err != nil {
			logger.Error("reject failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("suggestion rejected", slog.String("id", id.String()))
		return
	}

	promoted, err := reviewSvc.Promote(ctx, id)
	if err != nil {
		logger.Error("promote failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("suggestion promoted",
		slog.String("id", id.String()),
		slog.String("slug", promoted.Slug),
	)
}
