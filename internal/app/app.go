package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/lexibase/curator/internal/adapter/postgres"
	"github.com/lexibase/curator/internal/adapter/postgres/listener"
	"github.com/lexibase/curator/internal/adapter/postgres/reference"
	"github.com/lexibase/curator/internal/adapter/postgres/suggestion"
	"github.com/lexibase/curator/internal/adapter/postgres/word"
	"github.com/lexibase/curator/internal/adapter/provider/classify"
	"github.com/lexibase/curator/internal/adapter/provider/translate"
	"github.com/lexibase/curator/internal/config"
	"github.com/lexibase/curator/internal/domain"
	"github.com/lexibase/curator/internal/service/enrichment"
	"github.com/lexibase/curator/internal/service/feed"
	"github.com/lexibase/curator/internal/service/review"
	"github.com/lexibase/curator/internal/transport/middleware"
	"github.com/lexibase/curator/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the services and the change feed, and serves the
// operator API until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Admin.Token == "" {
		logger.Warn("admin token is empty, operator API authentication is disabled")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	suggestions := suggestion.New(pool)
	words := word.New(pool)
	refs := reference.New(pool)
	txm := postgres.NewTxManager(pool)

	translator := translate.NewClient(cfg.Translate, logger)
	classifier := classify.New(cfg.Classify, logger)

	enricher := enrichment.NewService(logger, translator, classifier, refs)
	reviewSvc := review.NewService(logger, suggestions, words, enricher, translator, txm)

	changeListener := listener.New(pool, suggestions, cfg.Feed, logger)
	changeFeed := feed.New(changeListener.Changes(), logger)

	feedLog := logger.With("component", "feed")
	unsubscribe := changeFeed.Subscribe(feed.Handlers{
		OnAdded: func(s *domain.Suggestion) {
			feedLog.Debug("suggestion added", slog.String("id", s.ID.String()), slog.String("base_word", s.BaseWord))
		},
		OnModified: func(s *domain.Suggestion) {
			feedLog.Debug("suggestion modified", slog.String("id", s.ID.String()))
		},
		OnRemoved: func(key uuid.UUID) {
			feedLog.Debug("suggestion removed", slog.String("id", key.String()))
		},
	})
	defer unsubscribe()

	handler := buildHandler(cfg, logger, pool, reviewSvc, changeFeed)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return changeListener.Run(gctx)
	})

	g.Go(func() error {
		return changeFeed.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("application stopped")
	return nil
}

// buildHandler assembles the route tree. Health endpoints are public; the
// operator API under /api/v1 sits behind bearer-token auth.
func buildHandler(cfg *config.Config, logger *slog.Logger, db *pgxpool.Pool, reviewSvc *review.Service, changeFeed *feed.Feed) http.Handler {
	health := rest.NewHealthHandler(db, BuildVersion())

	api := http.NewServeMux()
	rest.NewSuggestionHandler(reviewSvc, changeFeed, logger).Register(api)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)
	mux.Handle("/api/v1/", middleware.Auth(cfg.Admin.Token)(api))

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
