//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/lexibase/curator/internal/adapter/postgres"
	"github.com/lexibase/curator/internal/adapter/postgres/reference"
	"github.com/lexibase/curator/internal/adapter/postgres/suggestion"
	"github.com/lexibase/curator/internal/adapter/postgres/testhelper"
	"github.com/lexibase/curator/internal/adapter/postgres/word"
	"github.com/lexibase/curator/internal/config"
	"github.com/lexibase/curator/internal/domain"
	"github.com/lexibase/curator/internal/provider"
	"github.com/lexibase/curator/internal/service/enrichment"
	"github.com/lexibase/curator/internal/service/review"
	"github.com/lexibase/curator/internal/transport/middleware"
	"github.com/lexibase/curator/internal/transport/rest"
)

// adminToken is the bearer token the test server is configured with.
const adminToken = "e2e-admin-token"

// testServer wraps the full HTTP stack for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// stubTranslator produces deterministic fake translations so tests can
// assert exact values without calling the real provider.
type stubTranslator struct{}

func (stubTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	return "xl-" + target + "-" + text, nil
}

// stubClassifier labels every word "nature" with difficulty 2 everywhere.
type stubClassifier struct{}

func (stubClassifier) Classify(_ context.Context, _, _ string, _ []domain.Category, languages []domain.Language) (*provider.Classification, error) {
	scores := make(map[string]int, len(languages))
	for _, l := range languages {
		scores[l.Code] = 2
	}
	return &provider.Classification{
		Categories:       []string{"nature"},
		DifficultyScores: scores,
	}, nil
}

// setupTestServer bootstraps the application stack backed by a real
// PostgreSQL container (shared via testhelper). External providers are
// stubbed; everything else is the production wiring.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	suggestions := suggestion.New(pool)
	words := word.New(pool)
	refs := reference.New(pool)

	enricher := enrichment.NewService(logger, stubTranslator{}, stubClassifier{}, refs)
	reviewSvc := review.NewService(logger, suggestions, words, enricher, stubTranslator{}, txm)

	api := http.NewServeMux()
	rest.NewSuggestionHandler(reviewSvc, nil, logger).Register(api)

	health := rest.NewHealthHandler(pool, "test-version")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)
	mux.Handle("/api/v1/", middleware.Auth(adminToken)(api))

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		}),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// do sends an authenticated JSON request and returns status plus raw body.
func (ts *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	return ts.doWithToken(t, method, path, body, adminToken)
}

// doWithToken is do with an explicit (possibly empty) bearer token.
func (ts *testServer) doWithToken(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// decode unmarshals raw JSON into v, failing the test on error.
func decode(t *testing.T, raw []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), "body: %s", raw)
}

// suggestionBody mirrors the suggestion JSON shape returned by the API.
type suggestionBody struct {
	ID           string                     `json:"id"`
	BaseWord     string                     `json:"base_word"`
	SourceLang   string                     `json:"source_lang"`
	Translations map[string]translationBody `json:"translations"`
	Categories   []string                   `json:"categories"`
}

type translationBody struct {
	Word       string `json:"word"`
	Difficulty int    `json:"difficulty"`
}

type wordBody struct {
	Slug         string                     `json:"slug"`
	BaseWord     string                     `json:"base_word"`
	Translations map[string]translationBody `json:"translations"`
	Categories   []string                   `json:"categories"`
}

// submitSuggestion creates a pending suggestion through the API and returns
// its decoded body.
func submitSuggestion(t *testing.T, ts *testServer, payload map[string]any) suggestionBody {
	t.Helper()

	status, raw := ts.do(t, http.MethodPost, "/api/v1/suggestions", payload)
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)

	var created suggestionBody
	decode(t, raw, &created)
	require.NotEmpty(t, created.ID)
	return created
}

// findByBaseWord lists suggestions filtered by base word and returns the
// single match.
func findByBaseWord(t *testing.T, ts *testServer, baseWord string) suggestionBody {
	t.Helper()

	status, raw := ts.do(t, http.MethodGet, "/api/v1/suggestions?base_word="+baseWord, nil)
	require.Equal(t, http.StatusOK, status, "body: %s", raw)

	var list []suggestionBody
	decode(t, raw, &list)
	require.Len(t, list, 1, "expected exactly one suggestion for %q", baseWord)
	return list[0]
}
