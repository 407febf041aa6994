package translate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lexibase/curator/internal/config"
	"github.com/lexibase/curator/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.TranslateConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
	}, newTestLogger())
}

func TestClient_Translate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want %q", got, "test-key")
		}

		var req struct {
			Q      string `json:"q"`
			Source string `json:"source"`
			Target string `json:"target"`
			Format string `json:"format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Q != "mta" || req.Source != "ka" || req.Target != "en" || req.Format != "text" {
			t.Errorf("request = %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"mountain"}]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.Translate(context.Background(), "mta", "ka", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "mountain" {
		t.Errorf("Translate = %q, want %q", got, "mountain")
	}
}

func TestClient_Translate_EscapesAPIKey(t *testing.T) {
	t.Parallel()

	const key = "ab+cd/ef&gh=ij"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Query() decodes; a raw-concatenated key would come back mangled.
		if got := r.URL.Query().Get("key"); got != key {
			t.Errorf("key = %q, want %q", got, key)
		}
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"mountain"}]}}`))
	}))
	defer srv.Close()

	c := NewClient(config.TranslateConfig{APIKey: key, BaseURL: srv.URL}, newTestLogger())
	if _, err := c.Translate(context.Background(), "mta", "ka", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Translate_NoAPIKey(t *testing.T) {
	t.Parallel()

	c := NewClient(config.TranslateConfig{BaseURL: "http://unused"}, newTestLogger())
	_, err := c.Translate(context.Background(), "mta", "ka", "en")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestClient_Translate_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Translate(context.Background(), "mta", "ka", "en")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestClient_Translate_EmptyTranslations(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"translations":[]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Translate(context.Background(), "mta", "ka", "en")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}
