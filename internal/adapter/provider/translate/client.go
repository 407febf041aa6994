// Package translate fetches translations from the Google Cloud Translation
// v2 REST API.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lexibase/curator/internal/config"
	"github.com/lexibase/curator/internal/domain"
)

// Client calls the translation API. A zero API key makes every call return
// domain.ErrUnavailable; callers are expected to degrade gracefully.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.TranslateConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "translate"),
	}
}

// request and response mirror the v2 wire format.
type apiRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type apiResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Translate translates text from source to target language. Returns
// domain.ErrUnavailable when the service is not configured or unreachable.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("translate: no API key configured: %w", domain.ErrUnavailable)
	}

	body, err := json.Marshal(apiRequest{Q: text, Source: source, Target: target, Format: "text"})
	if err != nil {
		return "", fmt.Errorf("translate: encode request: %w", err)
	}

	query := url.Values{"key": {c.apiKey}}
	reqURL := c.baseURL + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("translate: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "translate request",
		slog.String("source", source),
		slog.String("target", target),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "translate request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("translate: request failed: %w", domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.WarnContext(ctx, "translate error response",
			slog.Int("status", resp.StatusCode),
		)
		return "", fmt.Errorf("translate: status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("translate: decode json: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("translate: api error %d: %s: %w", parsed.Error.Code, parsed.Error.Message, domain.ErrUnavailable)
	}
	if len(parsed.Data.Translations) == 0 {
		return "", fmt.Errorf("translate: empty response: %w", domain.ErrUnavailable)
	}

	return parsed.Data.Translations[0].TranslatedText, nil
}
