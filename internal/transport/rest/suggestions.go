package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/domain"
	"github.com/lexibase/curator/internal/service/review"
)

// maxImportBytes caps uploaded word lists.
const maxImportBytes = 1 << 20

type reviewService interface {
	List(ctx context.Context, f domain.SuggestionFilter) ([]*domain.Suggestion, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	Submit(ctx context.Context, input review.SubmitInput) (*domain.Suggestion, error)
	Edit(ctx context.Context, id uuid.UUID, input review.EditInput) (*domain.Suggestion, error)
	Promote(ctx context.Context, id uuid.UUID) (*domain.CanonicalWord, error)
	Reject(ctx context.Context, id uuid.UUID) error
	Translate(ctx context.Context, id uuid.UUID, targetLang string) (*domain.Suggestion, error)
	ImportWords(ctx context.Context, input review.ImportInput) (*review.ImportReport, error)
	ListWords(ctx context.Context, limit, offset int) ([]*domain.CanonicalWord, error)
}

// viewSnapshot is the reconciled change-feed view. Unfiltered listings are
// served from it so operators see the same ordering the feed maintains.
type viewSnapshot interface {
	Snapshot() []*domain.Suggestion
}

// SuggestionHandler serves the curation endpoints.
type SuggestionHandler struct {
	review reviewService
	view   viewSnapshot
	log    *slog.Logger
}

// NewSuggestionHandler creates a SuggestionHandler. view may be nil; all
// listings then go to the store.
func NewSuggestionHandler(review reviewService, view viewSnapshot, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		review: review,
		view:   view,
		log:    logger.With("handler", "suggestions"),
	}
}

// Register mounts all curation routes on the mux.
func (h *SuggestionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/suggestions", h.List)
	mux.HandleFunc("POST /api/v1/suggestions", h.Submit)
	mux.HandleFunc("GET /api/v1/suggestions/{id}", h.Get)
	mux.HandleFunc("PATCH /api/v1/suggestions/{id}", h.Edit)
	mux.HandleFunc("POST /api/v1/suggestions/{id}/promote", h.Promote)
	mux.HandleFunc("POST /api/v1/suggestions/{id}/reject", h.Reject)
	mux.HandleFunc("POST /api/v1/suggestions/{id}/translate", h.Translate)
	mux.HandleFunc("POST /api/v1/import", h.Import)
	mux.HandleFunc("GET /api/v1/words", h.Words)
}

// List returns pending suggestions.
// GET /api/v1/suggestions?source_lang=ka&base_word=mta&category=nature&limit=50&offset=0
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// No filters: serve the live reconciled view.
	if h.view != nil && len(q) == 0 {
		writeJSON(w, http.StatusOK, toSuggestionDTOs(h.view.Snapshot()))
		return
	}

	filter := domain.SuggestionFilter{
		SourceLang: queryPtr(q.Get("source_lang")),
		BaseWord:   queryPtr(q.Get("base_word")),
		Category:   queryPtr(q.Get("category")),
		Limit:      queryInt(q.Get("limit")),
		Offset:     queryInt(q.Get("offset")),
	}

	suggestions, err := h.review.List(r.Context(), filter)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSuggestionDTOs(suggestions))
}

// Get returns one pending suggestion.
// GET /api/v1/suggestions/{id}
func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s, err := h.review.Get(r.Context(), id)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSuggestionDTO(s))
}

type submitRequest struct {
	BaseWord     string                    `json:"base_word"`
	SourceLang   string                    `json:"source_lang"`
	Translations map[string]translationDTO `json:"translations"`
	Categories   []string                  `json:"categories"`
}

// Submit creates a pending suggestion.
// POST /api/v1/suggestions
func (h *SuggestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := h.review.Submit(r.Context(), review.SubmitInput{
		BaseWord:     req.BaseWord,
		SourceLang:   req.SourceLang,
		Translations: toDomainTranslations(req.Translations),
		Categories:   req.Categories,
	})
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSuggestionDTO(created))
}

type editRequest struct {
	BaseWord     *string                   `json:"base_word"`
	Translations map[string]translationDTO `json:"translations"`
	Categories   *[]string                 `json:"categories"`
}

// Edit applies a partial update.
// PATCH /api/v1/suggestions/{id}
func (h *SuggestionHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.review.Edit(r.Context(), id, review.EditInput{
		BaseWord:     req.BaseWord,
		Translations: toDomainTranslations(req.Translations),
		Categories:   req.Categories,
	})
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSuggestionDTO(updated))
}

// Promote moves a suggestion into the canonical dictionary.
// POST /api/v1/suggestions/{id}/promote
func (h *SuggestionHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	word, err := h.review.Promote(r.Context(), id)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toWordDTO(word))
}

// Reject discards a suggestion.
// POST /api/v1/suggestions/{id}/reject
func (h *SuggestionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.review.Reject(r.Context(), id); err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type translateRequest struct {
	TargetLang string `json:"target_lang"`
}

// Translate fills one missing translation.
// POST /api/v1/suggestions/{id}/translate
func (h *SuggestionHandler) Translate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.review.Translate(r.Context(), id, req.TargetLang)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSuggestionDTO(updated))
}

type importRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Import runs the batch word import. Accepts either a JSON body
// {"text": "...", "lang": "en"} or a multipart form with a "file" part and
// a "lang" field.
// POST /api/v1/import
func (h *SuggestionHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest

	switch {
	case strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"):
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file part")
			return
		}
		defer file.Close()

		text, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}
		req.Text = string(text)
		req.Lang = r.FormValue("lang")

	default:
		if err := json.NewDecoder(io.LimitReader(r.Body, maxImportBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	report, err := h.review.ImportWords(r.Context(), review.ImportInput{
		Text: req.Text,
		Lang: req.Lang,
	})
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Words lists canonical dictionary entries.
// GET /api/v1/words?limit=50&offset=0
func (h *SuggestionHandler) Words(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	words, err := h.review.ListWords(r.Context(), queryInt(q.Get("limit")), queryInt(q.Get("offset")))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toWordDTOs(words))
}

// pathID parses the {id} path value; on failure it writes a 400 and
// returns ok=false.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid suggestion id")
		return uuid.Nil, false
	}
	return id, true
}

func queryPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func queryInt(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}
