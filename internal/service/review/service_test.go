package review

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/domain"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type suggestionRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	ListFunc          func(ctx context.Context, f domain.SuggestionFilter) ([]*domain.Suggestion, error)
	ListBaseWordsFunc func(ctx context.Context) ([]string, error)
	CreateFunc        func(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error)
	UpdateFunc        func(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *suggestionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	if m.GetByIDFunc == nil {
		panic("suggestionRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *suggestionRepoMock) List(ctx context.Context, f domain.SuggestionFilter) ([]*domain.Suggestion, error) {
	if m.ListFunc == nil {
		panic("suggestionRepoMock.ListFunc is nil")
	}
	return m.ListFunc(ctx, f)
}

func (m *suggestionRepoMock) ListBaseWords(ctx context.Context) ([]string, error) {
	if m.ListBaseWordsFunc == nil {
		panic("suggestionRepoMock.ListBaseWordsFunc is nil")
	}
	return m.ListBaseWordsFunc(ctx)
}

func (m *suggestionRepoMock) Create(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error) {
	if m.CreateFunc == nil {
		panic("suggestionRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, s)
}

func (m *suggestionRepoMock) Update(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error) {
	if m.UpdateFunc == nil {
		panic("suggestionRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, s)
}

func (m *suggestionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("suggestionRepoMock.DeleteFunc is nil")
	}
	return m.DeleteFunc(ctx, id)
}

type wordRepoMock struct {
	CreateFunc        func(ctx context.Context, w *domain.CanonicalWord) (bool, error)
	GetBySlugFunc     func(ctx context.Context, slug string) (*domain.CanonicalWord, error)
	ListFunc          func(ctx context.Context, limit, offset int) ([]*domain.CanonicalWord, error)
	ListBaseWordsFunc func(ctx context.Context) ([]string, error)
}

func (m *wordRepoMock) Create(ctx context.Context, w *domain.CanonicalWord) (bool, error) {
	if m.CreateFunc == nil {
		panic("wordRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, w)
}

func (m *wordRepoMock) GetBySlug(ctx context.Context, slug string) (*domain.CanonicalWord, error) {
	if m.GetBySlugFunc == nil {
		panic("wordRepoMock.GetBySlugFunc is nil")
	}
	return m.GetBySlugFunc(ctx, slug)
}

func (m *wordRepoMock) List(ctx context.Context, limit, offset int) ([]*domain.CanonicalWord, error) {
	if m.ListFunc == nil {
		panic("wordRepoMock.ListFunc is nil")
	}
	return m.ListFunc(ctx, limit, offset)
}

func (m *wordRepoMock) ListBaseWords(ctx context.Context) ([]string, error) {
	if m.ListBaseWordsFunc == nil {
		panic("wordRepoMock.ListBaseWordsFunc is nil")
	}
	return m.ListBaseWordsFunc(ctx)
}

type enricherMock struct {
	EnrichFunc func(ctx context.Context, word, sourceLang string) (*domain.Enrichment, error)
	calls      []string
}

func (m *enricherMock) Enrich(ctx context.Context, word, sourceLang string) (*domain.Enrichment, error) {
	m.calls = append(m.calls, word)
	if m.EnrichFunc == nil {
		panic("enricherMock.EnrichFunc is nil")
	}
	return m.EnrichFunc(ctx, word, sourceLang)
}

type translatorMock struct {
	TranslateFunc func(ctx context.Context, text, source, target string) (string, error)
}

func (m *translatorMock) Translate(ctx context.Context, text, source, target string) (string, error) {
	if m.TranslateFunc == nil {
		panic("translatorMock.TranslateFunc is nil")
	}
	return m.TranslateFunc(ctx, text, source, target)
}

// txManagerMock runs the callback directly; there is no transaction.
type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(sr *suggestionRepoMock, wr *wordRepoMock, en *enricherMock, tr *translatorMock) *Service {
	return &Service{
		suggestions: sr,
		words:       wr,
		enricher:    en,
		translator:  tr,
		tx:          txManagerMock{},
		log:         testLogger(),
	}
}

// plainEnrichment builds a complete enrichment for a word.
func plainEnrichment(word string) *domain.Enrichment {
	return &domain.Enrichment{
		Categories: []string{"everyday"},
		Translations: map[string]domain.Translation{
			"en": {Word: domain.Capitalize(word), Difficulty: 2},
			"ka": {Word: domain.Capitalize(word), Difficulty: 3},
		},
	}
}

// ---------------------------------------------------------------------------
// In-memory fake store shared by the end-to-end style tests
// ---------------------------------------------------------------------------

type fakeStore struct {
	mu          sync.Mutex
	suggestions map[uuid.UUID]*domain.Suggestion
	words       map[string]*domain.CanonicalWord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		suggestions: make(map[uuid.UUID]*domain.Suggestion),
		words:       make(map[string]*domain.CanonicalWord),
	}
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.suggestions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Clone(), nil
}

func (f *fakeStore) List(ctx context.Context, _ domain.SuggestionFilter) ([]*domain.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Suggestion{}
	for _, s := range f.suggestions {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (f *fakeStore) ListBaseWords(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, s := range f.suggestions {
		out = append(out, domain.NormalizeWord(s.BaseWord))
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := s.Clone()
	created.ID = uuid.New()
	f.suggestions[created.ID] = created
	return created.Clone(), nil
}

func (f *fakeStore) Update(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.suggestions[s.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	f.suggestions[s.ID] = s.Clone()
	return s.Clone(), nil
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.suggestions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.suggestions, id)
	return nil
}

type fakeWordStore struct {
	store *fakeStore
}

func (f fakeWordStore) Create(ctx context.Context, w *domain.CanonicalWord) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.words[w.Slug]; ok {
		return false, nil
	}
	cp := *w
	f.store.words[w.Slug] = &cp
	return true, nil
}

func (f fakeWordStore) GetBySlug(ctx context.Context, slug string) (*domain.CanonicalWord, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	w, ok := f.store.words[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (f fakeWordStore) List(ctx context.Context, limit, offset int) ([]*domain.CanonicalWord, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := []*domain.CanonicalWord{}
	for _, w := range f.store.words {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (f fakeWordStore) ListBaseWords(ctx context.Context) ([]string, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []string
	for _, w := range f.store.words {
		out = append(out, domain.NormalizeWord(w.BaseWord))
	}
	return out, nil
}

func newFakeService(store *fakeStore, en *enricherMock) *Service {
	return &Service{
		suggestions: store,
		words:       fakeWordStore{store: store},
		enricher:    en,
		translator: &translatorMock{
			TranslateFunc: func(ctx context.Context, text, source, target string) (string, error) {
				return text + "-" + target, nil
			},
		},
		tx:  txManagerMock{},
		log: testLogger(),
	}
}

func okEnricher() *enricherMock {
	return &enricherMock{
		EnrichFunc: func(ctx context.Context, word, sourceLang string) (*domain.Enrichment, error) {
			return plainEnrichment(word), nil
		},
	}
}

// ---------------------------------------------------------------------------
// Submit / Reject
// ---------------------------------------------------------------------------

func TestSubmit_NormalizesBaseWord(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newFakeService(store, okEnricher())

	got, err := svc.Submit(context.Background(), SubmitInput{
		BaseWord:   "  Mta  ",
		SourceLang: "ka",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.BaseWord != "mta" {
		t.Errorf("BaseWord = %q, want normalized %q", got.BaseWord, "mta")
	}
	if got.ID == uuid.Nil {
		t.Error("Submit did not assign an ID")
	}
}

func TestSubmit_Validation(t *testing.T) {
	t.Parallel()

	svc := newFakeService(newFakeStore(), okEnricher())

	_, err := svc.Submit(context.Background(), SubmitInput{BaseWord: "   ", SourceLang: ""})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit error = %v, want validation error", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("field errors = %d, want 2 (base_word, source_lang)", len(verr.Errors))
	}
}

func TestReject_DeletesPendingRow(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newFakeService(store, okEnricher())

	created, err := svc.Submit(context.Background(), SubmitInput{BaseWord: "mta", SourceLang: "ka"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := svc.Reject(context.Background(), created.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID); err == nil {
		t.Error("suggestion still present after rejection")
	}
}
