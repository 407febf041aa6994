// Package feed reconciles the stream of suggestion change events into an
// ordered in-memory view and fans the normalized events out to subscribers.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lexibase/curator/internal/domain"
)

// Handlers receives the normalized change events for one subscriber. Nil
// handlers are skipped. Removals carry only the key; the document is gone
// by the time the event arrives.
type Handlers struct {
	OnAdded    func(s *domain.Suggestion)
	OnModified func(s *domain.Suggestion)
	OnRemoved  func(key uuid.UUID)
}

// Feed consumes change events from a single source channel, keeps the
// reconciled view, and notifies subscribers. One goroutine (Run) applies
// events; the mutex only guards against Subscribe and Snapshot callers.
type Feed struct {
	events <-chan domain.Change
	log    *slog.Logger

	mu       sync.Mutex
	view     *View
	handlers map[int]Handlers
	nextID   int
}

// New creates a Feed reading from events. The feed takes ownership of the
// channel: Run returns when it is closed.
func New(events <-chan domain.Change, logger *slog.Logger) *Feed {
	return &Feed{
		events:   events,
		view:     NewView(),
		handlers: make(map[int]Handlers),
		log:      logger.With("service", "feed"),
	}
}

// Run applies events until the channel closes or ctx is cancelled.
func (f *Feed) Run(ctx context.Context) error {
	for {
		select {
		case change, ok := <-f.events:
			if !ok {
				f.log.InfoContext(ctx, "change feed source closed")
				return nil
			}
			f.apply(ctx, change)
		case <-ctx.Done():
			return nil
		}
	}
}

// Subscribe registers handlers and returns an idempotent unsubscribe
// function. The subscriber first receives the current view as one OnAdded
// call per suggestion, in insertion order, then live events; no event is
// lost or delivered twice in between.
func (f *Feed) Subscribe(h Handlers) func() {
	f.mu.Lock()
	for _, s := range f.view.Snapshot() {
		if h.OnAdded != nil {
			h.OnAdded(s)
		}
	}
	id := f.nextID
	f.nextID++
	f.handlers[id] = h
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.handlers, id)
			f.mu.Unlock()
		})
	}
}

// Snapshot returns the current reconciled view in insertion order.
func (f *Feed) Snapshot() []*domain.Suggestion {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view.Snapshot()
}

// Len returns the current view size.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view.Len()
}

// apply folds one event into the view and dispatches the effective change.
// Handlers run under the feed lock so each subscriber observes snapshot and
// events in a single consistent order.
func (f *Feed) apply(ctx context.Context, change domain.Change) {
	f.mu.Lock()
	defer f.mu.Unlock()

	effective, ok := f.view.Apply(change)
	if !ok {
		return
	}

	f.log.DebugContext(ctx, "suggestion change",
		slog.String("type", effective.Type.String()),
		slog.String("key", effective.Key.String()),
		slog.Int("view_size", f.view.Len()),
	)

	for _, h := range f.handlers {
		switch effective.Type {
		case domain.ChangeAdded:
			if h.OnAdded != nil {
				h.OnAdded(effective.Suggestion.Clone())
			}
		case domain.ChangeModified:
			if h.OnModified != nil {
				h.OnModified(effective.Suggestion.Clone())
			}
		case domain.ChangeRemoved:
			if h.OnRemoved != nil {
				h.OnRemoved(effective.Key)
			}
		}
	}
}
