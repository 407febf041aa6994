// Package listener turns PostgreSQL LISTEN/NOTIFY traffic from the
// suggestions_notify trigger into typed change events. This is the store
// side of the reconciliation feed: every insert, update, and delete on the
// pending collection, by this process or any other session, surfaces here.
package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lexibase/curator/internal/config"
	"github.com/lexibase/curator/internal/domain"
)

type suggestionReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	All(ctx context.Context) ([]*domain.Suggestion, error)
}

// Listener converts suggestion-table notifications into domain.Change
// events. It holds a dedicated connection for the duration of Run.
type Listener struct {
	pool        *pgxpool.Pool
	suggestions suggestionReader
	channel     string
	events      chan domain.Change
	log         *slog.Logger
}

// New creates a Listener. Events are delivered on Changes.
func New(pool *pgxpool.Pool, suggestions suggestionReader, cfg config.FeedConfig, logger *slog.Logger) *Listener {
	return &Listener{
		pool:        pool,
		suggestions: suggestions,
		channel:     cfg.Channel,
		events:      make(chan domain.Change, cfg.BufferSize),
		log:         logger.With("adapter", "listener"),
	}
}

// Changes returns the event channel. It is closed when Run returns.
func (l *Listener) Changes() <-chan domain.Change {
	return l.events
}

// Run listens for notifications until ctx is cancelled. It first emits one
// Added event per existing suggestion (the initial snapshot), then streams
// incremental events. LISTEN starts before the snapshot is read, so a write
// racing the snapshot can surface twice; the feed's per-key idempotency
// absorbs that.
func (l *Listener) Run(ctx context.Context) error {
	defer close(l.events)

	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+l.channel); err != nil {
		return fmt.Errorf("listen on %s: %w", l.channel, err)
	}

	snapshot, err := l.suggestions.All(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	for _, s := range snapshot {
		if !l.emit(ctx, domain.Change{Type: domain.ChangeAdded, Key: s.ID, Suggestion: s}) {
			return nil
		}
	}

	l.log.InfoContext(ctx, "change feed started",
		slog.String("channel", l.channel),
		slog.Int("snapshot_size", len(snapshot)),
	)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}

		change, ok := l.resolve(ctx, notification.Payload)
		if !ok {
			continue
		}
		if !l.emit(ctx, change) {
			return nil
		}
	}
}

// notifyPayload mirrors the JSON built by the suggestions_notify trigger.
type notifyPayload struct {
	Op string    `json:"op"`
	ID uuid.UUID `json:"id"`
}

// resolve parses one notification payload and re-reads the affected row.
// Before-state is unavailable from the store, so updates of rows that have
// since been deleted degrade to Removed events.
func (l *Listener) resolve(ctx context.Context, payload string) (domain.Change, bool) {
	var p notifyPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil || p.ID == uuid.Nil {
		l.log.WarnContext(ctx, "unparseable notification", slog.String("payload", payload))
		return domain.Change{}, false
	}

	switch p.Op {
	case "DELETE":
		return domain.Change{Type: domain.ChangeRemoved, Key: p.ID}, true
	case "INSERT", "UPDATE":
		s, err := l.suggestions.GetByID(ctx, p.ID)
		if errors.Is(err, domain.ErrNotFound) {
			// Row vanished between notify and read; the DELETE
			// notification will follow (or already has).
			return domain.Change{}, false
		}
		if err != nil {
			l.log.ErrorContext(ctx, "read changed suggestion",
				slog.String("id", p.ID.String()),
				slog.String("error", err.Error()),
			)
			return domain.Change{}, false
		}

		t := domain.ChangeAdded
		if p.Op == "UPDATE" {
			t = domain.ChangeModified
		}
		return domain.Change{Type: t, Key: p.ID, Suggestion: s}, true
	default:
		l.log.WarnContext(ctx, "unknown notification op", slog.String("op", p.Op))
		return domain.Change{}, false
	}
}

// emit delivers a change, giving up when ctx is cancelled.
func (l *Listener) emit(ctx context.Context, change domain.Change) bool {
	select {
	case l.events <- change:
		return true
	case <-ctx.Done():
		return false
	}
}
