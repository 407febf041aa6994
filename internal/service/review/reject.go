package review

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Reject discards a pending suggestion. Rejection is permanent; the word
// can only re-enter through a fresh submission or import.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.suggestions.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "suggestion rejected", slog.String("id", id.String()))
	return nil
}
