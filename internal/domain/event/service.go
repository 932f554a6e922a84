package event

import (
	"context"
	"log/slog"
	"time"
)

// Service journals events to the store and logs them. Publish never
// returns an error: a failed append is logged and dropped, and the
// state change that produced the event stands. Consumers needing
// strict consistency reconcile against the slot board instead.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates an event service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Publish records the event.
func (s *Service) Publish(ctx context.Context, evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	if err := s.repo.Append(ctx, &evt); err != nil {
		if s.logger != nil {
			s.logger.Warn("event publish failed", "type", evt.Type, "entity_id", evt.EntityID, "error", err)
		}
		return
	}

	if s.logger != nil {
		s.logger.Info("event published", "type", evt.Type, "entity_id", evt.EntityID)
	}
}

// Recent lists journaled events with filtering.
func (s *Service) Recent(ctx context.Context, opts ListOptions) ([]Event, error) {
	return s.repo.List(ctx, opts)
}
