package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"policyAdvisor/domain"
)

type TrackingRepository interface {
	SaveEvent(ctx context.Context, event domain.TrackingEvent) error
	FindRecent(ctx context.Context, limit int) ([]domain.TrackingEvent, error)
}

type Service struct {
	trackingRepo TrackingRepository
}

func NewService(trackingRepo TrackingRepository) *Service {
	return &Service{trackingRepo: trackingRepo}
}

// Track persists one client event. Unknown extra fields stay inside the
// jsonb payload; the fixed-shape columns are the only ones the rest of the
// system reads.
func (s *Service) Track(ctx context.Context, event domain.TrackingEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if event.EventType == "" {
		return errors.New("event_type is required")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	return s.trackingRepo.SaveEvent(ctx, event)
}

func (s *Service) RecentEvents(ctx context.Context, limit int) ([]domain.TrackingEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.trackingRepo.FindRecent(ctx, limit)
}
