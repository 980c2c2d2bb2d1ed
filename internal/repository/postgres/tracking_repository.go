package postgres

import (
	"context"
	"fmt"

	"policyAdvisor/domain"

	"gorm.io/gorm"
)

type TrackingRepository struct {
	DB *gorm.DB
}

func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{DB: db}
}

func (r *TrackingRepository) SaveEvent(ctx context.Context, event domain.TrackingEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save tracking event: %w", err)
	}

	return nil
}

func (r *TrackingRepository) FindRecent(ctx context.Context, limit int) ([]domain.TrackingEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	var events []domain.TrackingEvent
	err := r.DB.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tracking events: %w", err)
	}

	return events, nil
}
