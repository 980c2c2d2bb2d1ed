package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"policyAdvisor/domain"

	"gorm.io/gorm"
)

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{
		DB: db,
	}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	return nil
}

func (r *InteractionRepository) CreateBatch(ctx context.Context, interactions []domain.Interaction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(interactions) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Create(&interactions).Error; err != nil {
		return fmt.Errorf("failed to create interactions: %w", err)
	}

	return nil
}

// LatestByCustomer returns the most recent interaction row for a customer,
// or nil when the customer has no history. Absence is not an error: the
// caller falls back to the zero interaction context.
func (r *InteractionRepository) LatestByCustomer(ctx context.Context, customerID uint) (*domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interaction domain.Interaction
	err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		First(&interaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}

	return &interaction, nil
}

func (r *InteractionRepository) FindAll(ctx context.Context) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interactions []domain.Interaction
	err := r.DB.WithContext(ctx).Order("interaction_id ASC").Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interactions: %w", err)
	}

	return interactions, nil
}

// FindSince feeds the dashboard's trailing-window aggregations.
func (r *InteractionRepository) FindSince(ctx context.Context, since time.Time) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interactions []domain.Interaction
	err := r.DB.WithContext(ctx).
		Where("created_at > ?", since).
		Order("created_at ASC").
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interactions since %s: %w", since, err)
	}

	return interactions, nil
}

func (r *InteractionRepository) FindRecent(ctx context.Context, limit int) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 5
	}

	var interactions []domain.Interaction
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent interactions: %w", err)
	}

	return interactions, nil
}
