package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"policyAdvisor/domain"

	"gorm.io/gorm"
)

type PromotionRepository struct {
	DB *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{
		DB: db,
	}
}

func (r *PromotionRepository) Create(ctx context.Context, promotion *domain.Promotion) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(promotion).Error; err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	return nil
}

func (r *PromotionRepository) FindByID(ctx context.Context, id uint) (domain.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return domain.Promotion{}, fmt.Errorf("context error: %w", err)
	}

	var promotion domain.Promotion
	err := r.DB.WithContext(ctx).First(&promotion, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Promotion{}, domain.ErrPromotionNotFound
		}
		return domain.Promotion{}, fmt.Errorf("failed to find promotion: %w", err)
	}

	return promotion, nil
}

func (r *PromotionRepository) FindAll(ctx context.Context) ([]domain.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var promotions []domain.Promotion
	err := r.DB.WithContext(ctx).Order("priority DESC, id ASC").Find(&promotions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find promotions: %w", err)
	}

	return promotions, nil
}

// FindActive returns promotions whose active flag is set and whose validity
// window contains asOf.
func (r *PromotionRepository) FindActive(ctx context.Context, asOf time.Time) ([]domain.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var promotions []domain.Promotion
	err := r.DB.WithContext(ctx).
		Where("active = TRUE AND start_date <= ? AND end_date >= ?", asOf, asOf).
		Order("priority DESC, id ASC").
		Find(&promotions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active promotions: %w", err)
	}

	return promotions, nil
}

func (r *PromotionRepository) Update(ctx context.Context, promotion *domain.Promotion) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"policy_id":  promotion.PolicyID,
		"name":       promotion.Name,
		"tag":        promotion.Tag,
		"priority":   promotion.Priority,
		"start_date": promotion.StartDate,
		"end_date":   promotion.EndDate,
		"active":     promotion.Active,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Promotion{}).Where("id = ?", promotion.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update promotion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPromotionNotFound
	}

	return nil
}

func (r *PromotionRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Promotion{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete promotion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPromotionNotFound
	}

	return nil
}
