package postgres

import (
	"context"
	"errors"
	"fmt"

	"policyAdvisor/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PolicyRepository struct {
	DB *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{
		DB: db,
	}
}

func (r *PolicyRepository) Create(ctx context.Context, policy *domain.Policy) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(policy).Error; err != nil {
		return fmt.Errorf("failed to create policy: %w", err)
	}

	return nil
}

func (r *PolicyRepository) FindByID(ctx context.Context, id uint64) (domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		return domain.Policy{}, fmt.Errorf("context error: %w", err)
	}

	var policy domain.Policy

	err := r.DB.WithContext(ctx).First(&policy, "policy_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Policy{}, domain.ErrPolicyNotFound
		}
		return domain.Policy{}, fmt.Errorf("failed to find policy: %w", err)
	}

	return policy, nil
}

// FindAll returns the catalog in its natural order. Policy id ordering is
// what keeps candidate expansion and tie-breaking reproducible.
func (r *PolicyRepository) FindAll(ctx context.Context) ([]domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var policies []domain.Policy
	err := r.DB.WithContext(ctx).Order("policy_id ASC").Find(&policies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find policies: %w", err)
	}

	return policies, nil
}

// Search matches the query against name, type, description and keywords.
func (r *PolicyRepository) Search(ctx context.Context, query string, limit int) ([]domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 20
	}

	var policies []domain.Policy
	q := r.DB.WithContext(ctx).Order("policy_id ASC").Limit(limit)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"policy_name ILIKE ? OR policy_type ILIKE ? OR description ILIKE ? OR keywords ILIKE ?",
			like, like, like, like,
		)
	}

	if err := q.Find(&policies).Error; err != nil {
		return nil, fmt.Errorf("failed to search policies: %w", err)
	}

	return policies, nil
}

func (r *PolicyRepository) Update(ctx context.Context, policy *domain.Policy) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"policy_name":           policy.PolicyName,
		"policy_type":           policy.PolicyType,
		"description":           policy.Description,
		"keywords":              policy.Keywords,
		"sum_assured":           policy.SumAssured,
		"premium_amount":        policy.PremiumAmount,
		"policy_duration_years": policy.PolicyDurationYears,
		"risk_category":         policy.RiskCategory,
		"customer_target_group": policy.CustomerTargetGroup,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Policy{}).Where("policy_id = ?", policy.PolicyID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update policy: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPolicyNotFound
	}

	return nil
}

func (r *PolicyRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Policy{}, "policy_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete policy: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPolicyNotFound
	}

	return nil
}

// UpsertBatch writes imported catalog rows, replacing existing policy ids.
func (r *PolicyRepository) UpsertBatch(ctx context.Context, policies []domain.Policy) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(policies) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "policy_id"}},
			UpdateAll: true,
		},
	).Create(&policies).Error; err != nil {
		return fmt.Errorf("failed to upsert policies: %w", err)
	}

	return nil
}
