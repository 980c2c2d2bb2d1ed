package policy

import (
	"context"
	"errors"
	"fmt"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"
)

type PolicyRepository interface {
	Create(ctx context.Context, policy *domain.Policy) error
	FindByID(ctx context.Context, id uint64) (domain.Policy, error)
	FindAll(ctx context.Context) ([]domain.Policy, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Policy, error)
	Update(ctx context.Context, policy *domain.Policy) error
	Delete(ctx context.Context, id uint64) error
	UpsertBatch(ctx context.Context, policies []domain.Policy) error
}

type Service struct {
	policyRepo PolicyRepository
}

func NewService(policyRepo PolicyRepository) *Service {
	return &Service{
		policyRepo: policyRepo,
	}
}

func (s *Service) GetAllPolicies(ctx context.Context) ([]domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all policies")
		return nil, fmt.Errorf("context error: %w", err)
	}

	policies, err := s.policyRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all policies", err)
		return nil, err
	}

	return policies, nil
}

// SearchPolicies matches the query against name, type, description and
// keywords; an empty query returns the catalog head.
func (s *Service) SearchPolicies(ctx context.Context, query string, limit int) ([]domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.policyRepo.Search(ctx, query, limit)
}

func (s *Service) GetPolicyByID(ctx context.Context, id uint64) (domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		return domain.Policy{}, fmt.Errorf("context error: %w", err)
	}
	if id == 0 {
		logger.Error("invalid policy id")
		return domain.Policy{}, errors.New("invalid policy id")
	}

	return s.policyRepo.FindByID(ctx, id)
}

func (s *Service) CreatePolicy(ctx context.Context, policy *domain.Policy) (*domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if policy.PolicyID == 0 {
		logger.Error("Invalid policy data: policy id is required")
		return nil, errors.New("policy id is required")
	}
	if policy.PolicyName == "" {
		logger.Error("Invalid policy data: policy name is required")
		return nil, errors.New("policy name is required")
	}
	if policy.PolicyType == "" {
		logger.Error("Invalid policy data: policy type is required")
		return nil, errors.New("policy type is required")
	}

	if err := s.policyRepo.Create(ctx, policy); err != nil {
		logger.Error("Failed to create policy", err)
		return nil, err
	}

	return policy, nil
}

func (s *Service) UpdatePolicy(ctx context.Context, policy *domain.Policy) (*domain.Policy, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if policy.PolicyID == 0 {
		return nil, errors.New("policy id is required")
	}
	if policy.PolicyName == "" {
		return nil, errors.New("policy name is required")
	}

	if err := s.policyRepo.Update(ctx, policy); err != nil {
		logger.Error("Failed to update policy", err)
		return nil, err
	}

	return policy, nil
}

func (s *Service) DeletePolicy(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if id == 0 {
		logger.Error("invalid policy id")
		return errors.New("invalid policy id")
	}

	if err := s.policyRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete policy", err)
		return err
	}

	return nil
}
