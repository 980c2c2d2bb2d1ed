package promotion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"
)

type PromotionRepository interface {
	Create(ctx context.Context, promotion *domain.Promotion) error
	FindByID(ctx context.Context, id uint) (domain.Promotion, error)
	FindAll(ctx context.Context) ([]domain.Promotion, error)
	FindActive(ctx context.Context, asOf time.Time) ([]domain.Promotion, error)
	Update(ctx context.Context, promotion *domain.Promotion) error
	Delete(ctx context.Context, id uint) error
}

type PolicyRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Policy, error)
}

type Service struct {
	promoRepo  PromotionRepository
	policyRepo PolicyRepository
}

func NewService(promoRepo PromotionRepository, policyRepo PolicyRepository) *Service {
	return &Service{
		promoRepo:  promoRepo,
		policyRepo: policyRepo,
	}
}

// ActiveAsOf returns the promotions applying at the given instant, keyed by
// policy id. The validity window and active flag are enforced here, at the
// boundary, so callers never re-filter. An empty map is a normal state.
// When several promotions cover the same policy the highest priority wins.
func (s *Service) ActiveAsOf(ctx context.Context, asOf time.Time) (map[uint64]domain.ActivePromotion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	rows, err := s.promoRepo.FindActive(ctx, asOf)
	if err != nil {
		return nil, err
	}

	active := make(map[uint64]domain.ActivePromotion, len(rows))
	for _, p := range rows {
		if !p.CurrentlyPromoted(asOf) {
			continue
		}
		if cur, ok := active[p.PolicyID]; ok && cur.Priority >= p.Priority {
			continue
		}
		active[p.PolicyID] = domain.ActivePromotion{
			Priority: p.Priority,
			Tag:      p.Tag,
		}
	}

	return active, nil
}

func (s *Service) GetAllPromotions(ctx context.Context) ([]domain.Promotion, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all promotions")
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.promoRepo.FindAll(ctx)
}

func (s *Service) GetPromotionByID(ctx context.Context, id uint) (domain.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return domain.Promotion{}, fmt.Errorf("context error: %w", err)
	}

	return s.promoRepo.FindByID(ctx, id)
}

func (s *Service) CreatePromotion(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate(promotion); err != nil {
		logger.Error("Invalid promotion data", err)
		return nil, err
	}

	// promotions must reference a catalog policy
	if _, err := s.policyRepo.FindByID(ctx, promotion.PolicyID); err != nil {
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, err
	}

	if err := s.promoRepo.Create(ctx, promotion); err != nil {
		logger.Error("Failed to create promotion", err)
		return nil, err
	}

	return promotion, nil
}

func (s *Service) UpdatePromotion(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if promotion.ID == 0 {
		return nil, errors.New("promotion id is required")
	}

	if err := s.validate(promotion); err != nil {
		logger.Error("Invalid promotion data", err)
		return nil, err
	}

	if err := s.promoRepo.Update(ctx, promotion); err != nil {
		logger.Error("Failed to update promotion", err)
		return nil, err
	}

	return promotion, nil
}

func (s *Service) DeletePromotion(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if id == 0 {
		return errors.New("invalid promotion id")
	}

	return s.promoRepo.Delete(ctx, id)
}

func (s *Service) validate(p *domain.Promotion) error {
	if p.Name == "" {
		return errors.New("promotion name is required")
	}
	if p.PolicyID == 0 {
		return errors.New("policy id is required")
	}
	if p.Priority < 1 {
		return errors.New("priority must be at least 1")
	}
	if p.EndDate.Before(p.StartDate) {
		return errors.New("end date must not be before start date")
	}
	return nil
}
