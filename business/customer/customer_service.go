package customer

import (
	"context"
	"errors"
	"fmt"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

type Service struct {
	customerRepo CustomerRepository
}

func NewService(customerRepo CustomerRepository) *Service {
	return &Service{
		customerRepo: customerRepo,
	}
}

func (s *Service) GetAllCustomers(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all customers")
		return nil, fmt.Errorf("context error: %w", err)
	}

	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all customers", err)
		return nil, err
	}

	return customers, nil
}

func (s *Service) GetCustomerByID(ctx context.Context, id uint) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}
	if id == 0 {
		return domain.Customer{}, errors.New("invalid customer id")
	}

	return s.customerRepo.FindByID(ctx, id)
}
