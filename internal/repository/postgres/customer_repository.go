package postgres

import (
	"context"
	"errors"
	"fmt"

	"policyAdvisor/domain"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{
		DB: db,
	}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	var customer domain.Customer

	err := r.DB.WithContext(ctx).First(&customer, "customer_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("failed to find customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var customers []domain.Customer
	err := r.DB.WithContext(ctx).Order("customer_id ASC").Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customers: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) UpsertBatch(ctx context.Context, customers []domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(customers) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Save(&customers).Error; err != nil {
		return fmt.Errorf("failed to upsert customers: %w", err)
	}

	return nil
}
