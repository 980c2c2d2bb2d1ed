package cart

import (
	"context"
	"fmt"
	"time"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"
)

type CartRepository interface {
	Get(ctx context.Context, customerID uint) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, customerID uint) error
	FindIdleBefore(ctx context.Context, cutoff time.Time) ([]uint, error)
}

type PolicyRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Policy, error)
}

type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Customer, error)
}

type InteractionRepository interface {
	CreateBatch(ctx context.Context, interactions []domain.Interaction) error
}

type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) error
}

type Service struct {
	cartRepo        CartRepository
	policyRepo      PolicyRepository
	customerRepo    CustomerRepository
	interactionRepo InteractionRepository
	notifRepo       NotificationRepository
	frontendURL     string
	now             func() time.Time
}

func NewService(
	cartRepo CartRepository,
	policyRepo PolicyRepository,
	customerRepo CustomerRepository,
	interactionRepo InteractionRepository,
	notifRepo NotificationRepository,
	frontendURL string,
) *Service {
	return &Service{
		cartRepo:        cartRepo,
		policyRepo:      policyRepo,
		customerRepo:    customerRepo,
		interactionRepo: interactionRepo,
		notifRepo:       notifRepo,
		frontendURL:     frontendURL,
		now:             time.Now,
	}
}

func (s *Service) AddItem(ctx context.Context, customerID uint, policyID uint64) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// the customer and policy must both exist before the cart grows
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	policy, err := s.policyRepo.FindByID(ctx, policyID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &domain.Cart{CustomerID: customerID}
	}

	cart.Items = append(cart.Items, domain.CartItem{
		PolicyID:      policy.PolicyID,
		PolicyName:    policy.PolicyName,
		PremiumAmount: policy.PremiumValue(),
	})
	cart.LastUpdated = s.now()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *Service) GetCart(ctx context.Context, customerID uint) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &domain.Cart{CustomerID: customerID, Items: []domain.CartItem{}}, nil
	}

	return cart, nil
}

// Checkout empties the cart and records one purchased interaction per item.
func (s *Service) Checkout(ctx context.Context, customerID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		return err
	}
	if cart == nil || len(cart.Items) == 0 {
		return domain.ErrCartEmpty
	}

	interactions := make([]domain.Interaction, 0, len(cart.Items))
	for _, item := range cart.Items {
		interactions = append(interactions, domain.Interaction{
			CustomerID: customerID,
			PolicyID:   item.PolicyID,
			Purchased:  true,
			CreatedAt:  s.now(),
		})
	}

	if err := s.interactionRepo.CreateBatch(ctx, interactions); err != nil {
		return fmt.Errorf("record purchases: %w", err)
	}

	if err := s.cartRepo.Delete(ctx, customerID); err != nil {
		return err
	}

	return nil
}

// SendReminders emails every customer whose cart has been idle past the
// cutoff, records the abandoned-cart signal into interaction history, and
// clears the cart. Called periodically from the reminder loop.
func (s *Service) SendReminders(ctx context.Context, idleFor time.Duration) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	cutoff := s.now().Add(-idleFor)
	customerIDs, err := s.cartRepo.FindIdleBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, customerID := range customerIDs {
		if err := s.remind(ctx, customerID); err != nil {
			logger.Warn("abandoned cart reminder failed", "customer_id", customerID, "error", err)
			continue
		}
		sent++
	}

	return sent, nil
}

func (s *Service) remind(ctx context.Context, customerID uint) error {
	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		return err
	}
	if cart == nil || len(cart.Items) == 0 {
		return s.cartRepo.Delete(ctx, customerID)
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	if customer.Email != "" {
		body := reminderBody(customer, cart, s.frontendURL)
		if err := s.notifRepo.SendEmail(customer.Name, customer.Email, "Complete Your Policy Purchase", body); err != nil {
			return err
		}
	}

	// the abandonment itself is a behavioral signal the model consumes
	interactions := make([]domain.Interaction, 0, len(cart.Items))
	for _, item := range cart.Items {
		interactions = append(interactions, domain.Interaction{
			CustomerID:    customerID,
			PolicyID:      item.PolicyID,
			AbandonedCart: 1,
			CreatedAt:     s.now(),
		})
	}
	if err := s.interactionRepo.CreateBatch(ctx, interactions); err != nil {
		return fmt.Errorf("record abandonment: %w", err)
	}

	return s.cartRepo.Delete(ctx, customerID)
}

func reminderBody(customer domain.Customer, cart *domain.Cart, frontendURL string) string {
	items := ""
	for _, item := range cart.Items {
		items += fmt.Sprintf("- %s (₹%.2f)\n", item.PolicyName, item.PremiumAmount)
	}

	return fmt.Sprintf(
		"Dear %s,\n\nWe noticed you didn't complete your purchase for these policies:\n\n%s\nComplete your purchase now to secure your coverage:\n%s/cart?customer_id=%d\n\nRegards,\nPolicyAdvisor Team",
		customer.Name, items, frontendURL, customer.CustomerID,
	)
}

// RunReminderLoop blocks until the context is cancelled, sweeping idle carts
// every interval.
func (s *Service) RunReminderLoop(ctx context.Context, interval, idleFor time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sent, err := s.SendReminders(ctx, idleFor)
			if err != nil {
				logger.Error("abandoned cart sweep failed", "error", err)
				continue
			}
			if sent > 0 {
				logger.Info("abandoned cart reminders sent", "count", sent)
			}
		}
	}
}
