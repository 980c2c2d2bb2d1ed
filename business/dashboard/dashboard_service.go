package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"policyAdvisor/domain"
)

type PolicyRepository interface {
	FindAll(ctx context.Context) ([]domain.Policy, error)
}

type CustomerRepository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

type InteractionRepository interface {
	FindAll(ctx context.Context) ([]domain.Interaction, error)
	FindSince(ctx context.Context, since time.Time) ([]domain.Interaction, error)
	FindRecent(ctx context.Context, limit int) ([]domain.Interaction, error)
}

type Service struct {
	policyRepo      PolicyRepository
	customerRepo    CustomerRepository
	interactionRepo InteractionRepository
	now             func() time.Time
}

func NewService(
	policyRepo PolicyRepository,
	customerRepo CustomerRepository,
	interactionRepo InteractionRepository,
) *Service {
	return &Service{
		policyRepo:      policyRepo,
		customerRepo:    customerRepo,
		interactionRepo: interactionRepo,
		now:             time.Now,
	}
}

const (
	salesTrendDays     = 7
	topPoliciesCount   = 5
	recentActivityRows = 5
)

// BuildReport assembles the full dashboard payload in one pass over the
// catalog, customer base and interaction history.
func (s *Service) BuildReport(ctx context.Context) (domain.AnalyticsReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.AnalyticsReport{}, fmt.Errorf("context error: %w", err)
	}

	policies, err := s.policyRepo.FindAll(ctx)
	if err != nil {
		return domain.AnalyticsReport{}, err
	}
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return domain.AnalyticsReport{}, err
	}
	interactions, err := s.interactionRepo.FindAll(ctx)
	if err != nil {
		return domain.AnalyticsReport{}, err
	}

	report := domain.AnalyticsReport{
		Metrics:          buildMetrics(policies, customers, interactions),
		PolicyTypeCounts: policyTypeCounts(policies),
		AgeSegments:      ageSegments(customers),
		SalesTrend:       s.salesTrend(interactions),
		TopPolicies:      topPoliciesByPremium(policies),
	}

	recent, err := s.interactionRepo.FindRecent(ctx, recentActivityRows)
	if err != nil {
		return domain.AnalyticsReport{}, err
	}
	report.RecentActivities = recentActivities(recent, customers, policies)

	return report, nil
}

func buildMetrics(policies []domain.Policy, customers []domain.Customer, interactions []domain.Interaction) domain.DashboardMetrics {
	purchases := 0
	for _, in := range interactions {
		if in.Purchased {
			purchases++
		}
	}

	conversion := 0.0
	if len(interactions) > 0 {
		conversion = float64(purchases) / float64(len(interactions)) * 100
	}

	avgPremium := 0.0
	if len(policies) > 0 {
		total := 0.0
		for _, p := range policies {
			total += p.PremiumValue()
		}
		avgPremium = total / float64(len(policies))
	}

	return domain.DashboardMetrics{
		TotalPolicies:  len(policies),
		TotalCustomers: len(customers),
		ConversionRate: conversion,
		AvgPremium:     avgPremium,
	}
}

func policyTypeCounts(policies []domain.Policy) map[string]int {
	counts := make(map[string]int)
	for _, p := range policies {
		counts[p.PolicyType]++
	}

	return counts
}

func ageSegments(customers []domain.Customer) map[string]int {
	segments := map[string]int{
		"under_30": 0,
		"30_to_50": 0,
		"over_50":  0,
	}
	for _, c := range customers {
		switch {
		case c.Age < 30:
			segments["under_30"]++
		case c.Age <= 50:
			segments["30_to_50"]++
		default:
			segments["over_50"]++
		}
	}

	return segments
}

// salesTrend buckets purchases per calendar day over the trailing week,
// emitting zero-count days so the chart has a fixed shape.
func (s *Service) salesTrend(interactions []domain.Interaction) []domain.DailySales {
	today := s.now().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(salesTrendDays - 1))

	byDay := make(map[string]int, salesTrendDays)
	for _, in := range interactions {
		if !in.Purchased || in.CreatedAt.Before(start) {
			continue
		}
		byDay[in.CreatedAt.Format("2006-01-02")]++
	}

	trend := make([]domain.DailySales, 0, salesTrendDays)
	for d := 0; d < salesTrendDays; d++ {
		day := start.AddDate(0, 0, d).Format("2006-01-02")
		trend = append(trend, domain.DailySales{Date: day, Count: byDay[day]})
	}

	return trend
}

func topPoliciesByPremium(policies []domain.Policy) []domain.Policy {
	top := make([]domain.Policy, len(policies))
	copy(top, policies)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].PremiumValue() > top[j].PremiumValue()
	})

	if len(top) > topPoliciesCount {
		top = top[:topPoliciesCount]
	}

	return top
}

func recentActivities(interactions []domain.Interaction, customers []domain.Customer, policies []domain.Policy) []domain.RecentActivity {
	customerNames := make(map[uint]string, len(customers))
	for _, c := range customers {
		customerNames[c.CustomerID] = c.Name
	}
	policyNames := make(map[uint64]string, len(policies))
	for _, p := range policies {
		policyNames[p.PolicyID] = p.PolicyName
	}

	activities := make([]domain.RecentActivity, 0, len(interactions))
	for _, in := range interactions {
		action := "viewed"
		if in.Purchased {
			action = "purchased"
		}

		customerName := customerNames[in.CustomerID]
		if customerName == "" {
			customerName = fmt.Sprintf("Customer #%d", in.CustomerID)
		}
		policyName := policyNames[in.PolicyID]
		if policyName == "" {
			policyName = fmt.Sprintf("Policy #%d", in.PolicyID)
		}

		activities = append(activities, domain.RecentActivity{
			CustomerName: customerName,
			PolicyName:   policyName,
			Action:       action,
			Timestamp:    in.CreatedAt.Format(time.RFC3339),
		})
	}

	return activities
}
