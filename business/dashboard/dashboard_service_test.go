package dashboard

import (
	"context"
	"testing"
	"time"

	"policyAdvisor/domain"
)

type fakePolicyRepo struct{ rows []domain.Policy }

func (f fakePolicyRepo) FindAll(context.Context) ([]domain.Policy, error) { return f.rows, nil }

type fakeCustomerRepo struct{ rows []domain.Customer }

func (f fakeCustomerRepo) FindAll(context.Context) ([]domain.Customer, error) { return f.rows, nil }

type fakeInteractionRepo struct{ rows []domain.Interaction }

func (f fakeInteractionRepo) FindAll(context.Context) ([]domain.Interaction, error) {
	return f.rows, nil
}

func (f fakeInteractionRepo) FindSince(_ context.Context, since time.Time) ([]domain.Interaction, error) {
	out := []domain.Interaction{}
	for _, r := range f.rows {
		if r.CreatedAt.After(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeInteractionRepo) FindRecent(_ context.Context, limit int) ([]domain.Interaction, error) {
	if limit > len(f.rows) {
		limit = len(f.rows)
	}
	return f.rows[:limit], nil
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	policies := []domain.Policy{
		{PolicyID: 1, PolicyName: "Term A", PolicyType: "term", PremiumAmount: "10,000"},
		{PolicyID: 2, PolicyName: "Health B", PolicyType: "health", PremiumAmount: "20,000"},
		{PolicyID: 3, PolicyName: "Term C", PolicyType: "term", PremiumAmount: "30,000"},
	}
	customers := []domain.Customer{
		{CustomerID: 1, Name: "Asha", Age: 25},
		{CustomerID: 2, Name: "Binod", Age: 40},
		{CustomerID: 3, Name: "Chitra", Age: 65},
	}
	interactions := []domain.Interaction{
		{CustomerID: 1, PolicyID: 1, Purchased: true, CreatedAt: now.Add(-24 * time.Hour)},
		{CustomerID: 2, PolicyID: 2, Purchased: false, CreatedAt: now.Add(-2 * time.Hour)},
		{CustomerID: 3, PolicyID: 3, Purchased: true, CreatedAt: now.Add(-30 * 24 * time.Hour)},
		{CustomerID: 1, PolicyID: 2, Purchased: false, CreatedAt: now.Add(-1 * time.Hour)},
	}

	svc := NewService(fakePolicyRepo{policies}, fakeCustomerRepo{customers}, fakeInteractionRepo{interactions})
	svc.now = func() time.Time { return now }

	report, err := svc.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := report.Metrics
	if m.TotalPolicies != 3 || m.TotalCustomers != 3 {
		t.Errorf("totals = %d policies, %d customers", m.TotalPolicies, m.TotalCustomers)
	}
	if m.ConversionRate != 50 {
		t.Errorf("conversion rate = %v, want 50", m.ConversionRate)
	}
	if m.AvgPremium != 20000 {
		t.Errorf("avg premium = %v, want 20000", m.AvgPremium)
	}

	if report.PolicyTypeCounts["term"] != 2 || report.PolicyTypeCounts["health"] != 1 {
		t.Errorf("policy type counts = %v", report.PolicyTypeCounts)
	}

	if report.AgeSegments["under_30"] != 1 || report.AgeSegments["30_to_50"] != 1 || report.AgeSegments["over_50"] != 1 {
		t.Errorf("age segments = %v", report.AgeSegments)
	}

	if len(report.SalesTrend) != salesTrendDays {
		t.Fatalf("sales trend has %d days, want %d", len(report.SalesTrend), salesTrendDays)
	}
	trendTotal := 0
	for _, d := range report.SalesTrend {
		trendTotal += d.Count
	}
	// only the purchase inside the trailing week counts
	if trendTotal != 1 {
		t.Errorf("trailing-week purchases = %d, want 1", trendTotal)
	}

	if len(report.TopPolicies) != 3 || report.TopPolicies[0].PolicyID != 3 {
		t.Errorf("top policies = %v", report.TopPolicies)
	}

	if len(report.RecentActivities) == 0 {
		t.Fatal("no recent activities")
	}
	first := report.RecentActivities[0]
	if first.CustomerName != "Asha" || first.PolicyName != "Term A" || first.Action != "purchased" {
		t.Errorf("first activity = %+v", first)
	}
}

func TestBuildReportEmptyStores(t *testing.T) {
	svc := NewService(fakePolicyRepo{}, fakeCustomerRepo{}, fakeInteractionRepo{})

	report, err := svc.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Metrics.ConversionRate != 0 || report.Metrics.AvgPremium != 0 {
		t.Errorf("zero-division leaked: %+v", report.Metrics)
	}
	if len(report.SalesTrend) != salesTrendDays {
		t.Errorf("sales trend shape lost on empty corpus: %d days", len(report.SalesTrend))
	}
}
