package promotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"policyAdvisor/domain"
)

type fakePromoRepo struct {
	rows    []domain.Promotion
	created []domain.Promotion
}

func (f *fakePromoRepo) Create(_ context.Context, p *domain.Promotion) error {
	f.created = append(f.created, *p)
	return nil
}

func (f *fakePromoRepo) FindByID(_ context.Context, id uint) (domain.Promotion, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Promotion{}, domain.ErrPromotionNotFound
}

func (f *fakePromoRepo) FindAll(context.Context) ([]domain.Promotion, error) {
	return f.rows, nil
}

func (f *fakePromoRepo) FindActive(_ context.Context, asOf time.Time) ([]domain.Promotion, error) {
	// mirrors the SQL prefilter; the service still re-checks the window
	out := []domain.Promotion{}
	for _, p := range f.rows {
		if p.Active && !asOf.Before(p.StartDate) && !asOf.After(p.EndDate) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePromoRepo) Update(context.Context, *domain.Promotion) error { return nil }
func (f *fakePromoRepo) Delete(context.Context, uint) error             { return nil }

type fakePolicyRepo struct {
	known map[uint64]bool
}

func (f *fakePolicyRepo) FindByID(_ context.Context, id uint64) (domain.Policy, error) {
	if !f.known[id] {
		return domain.Policy{}, domain.ErrPolicyNotFound
	}
	return domain.Policy{PolicyID: id}, nil
}

func TestActiveAsOfWindow(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakePromoRepo{rows: []domain.Promotion{
		{ID: 1, PolicyID: 10, Name: "live", Priority: 2, Active: true, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1)},
		{ID: 2, PolicyID: 11, Name: "expired", Priority: 9, Active: true, StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 0, -5)},
		{ID: 3, PolicyID: 12, Name: "future", Priority: 9, Active: true, StartDate: now.AddDate(0, 0, 5), EndDate: now.AddDate(0, 0, 10)},
		{ID: 4, PolicyID: 13, Name: "disabled", Priority: 9, Active: false, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1)},
	}}
	svc := NewService(repo, &fakePolicyRepo{})

	active, err := svc.ActiveAsOf(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(active) != 1 {
		t.Fatalf("got %d active promotions, want 1: %v", len(active), active)
	}
	if promo, ok := active[10]; !ok || promo.Priority != 2 {
		t.Errorf("policy 10 promotion = %+v, want priority 2", promo)
	}
}

func TestActiveAsOfBoundariesInclusive(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	repo := &fakePromoRepo{rows: []domain.Promotion{
		{ID: 1, PolicyID: 10, Name: "p", Priority: 1, Active: true, StartDate: start, EndDate: end},
	}}
	svc := NewService(repo, &fakePolicyRepo{})

	for _, asOf := range []time.Time{start, end} {
		active, err := svc.ActiveAsOf(context.Background(), asOf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(active) != 1 {
			t.Errorf("promotion inactive at window edge %s", asOf)
		}
	}

	active, err := svc.ActiveAsOf(context.Background(), end.Add(time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 0 {
		t.Error("promotion still active past end date")
	}
}

func TestActiveAsOfHighestPriorityWins(t *testing.T) {
	now := time.Now()
	repo := &fakePromoRepo{rows: []domain.Promotion{
		{ID: 1, PolicyID: 10, Name: "low", Tag: "low", Priority: 1, Active: true, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)},
		{ID: 2, PolicyID: 10, Name: "high", Tag: "high", Priority: 7, Active: true, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)},
	}}
	svc := NewService(repo, &fakePolicyRepo{})

	active, err := svc.ActiveAsOf(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active[10].Tag != "high" || active[10].Priority != 7 {
		t.Errorf("policy 10 got %+v, want the priority-7 promotion", active[10])
	}
}

func TestCreatePromotionValidation(t *testing.T) {
	now := time.Now()
	repo := &fakePromoRepo{}
	svc := NewService(repo, &fakePolicyRepo{known: map[uint64]bool{10: true}})

	// unknown policy rejected
	_, err := svc.CreatePromotion(context.Background(), &domain.Promotion{
		PolicyID: 99, Name: "x", Priority: 1, StartDate: now, EndDate: now.Add(time.Hour),
	})
	if !errors.Is(err, domain.ErrPolicyNotFound) {
		t.Errorf("expected ErrPolicyNotFound, got %v", err)
	}

	// inverted window rejected
	_, err = svc.CreatePromotion(context.Background(), &domain.Promotion{
		PolicyID: 10, Name: "x", Priority: 1, StartDate: now, EndDate: now.Add(-time.Hour),
	})
	if err == nil {
		t.Error("expected error for end before start")
	}

	// valid promotion lands
	_, err = svc.CreatePromotion(context.Background(), &domain.Promotion{
		PolicyID: 10, Name: "ok", Priority: 1, StartDate: now, EndDate: now.Add(time.Hour),
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Errorf("created %d promotions, want 1", len(repo.created))
	}
}
