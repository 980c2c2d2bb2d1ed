package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"policyAdvisor/domain"
)

// ---- fakes ----

type fakeCustomerRepo struct {
	customers map[uint]domain.Customer
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id uint) (domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return c, nil
}

type fakeInteractionRepo struct {
	latest map[uint]*domain.Interaction
}

func (f *fakeInteractionRepo) LatestByCustomer(_ context.Context, id uint) (*domain.Interaction, error) {
	return f.latest[id], nil
}

type fakePromoResolver struct {
	active map[uint64]domain.ActivePromotion
}

func (f *fakePromoResolver) ActiveAsOf(context.Context, time.Time) (map[uint64]domain.ActivePromotion, error) {
	return f.active, nil
}

type fakeCorpusLoader struct {
	corpus Corpus
	err    error
}

func (f *fakeCorpusLoader) LoadCorpus(context.Context) (Corpus, error) {
	return f.corpus, f.err
}

type fakeScorer struct {
	fn func(policies [][]float64) ([]float64, error)
}

func (f *fakeScorer) Score(_ context.Context, _, _ []float64, policies [][]float64) ([]float64, error) {
	return f.fn(policies)
}

type fakeTracker struct {
	events []domain.TrackingEvent
}

func (f *fakeTracker) SaveEvent(_ context.Context, e domain.TrackingEvent) error {
	f.events = append(f.events, e)
	return nil
}

func descendingScorer() *fakeScorer {
	return &fakeScorer{fn: func(policies [][]float64) ([]float64, error) {
		scores := make([]float64, len(policies))
		for i := range scores {
			scores[i] = 1.0 - float64(i)*0.1
		}
		return scores, nil
	}}
}

func newTestService(t *testing.T, sc Scorer, promos map[uint64]domain.ActivePromotion) (*Service, *fakeTracker) {
	t.Helper()

	corpus := testCorpus()
	tracker := &fakeTracker{}
	svc := NewService(
		&fakeCustomerRepo{customers: map[uint]domain.Customer{
			1: corpus.Customers[0],
			2: corpus.Customers[1],
		}},
		&fakeInteractionRepo{latest: map[uint]*domain.Interaction{
			1: &corpus.Interactions[0],
		}},
		&fakePromoResolver{active: promos},
		&fakeCorpusLoader{corpus: corpus},
		sc,
		tracker,
	)

	if err := svc.Warmup(context.Background()); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	return svc, tracker
}

// ---- tests ----

func TestRecommendKnownCustomer(t *testing.T) {
	svc, tracker := newTestService(t, descendingScorer(), nil)

	recs, err := svc.Recommend(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}

	// descending scorer favors catalog order: 10 then 11
	if recs[0].Policy.PolicyID != 10 || recs[1].Policy.PolicyID != 11 {
		t.Errorf("order = [%d, %d], want [10, 11]", recs[0].Policy.PolicyID, recs[1].Policy.PolicyID)
	}
	if recs[0].Score <= recs[1].Score {
		t.Errorf("scores not descending: %v, %v", recs[0].Score, recs[1].Score)
	}

	if len(tracker.events) != 2 {
		t.Fatalf("tracked %d events, want 2", len(tracker.events))
	}
	if tracker.events[0].EventType != "policy_recommendation" {
		t.Errorf("event type %q", tracker.events[0].EventType)
	}
	if rank := tracker.events[0].AdditionalData["recommendation_rank"]; rank != 1 {
		t.Errorf("first event rank = %v, want 1", rank)
	}
}

func TestRecommendCustomerWithoutHistory(t *testing.T) {
	// customer 2 has no interaction rows; the zero context stands in
	svc, _ := newTestService(t, descendingScorer(), nil)

	recs, err := svc.Recommend(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("got %d recommendations, want 2", len(recs))
	}
}

func TestRecommendUnknownCustomer(t *testing.T) {
	svc, _ := newTestService(t, descendingScorer(), nil)

	_, err := svc.Recommend(context.Background(), 999, 5)
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestRecommendScorerFailurePropagates(t *testing.T) {
	failing := &fakeScorer{fn: func([][]float64) ([]float64, error) {
		return nil, fmt.Errorf("connection refused")
	}}
	svc, tracker := newTestService(t, failing, nil)

	recs, err := svc.Recommend(context.Background(), 1, 5)
	if !errors.Is(err, domain.ErrScorerUnavailable) {
		t.Fatalf("expected ErrScorerUnavailable, got %v", err)
	}
	if recs != nil {
		t.Errorf("got %d fallback recommendations, want none", len(recs))
	}
	if len(tracker.events) != 0 {
		t.Errorf("tracked %d events on failure, want 0", len(tracker.events))
	}
}

func TestRecommendScoreCountMismatch(t *testing.T) {
	short := &fakeScorer{fn: func(policies [][]float64) ([]float64, error) {
		return make([]float64, len(policies)-1), nil
	}}
	svc, _ := newTestService(t, short, nil)

	_, err := svc.Recommend(context.Background(), 1, 5)
	if !errors.Is(err, domain.ErrScorerUnavailable) {
		t.Fatalf("expected ErrScorerUnavailable, got %v", err)
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	corpus := testCorpus()
	svc := NewService(
		&fakeCustomerRepo{customers: map[uint]domain.Customer{1: corpus.Customers[0]}},
		&fakeInteractionRepo{},
		&fakePromoResolver{},
		&fakeCorpusLoader{corpus: corpus},
		descendingScorer(),
		nil,
	)
	if err := svc.Warmup(context.Background()); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	// catalog drains between reload and request: serve empty, not error
	svc.snapshot.Load().Catalog = nil

	recs, err := svc.Recommend(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("got %v, want empty non-nil slice", recs)
	}
}

func TestRecommendWithoutWarmup(t *testing.T) {
	svc := NewService(
		&fakeCustomerRepo{},
		&fakeInteractionRepo{},
		&fakePromoResolver{},
		&fakeCorpusLoader{},
		descendingScorer(),
		nil,
	)

	_, err := svc.Recommend(context.Background(), 1, 5)
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestWarmupEmptyCorpusFails(t *testing.T) {
	svc := NewService(
		&fakeCustomerRepo{},
		&fakeInteractionRepo{},
		&fakePromoResolver{},
		&fakeCorpusLoader{corpus: Corpus{}},
		descendingScorer(),
		nil,
	)

	if err := svc.Warmup(context.Background()); !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	svc, _ := newTestService(t, descendingScorer(), map[uint64]domain.ActivePromotion{
		11: {Priority: 3, Tag: "festive"},
	})

	first, err := svc.Recommend(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := svc.Recommend(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j := range first {
			if again[j].Policy.PolicyID != first[j].Policy.PolicyID || again[j].Score != first[j].Score {
				t.Fatalf("run %d diverged at position %d", i, j)
			}
		}
	}
}

func TestRecommendPromotionFirst(t *testing.T) {
	svc, _ := newTestService(t, descendingScorer(), map[uint64]domain.ActivePromotion{
		11: {Priority: 2, Tag: "festive"},
	})

	recs, err := svc.Recommend(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs[0].Policy.PolicyID != 11 || !recs[0].IsPromoted {
		t.Errorf("promoted policy not first: %+v", recs[0])
	}
}

func TestRecommendTopNDefaultAndClamp(t *testing.T) {
	svc, _ := newTestService(t, descendingScorer(), nil)

	// zero falls back to the default, then clamps to catalog size
	recs, err := svc.Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("got %d recommendations, want 2", len(recs))
	}

	recs, err = svc.Recommend(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("got %d recommendations, want 1", len(recs))
	}
}

func TestReloadSwapsSnapshot(t *testing.T) {
	corpus := testCorpus()
	loader := &fakeCorpusLoader{corpus: corpus}
	svc := NewService(
		&fakeCustomerRepo{customers: map[uint]domain.Customer{1: corpus.Customers[0]}},
		&fakeInteractionRepo{},
		&fakePromoResolver{},
		loader,
		descendingScorer(),
		nil,
	)
	if err := svc.Warmup(context.Background()); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	old := svc.CurrentSnapshot()

	loader.corpus.Policies = append(loader.corpus.Policies, domain.Policy{
		PolicyID: 12, PolicyType: "vehicle", SumAssured: "200,000", PremiumAmount: "3,000",
	})
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	cur := svc.CurrentSnapshot()
	if cur == old {
		t.Fatal("reload did not publish a new snapshot")
	}
	if len(cur.Catalog) != 3 {
		t.Errorf("new snapshot catalog size %d, want 3", len(cur.Catalog))
	}
	// the old snapshot is untouched for in-flight requests
	if len(old.Catalog) != 2 {
		t.Errorf("old snapshot mutated: catalog size %d, want 2", len(old.Catalog))
	}
}

func TestReloadFailureKeepsServing(t *testing.T) {
	corpus := testCorpus()
	loader := &fakeCorpusLoader{corpus: corpus}
	svc := NewService(
		&fakeCustomerRepo{customers: map[uint]domain.Customer{1: corpus.Customers[0]}},
		&fakeInteractionRepo{},
		&fakePromoResolver{},
		loader,
		descendingScorer(),
		nil,
	)
	if err := svc.Warmup(context.Background()); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	loader.err = fmt.Errorf("db down")
	if err := svc.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}

	if _, err := svc.Recommend(context.Background(), 1, 5); err != nil {
		t.Errorf("serving broke after failed reload: %v", err)
	}
}
