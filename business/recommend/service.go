package recommend

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"policyAdvisor/domain"
	"policyAdvisor/pkg/logger"

	"gorm.io/datatypes"
)

const defaultTopN = 5

// ---- Repository interfaces ----

type CustomerRepository interface {
	FindByID(ctx context.Context, customerID uint) (domain.Customer, error)
}

type InteractionRepository interface {
	// LatestByCustomer returns the most recent interaction row for the
	// customer, or nil when no history exists.
	LatestByCustomer(ctx context.Context, customerID uint) (*domain.Interaction, error)
}

// PromotionResolver supplies the promotions applying at a given instant.
// "No promotions" is an empty map, not an error.
type PromotionResolver interface {
	ActiveAsOf(ctx context.Context, asOf time.Time) (map[uint64]domain.ActivePromotion, error)
}

// CorpusLoader assembles the full historical corpus the transforms are
// fitted against.
type CorpusLoader interface {
	LoadCorpus(ctx context.Context) (Corpus, error)
}

// Scorer is the pretrained relevance model. Customer and interaction vectors
// are broadcast by the scorer across all policy rows; the returned slice has
// one score per policy, in input order.
type Scorer interface {
	Score(ctx context.Context, customer, interaction []float64, policies [][]float64) ([]float64, error)
}

// TrackingRecorder receives a best-effort event per served recommendation.
type TrackingRecorder interface {
	SaveEvent(ctx context.Context, event domain.TrackingEvent) error
}

// ---- Service ----

type Service struct {
	customerRepo    CustomerRepository
	interactionRepo InteractionRepository
	promoResolver   PromotionResolver
	corpusLoader    CorpusLoader
	scorer          Scorer
	trackingRepo    TrackingRecorder

	snapshot atomic.Pointer[Snapshot]
	now      func() time.Time
}

func NewService(
	customerRepo CustomerRepository,
	interactionRepo InteractionRepository,
	promoResolver PromotionResolver,
	corpusLoader CorpusLoader,
	scorer Scorer,
	trackingRepo TrackingRecorder,
) *Service {
	return &Service{
		customerRepo:    customerRepo,
		interactionRepo: interactionRepo,
		promoResolver:   promoResolver,
		corpusLoader:    corpusLoader,
		scorer:          scorer,
		trackingRepo:    trackingRepo,
		now:             time.Now,
	}
}

// Warmup fits the transforms against the full historical corpus and
// publishes the first snapshot. Fatal at startup when the corpus is empty.
func (s *Service) Warmup(ctx context.Context) error {
	return s.Reload(ctx)
}

// Reload rebuilds the snapshot from the current corpus and swaps it in
// atomically. In-flight requests keep the snapshot they started with.
func (s *Service) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	corpus, err := s.corpusLoader.LoadCorpus(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	snap, err := buildSnapshot(corpus, s.now())
	if err != nil {
		return err
	}

	s.snapshot.Store(snap)
	SnapshotReloadsTotal.Inc()

	logger.Info("recommend_snapshot_published",
		"customers", len(corpus.Customers),
		"policies", len(corpus.Policies),
		"interactions", len(corpus.Interactions),
		"customer_dim", snap.Transforms.Customer.Dim(),
		"policy_dim", snap.Transforms.Policy.Dim(),
		"interaction_dim", snap.Transforms.Interaction.Dim(),
	)

	return nil
}

// CurrentSnapshot exposes the published snapshot, mainly for wiring the
// scorer's dimension check at startup.
func (s *Service) CurrentSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// Recommend scores every catalog policy for the customer and returns the
// topN after merging active promotions. Each request is independent: the
// only shared state it touches is the read-only snapshot.
func (s *Service) Recommend(
	ctx context.Context,
	customerID uint,
	topN int,
) ([]domain.PolicyRecommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if topN <= 0 {
		topN = defaultTopN
	}

	started := s.now()

	snap := s.snapshot.Load()
	if snap == nil {
		return nil, fmt.Errorf("%w: snapshot not initialized", domain.ErrInsufficientData)
	}

	// 1) customer lookup
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		RecommendFailuresTotal.WithLabelValues("customer_lookup").Inc()
		return nil, err
	}

	// 2) interaction lookup, zero-context fallback when no history
	interaction := domain.InteractionContext{}
	latest, err := s.interactionRepo.LatestByCustomer(ctx, customerID)
	if err != nil {
		RecommendFailuresTotal.WithLabelValues("interaction_lookup").Inc()
		return nil, fmt.Errorf("load interaction history: %w", err)
	}
	if latest != nil {
		interaction = latest.Context()
	}

	// empty catalog is a valid state, not an error
	if len(snap.Catalog) == 0 {
		return []domain.PolicyRecommendation{}, nil
	}

	// 3) expand + encode against the request's snapshot
	candidates := expandCandidates(snap.Transforms, customer, interaction, snap.Catalog)

	// 4) score
	scores, err := s.scorer.Score(ctx, candidates.Customer, candidates.Interaction, candidates.PolicyFeatures)
	if err != nil {
		RecommendFailuresTotal.WithLabelValues("scorer").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrScorerUnavailable, err)
	}
	if len(scores) != candidates.Len() {
		RecommendFailuresTotal.WithLabelValues("scorer").Inc()
		return nil, fmt.Errorf("%w: got %d scores for %d candidates", domain.ErrScorerUnavailable, len(scores), candidates.Len())
	}

	// 5) promotion merge + rank
	promotions, err := s.promoResolver.ActiveAsOf(ctx, s.now())
	if err != nil {
		RecommendFailuresTotal.WithLabelValues("promotions").Inc()
		return nil, fmt.Errorf("resolve promotions: %w", err)
	}

	recs := rankCandidates(candidates, scores, promotions, topN)

	tid := TraceIDFromContext(ctx)
	logger.Debug("recommend_served",
		"trace_id", tid,
		"customer_id", customerID,
		"top_n", topN,
		"candidates", candidates.Len(),
		"promoted", len(promotions),
		"returned", len(recs),
	)

	s.trackServed(ctx, customerID, recs)

	RecommendRequestsTotal.Inc()
	RecommendLatency.Observe(s.now().Sub(started).Seconds())

	return recs, nil
}

// trackServed records one tracking event per returned recommendation.
// Failures are logged, never surfaced: tracking must not break serving.
func (s *Service) trackServed(ctx context.Context, customerID uint, recs []domain.PolicyRecommendation) {
	if s.trackingRepo == nil {
		return
	}

	now := s.now()
	for rank, rec := range recs {
		event := domain.TrackingEvent{
			Timestamp:  now,
			EventType:  "policy_recommendation",
			CustomerID: customerID,
			PolicyID:   rec.Policy.PolicyID,
			AdditionalData: datatypes.JSONMap{
				"recommendation_rank": rank + 1,
				"score":               strconv.FormatFloat(rec.Score, 'f', -1, 64),
				"is_promoted":         rec.IsPromoted,
			},
		}
		if err := s.trackingRepo.SaveEvent(ctx, event); err != nil {
			logger.Warn("failed to track served recommendation",
				"customer_id", customerID,
				"policy_id", rec.Policy.PolicyID,
				"error", err,
			)
			return
		}
	}
}
