package recommend

import (
	"sort"

	"policyAdvisor/domain"
)

// rankCandidates merges model scores with active promotions into one
// deterministic ordering and truncates to topN.
//
// Sort key, most significant first:
//  1. promoted before non-promoted
//  2. promotion priority, descending
//  3. relevance score, descending
//  4. policy_id, ascending
//
// The last key makes the order total, so sorting is stable under any
// permutation of the input. The full set is ordered before truncation.
func rankCandidates(
	candidates CandidateSet,
	scores []float64,
	promotions map[uint64]domain.ActivePromotion,
	topN int,
) []domain.PolicyRecommendation {

	ranked := make([]domain.PolicyRecommendation, 0, candidates.Len())
	for i, p := range candidates.Policies {
		rec := domain.PolicyRecommendation{
			Policy: p,
			Score:  scores[i],
		}
		if promo, ok := promotions[p.PolicyID]; ok {
			rec.IsPromoted = true
			rec.PromotionPriority = promo.Priority
			rec.PromotionTag = promo.Tag
		}
		ranked = append(ranked, rec)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.IsPromoted != b.IsPromoted {
			return a.IsPromoted
		}
		if a.PromotionPriority != b.PromotionPriority {
			return a.PromotionPriority > b.PromotionPriority
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Policy.PolicyID < b.Policy.PolicyID
	})

	// asking for more than available returns everything, not an error
	if topN > len(ranked) {
		topN = len(ranked)
	}
	if topN < 0 {
		topN = 0
	}

	return ranked[:topN]
}
