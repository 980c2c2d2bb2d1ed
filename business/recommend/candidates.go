package recommend

import (
	"policyAdvisor/domain"
)

// CandidateSet is the per-request pairing of one customer against every
// catalog policy. The customer and interaction vectors are encoded once and
// broadcast across all candidates instead of being copied |catalog| times;
// the policies slice keeps the catalog's natural order so downstream
// tie-breaks stay reproducible.
type CandidateSet struct {
	Customer       []float64
	Interaction    []float64
	Policies       []domain.Policy
	PolicyFeatures [][]float64
}

func (cs CandidateSet) Len() int {
	return len(cs.Policies)
}

// expandCandidates builds the scorable set for one request.
func expandCandidates(
	transforms *TransformSet,
	customer domain.Customer,
	interaction domain.InteractionContext,
	catalog []domain.Policy,
) CandidateSet {

	feats := make([][]float64, 0, len(catalog))
	for _, p := range catalog {
		feats = append(feats, transforms.EncodePolicy(p))
	}

	return CandidateSet{
		Customer:       transforms.EncodeCustomer(customer),
		Interaction:    transforms.EncodeInteraction(interaction),
		Policies:       catalog,
		PolicyFeatures: feats,
	}
}
