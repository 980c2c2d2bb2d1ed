package recommend

import (
	"time"

	"policyAdvisor/domain"
)

// Snapshot bundles the fitted transforms and the catalog they were fitted
// alongside. A request reads exactly one snapshot for its whole lifetime;
// reload builds a fresh one and publishes it atomically, so readers never
// observe old-numeric/new-categorical mixes.
type Snapshot struct {
	Transforms *TransformSet
	Catalog    []domain.Policy
	BuiltAt    time.Time
}

func buildSnapshot(corpus Corpus, now time.Time) (*Snapshot, error) {
	transforms, err := FitTransforms(corpus, now)
	if err != nil {
		return nil, err
	}

	// catalog order is the expansion order; copy so later corpus mutations
	// by the loader cannot reach a published snapshot
	catalog := make([]domain.Policy, len(corpus.Policies))
	copy(catalog, corpus.Policies)

	return &Snapshot{
		Transforms: transforms,
		Catalog:    catalog,
		BuiltAt:    now,
	}, nil
}
