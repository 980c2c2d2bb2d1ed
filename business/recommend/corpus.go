package recommend

import (
	"context"
	"fmt"

	"policyAdvisor/domain"
)

// ---- Corpus loading ----

type CatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.Policy, error)
}

type CustomerCatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

type InteractionHistoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Interaction, error)
}

// RepositoryCorpusLoader assembles the full historical corpus from the
// backing stores. The corpus feeds transform fitting only; serving reads the
// snapshot built from it.
type RepositoryCorpusLoader struct {
	customers    CustomerCatalogRepository
	policies     CatalogRepository
	interactions InteractionHistoryRepository
}

func NewRepositoryCorpusLoader(
	customers CustomerCatalogRepository,
	policies CatalogRepository,
	interactions InteractionHistoryRepository,
) *RepositoryCorpusLoader {
	return &RepositoryCorpusLoader{
		customers:    customers,
		policies:     policies,
		interactions: interactions,
	}
}

func (l *RepositoryCorpusLoader) LoadCorpus(ctx context.Context) (Corpus, error) {
	if err := ctx.Err(); err != nil {
		return Corpus{}, fmt.Errorf("context error: %w", err)
	}

	customers, err := l.customers.FindAll(ctx)
	if err != nil {
		return Corpus{}, fmt.Errorf("load customers: %w", err)
	}

	policies, err := l.policies.FindAll(ctx)
	if err != nil {
		return Corpus{}, fmt.Errorf("load policies: %w", err)
	}

	interactions, err := l.interactions.FindAll(ctx)
	if err != nil {
		return Corpus{}, fmt.Errorf("load interactions: %w", err)
	}

	return Corpus{
		Customers:    customers,
		Policies:     policies,
		Interactions: interactions,
	}, nil
}
