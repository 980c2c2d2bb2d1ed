package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"policyAdvisor/domain"
)

// artifact is the serialized head of the pretrained two-tower model. The
// towers are folded into per-feature weight vectors at export time, so
// serving is a dot product per input block plus a sigmoid.
type artifact struct {
	Version            string    `json:"version"`
	CustomerWeights    []float64 `json:"customer_weights"`
	InteractionWeights []float64 `json:"interaction_weights"`
	PolicyWeights      []float64 `json:"policy_weights"`
	Bias               float64   `json:"bias"`
}

// ArtifactScorer scores candidates with a local model artifact. It is a pure
// function of its inputs for a fixed artifact file.
type ArtifactScorer struct {
	model artifact
}

// NewArtifactScorer loads and validates the weight file. Any load failure is
// a scorer-unavailable condition: the caller must not fall back to a default
// ranking.
func NewArtifactScorer(path string) (*ArtifactScorer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read model artifact: %v", domain.ErrScorerUnavailable, err)
	}

	var m artifact
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: parse model artifact: %v", domain.ErrScorerUnavailable, err)
	}

	if len(m.CustomerWeights) == 0 || len(m.InteractionWeights) == 0 || len(m.PolicyWeights) == 0 {
		return nil, fmt.Errorf("%w: model artifact has empty weight blocks", domain.ErrScorerUnavailable)
	}

	return &ArtifactScorer{model: m}, nil
}

// ValidateDims checks the artifact against the fitted transform widths.
// A mismatch means the artifact was trained on a different corpus snapshot
// than the one currently fitted (stale transformer state).
func (s *ArtifactScorer) ValidateDims(customerDim, interactionDim, policyDim int) error {
	if len(s.model.CustomerWeights) != customerDim ||
		len(s.model.InteractionWeights) != interactionDim ||
		len(s.model.PolicyWeights) != policyDim {
		return fmt.Errorf("%w: artifact dims (%d,%d,%d) do not match transform dims (%d,%d,%d)",
			domain.ErrScorerUnavailable,
			len(s.model.CustomerWeights), len(s.model.InteractionWeights), len(s.model.PolicyWeights),
			customerDim, interactionDim, policyDim)
	}
	return nil
}

func (s *ArtifactScorer) Score(ctx context.Context, customer, interaction []float64, policies [][]float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(customer) != len(s.model.CustomerWeights) || len(interaction) != len(s.model.InteractionWeights) {
		return nil, fmt.Errorf("feature width mismatch: customer %d, interaction %d", len(customer), len(interaction))
	}

	// the customer/interaction contribution is shared by every candidate
	base := s.model.Bias + dot(customer, s.model.CustomerWeights) + dot(interaction, s.model.InteractionWeights)

	scores := make([]float64, len(policies))
	for i, p := range policies {
		if len(p) != len(s.model.PolicyWeights) {
			return nil, fmt.Errorf("feature width mismatch: policy row %d has %d features", i, len(p))
		}
		scores[i] = sigmoid(base + dot(p, s.model.PolicyWeights))
	}

	return scores, nil
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
