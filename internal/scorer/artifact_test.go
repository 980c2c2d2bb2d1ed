package scorer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"policyAdvisor/domain"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "twotower.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

const validArtifact = `{
	"version": "test",
	"customer_weights": [0.5, -0.2],
	"interaction_weights": [1.0],
	"policy_weights": [0.3, 0.3, -0.1],
	"bias": 0.1
}`

func TestNewArtifactScorer(t *testing.T) {
	s, err := NewArtifactScorer(writeArtifact(t, validArtifact))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.ValidateDims(2, 1, 3); err != nil {
		t.Errorf("dims should match: %v", err)
	}
}

func TestNewArtifactScorerFailures(t *testing.T) {
	cases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{"bad json", func(t *testing.T) string { return writeArtifact(t, "{") }},
		{"empty weights", func(t *testing.T) string { return writeArtifact(t, `{"bias": 1}`) }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewArtifactScorer(c.path(t))
			if !errors.Is(err, domain.ErrScorerUnavailable) {
				t.Fatalf("expected ErrScorerUnavailable, got %v", err)
			}
		})
	}
}

func TestValidateDimsMismatch(t *testing.T) {
	s, err := NewArtifactScorer(writeArtifact(t, validArtifact))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.ValidateDims(5, 1, 3); !errors.Is(err, domain.ErrScorerUnavailable) {
		t.Errorf("expected ErrScorerUnavailable on customer dim mismatch, got %v", err)
	}
}

func TestScore(t *testing.T) {
	s, err := NewArtifactScorer(writeArtifact(t, validArtifact))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	customer := []float64{1, 0}
	interaction := []float64{0.5}
	policies := [][]float64{
		{1, 0, 0},
		{0, 0, 1},
	}

	scores, err := s.Score(context.Background(), customer, interaction, policies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != len(policies) {
		t.Fatalf("got %d scores, want %d", len(scores), len(policies))
	}

	for i, v := range scores {
		if v <= 0 || v >= 1 {
			t.Errorf("score %d = %v, want sigmoid output in (0, 1)", i, v)
		}
	}

	// policy 0 carries +0.3 over policy 1's -0.1 on the shared base
	if scores[0] <= scores[1] {
		t.Errorf("scores not ordered by policy contribution: %v vs %v", scores[0], scores[1])
	}

	// purity: same inputs, same outputs
	again, err := s.Score(context.Background(), customer, interaction, policies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range scores {
		if scores[i] != again[i] {
			t.Errorf("score %d changed between identical calls", i)
		}
	}
}

func TestScoreWidthMismatch(t *testing.T) {
	s, err := NewArtifactScorer(writeArtifact(t, validArtifact))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Score(context.Background(), []float64{1}, []float64{0.5}, nil); err == nil {
		t.Error("expected error on customer width mismatch")
	}

	_, err = s.Score(context.Background(), []float64{1, 0}, []float64{0.5}, [][]float64{{1}})
	if err == nil {
		t.Error("expected error on policy row width mismatch")
	}
}
