package recommend

import (
	"testing"
	"time"
)

func TestExpandCandidatesBroadcast(t *testing.T) {
	corpus := testCorpus()
	ts, err := FitTransforms(corpus, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cs := expandCandidates(ts, corpus.Customers[0], corpus.Interactions[0].Context(), corpus.Policies)

	if cs.Len() != len(corpus.Policies) {
		t.Fatalf("candidate count %d, want %d", cs.Len(), len(corpus.Policies))
	}
	if len(cs.Customer) != ts.Customer.Dim() {
		t.Errorf("customer vector width %d, want %d", len(cs.Customer), ts.Customer.Dim())
	}
	if len(cs.Interaction) != ts.Interaction.Dim() {
		t.Errorf("interaction vector width %d, want %d", len(cs.Interaction), ts.Interaction.Dim())
	}

	// policy rows stay in catalog order with one feature row each
	for i, p := range corpus.Policies {
		if cs.Policies[i].PolicyID != p.PolicyID {
			t.Errorf("candidate %d is policy %d, want %d", i, cs.Policies[i].PolicyID, p.PolicyID)
		}
		if len(cs.PolicyFeatures[i]) != ts.Policy.Dim() {
			t.Errorf("policy row %d width %d, want %d", i, len(cs.PolicyFeatures[i]), ts.Policy.Dim())
		}
	}
}
