package recommend

import (
	"errors"
	"math"
	"testing"
	"time"

	"policyAdvisor/domain"
)

func testCorpus() Corpus {
	return Corpus{
		Customers: []domain.Customer{
			{CustomerID: 1, Age: 30, CreditScore: 700, Gender: "F", IncomeBracket: "high", EmploymentStatus: "salaried", MaritalStatus: "single", LocationCity: "Mumbai", PreferredPolicyType: "term"},
			{CustomerID: 2, Age: 50, CreditScore: 650, Gender: "M", IncomeBracket: "mid", EmploymentStatus: "self-employed", MaritalStatus: "married", LocationCity: "Delhi", PreferredPolicyType: "health"},
		},
		Policies: []domain.Policy{
			{PolicyID: 10, PolicyType: "term", SumAssured: "1,000,000", PremiumAmount: "12,500.00", PolicyDurationYears: 20, RiskCategory: "low", CustomerTargetGroup: "young"},
			{PolicyID: 11, PolicyType: "health", SumAssured: "INR 500,000", PremiumAmount: "8,000", PolicyDurationYears: 1, RiskCategory: "medium", CustomerTargetGroup: "family"},
		},
		Interactions: []domain.Interaction{
			{InteractionID: 1, CustomerID: 1, PolicyID: 10, Clicked: 1, ViewedDuration: 120, ComparisonCount: 2},
			{InteractionID: 2, CustomerID: 2, PolicyID: 11, Clicked: 0, ViewedDuration: 30, AbandonedCart: 1},
		},
	}
}

func TestFitTransformsEmptyCorpus(t *testing.T) {
	_, err := FitTransforms(Corpus{}, time.Now())
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}

	// policies alone are not enough
	_, err = FitTransforms(Corpus{Policies: testCorpus().Policies}, time.Now())
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestFitTransformsNoInteractions(t *testing.T) {
	corpus := testCorpus()
	corpus.Interactions = nil

	ts, err := FitTransforms(corpus, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the zero-context fallback fits a constant column: mean 0, scale 1
	vec := ts.EncodeInteraction(domain.InteractionContext{})
	for i, v := range vec {
		if v != 0 {
			t.Errorf("zero context column %d encoded to %v, want 0", i, v)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	corpus := testCorpus()
	ts, err := FitTransforms(corpus, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := ts.EncodeCustomer(corpus.Customers[0])
	b := ts.EncodeCustomer(corpus.Customers[0])
	if len(a) != len(b) {
		t.Fatalf("encode width changed between calls: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("column %d differs across identical encodes: %v vs %v", i, a[i], b[i])
		}
	}

	// refitting the same corpus produces identical transforms
	ts2, err := FitTransforms(corpus, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := ts2.EncodeCustomer(corpus.Customers[0])
	for i := range a {
		if a[i] != c[i] {
			t.Errorf("column %d differs across identical fits: %v vs %v", i, a[i], c[i])
		}
	}
}

func TestEncodeWidthMatchesDim(t *testing.T) {
	corpus := testCorpus()
	ts, err := FitTransforms(corpus, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := len(ts.EncodeCustomer(corpus.Customers[0])), ts.Customer.Dim(); got != want {
		t.Errorf("customer vector width %d, Dim %d", got, want)
	}
	if got, want := len(ts.EncodePolicy(corpus.Policies[0])), ts.Policy.Dim(); got != want {
		t.Errorf("policy vector width %d, Dim %d", got, want)
	}
	if got, want := len(ts.EncodeInteraction(domain.InteractionContext{Clicked: 1})), ts.Interaction.Dim(); got != want {
		t.Errorf("interaction vector width %d, Dim %d", got, want)
	}
}

func TestEncodeUnseenCategoryZeroBlock(t *testing.T) {
	corpus := testCorpus()
	ts, err := FitTransforms(corpus, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unseen := corpus.Customers[0]
	unseen.LocationCity = "Atlantis"

	vec := ts.EncodeCustomer(unseen)
	if len(vec) != ts.Customer.Dim() {
		t.Fatalf("unseen category changed vector width: %d vs %d", len(vec), ts.Customer.Dim())
	}

	// locate the city block: numeric cols, then gender, income, employment,
	// marital blocks precede it
	offset := len(ts.Customer.Numeric)
	for _, v := range ts.Customer.Categorical[:4] {
		offset += len(v.Values)
	}
	cityWidth := len(ts.Customer.Categorical[4].Values)
	for i := offset; i < offset+cityWidth; i++ {
		if vec[i] != 0 {
			t.Errorf("unseen city produced non-zero one-hot at column %d: %v", i, vec[i])
		}
	}
}

func TestFitNumericConstantColumn(t *testing.T) {
	stats := fitNumeric([][]float64{{5, 1}, {5, 3}})
	if stats[0].Std != 1 {
		t.Errorf("constant column std = %v, want 1", stats[0].Std)
	}
	if stats[0].Mean != 5 {
		t.Errorf("constant column mean = %v, want 5", stats[0].Mean)
	}

	// population std over {1,3}: mean 2, std 1
	if stats[1].Mean != 2 || math.Abs(stats[1].Std-1) > 1e-12 {
		t.Errorf("got mean=%v std=%v, want mean=2 std=1", stats[1].Mean, stats[1].Std)
	}
}

func TestMonetaryCleansingFlowsIntoScaling(t *testing.T) {
	corpus := testCorpus()
	ts, err := FitTransforms(corpus, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// sum_assured values are 1,000,000 and 500,000: mean 750000, population
	// std 250000, so the first policy standardizes to +1
	vec := ts.EncodePolicy(corpus.Policies[0])
	if math.Abs(vec[0]-1) > 1e-9 {
		t.Errorf("cleansed sum_assured standardized to %v, want 1", vec[0])
	}

	// a malformed monetary string cleanses to 0, still encodes finitely
	dirty := corpus.Policies[0]
	dirty.SumAssured = "not-a-number"
	vec = ts.EncodePolicy(dirty)
	if math.IsNaN(vec[0]) || math.IsInf(vec[0], 0) {
		t.Errorf("malformed sum_assured encoded to %v", vec[0])
	}
}

func TestVocabLookupAfterIndexLoss(t *testing.T) {
	// a vocab deserialized from JSON has no index; lookup must still work
	v := CategoricalVocab{Values: []string{"health", "term"}}

	idx, ok := v.lookup("term")
	if !ok || idx != 1 {
		t.Errorf("lookup(term) = (%d, %v), want (1, true)", idx, ok)
	}
	if _, ok := v.lookup("vehicle"); ok {
		t.Error("lookup(vehicle) matched, want miss")
	}
}
