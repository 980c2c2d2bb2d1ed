package recommend

import (
	"math"
	"sort"
	"time"

	"policyAdvisor/domain"
)

// Feature column layout per entity. The column order here is the column
// order of the produced vectors, so it must stay stable across fit and
// encode.

func customerNumeric(c domain.Customer) []float64 {
	return []float64{float64(c.Age), float64(c.PolicyOwnershipCount), float64(c.CreditScore)}
}

func customerCategorical(c domain.Customer) []string {
	return []string{c.Gender, c.IncomeBracket, c.EmploymentStatus, c.MaritalStatus, c.LocationCity, c.PreferredPolicyType}
}

// Monetary strings are cleansed before any transform is fitted or applied.
func policyNumeric(p domain.Policy) []float64 {
	return []float64{domain.ParseMoney(p.SumAssured), domain.ParseMoney(p.PremiumAmount), p.PolicyDurationYears}
}

func policyCategorical(p domain.Policy) []string {
	return []string{p.PolicyType, p.RiskCategory, p.CustomerTargetGroup}
}

func interactionNumeric(i domain.InteractionContext) []float64 {
	return []float64{i.Clicked, i.ViewedDuration, i.ComparisonCount, i.AbandonedCart}
}

// ---- Fitted transforms ----

// NumericStat holds the scaler parameters for one numeric column.
type NumericStat struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// CategoricalVocab is the fixed one-hot vocabulary for one column. Values
// are sorted at fit time so encoding is deterministic; anything outside the
// vocabulary encodes as the all-zero block.
type CategoricalVocab struct {
	Values []string `json:"values"`
	index  map[string]int
}

// EntityTransform is the fitted transform for one entity type.
type EntityTransform struct {
	Numeric     []NumericStat      `json:"numeric"`
	Categorical []CategoricalVocab `json:"categorical"`
}

// Dim is the width of vectors this transform produces.
func (t EntityTransform) Dim() int {
	dim := len(t.Numeric)
	for _, v := range t.Categorical {
		dim += len(v.Values)
	}
	return dim
}

// TransformSet is fitted once against the full historical corpus and then
// held read-only. It must never be refitted against a per-request candidate
// slice: that silently changes scale and vocabulary and breaks comparability
// with the scores the model was trained to produce.
type TransformSet struct {
	Customer    EntityTransform `json:"customer"`
	Policy      EntityTransform `json:"policy"`
	Interaction EntityTransform `json:"interaction"`
	FittedAt    time.Time       `json:"fitted_at"`
	CorpusSize  int             `json:"corpus_size"`
}

// Corpus is the merged historical data the transforms are fitted on.
type Corpus struct {
	Customers    []domain.Customer
	Policies     []domain.Policy
	Interactions []domain.Interaction
}

func (c Corpus) size() int {
	return len(c.Customers) + len(c.Policies) + len(c.Interactions)
}

// FitTransforms estimates scaler parameters and vocabularies over the entire
// corpus. Fails with domain.ErrInsufficientData when the corpus is empty.
func FitTransforms(corpus Corpus, now time.Time) (*TransformSet, error) {
	if len(corpus.Customers) == 0 || len(corpus.Policies) == 0 {
		return nil, domain.ErrInsufficientData
	}

	custNum := make([][]float64, 0, len(corpus.Customers))
	custCat := make([][]string, 0, len(corpus.Customers))
	for _, c := range corpus.Customers {
		custNum = append(custNum, customerNumeric(c))
		custCat = append(custCat, customerCategorical(c))
	}

	polNum := make([][]float64, 0, len(corpus.Policies))
	polCat := make([][]string, 0, len(corpus.Policies))
	for _, p := range corpus.Policies {
		polNum = append(polNum, policyNumeric(p))
		polCat = append(polCat, policyCategorical(p))
	}

	// No interaction history at all still fits: the zero-context default is
	// the only record then, which pins means at zero.
	intNum := make([][]float64, 0, len(corpus.Interactions))
	for _, i := range corpus.Interactions {
		intNum = append(intNum, interactionNumeric(i.Context()))
	}
	if len(intNum) == 0 {
		intNum = append(intNum, interactionNumeric(domain.InteractionContext{}))
	}

	return &TransformSet{
		Customer: EntityTransform{
			Numeric:     fitNumeric(custNum),
			Categorical: fitVocab(custCat),
		},
		Policy: EntityTransform{
			Numeric:     fitNumeric(polNum),
			Categorical: fitVocab(polCat),
		},
		Interaction: EntityTransform{
			Numeric: fitNumeric(intNum),
		},
		FittedAt:   now,
		CorpusSize: corpus.size(),
	}, nil
}

func fitNumeric(rows [][]float64) []NumericStat {
	if len(rows) == 0 {
		return nil
	}
	cols := len(rows[0])
	stats := make([]NumericStat, cols)

	for c := 0; c < cols; c++ {
		sum := 0.0
		for _, row := range rows {
			sum += row[c]
		}
		mean := sum / float64(len(rows))

		sq := 0.0
		for _, row := range rows {
			d := row[c] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(len(rows)))
		if std == 0 {
			// constant column: scale with 1 so encoding stays finite
			std = 1
		}

		stats[c] = NumericStat{Mean: mean, Std: std}
	}

	return stats
}

func fitVocab(rows [][]string) []CategoricalVocab {
	if len(rows) == 0 {
		return nil
	}
	cols := len(rows[0])
	vocabs := make([]CategoricalVocab, cols)

	for c := 0; c < cols; c++ {
		seen := make(map[string]struct{})
		for _, row := range rows {
			seen[row[c]] = struct{}{}
		}

		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)

		index := make(map[string]int, len(values))
		for i, v := range values {
			index[v] = i
		}

		vocabs[c] = CategoricalVocab{Values: values, index: index}
	}

	return vocabs
}

// ---- Encoding ----

// encode produces the standardized-numeric + one-hot vector for one record.
// Pure with respect to a fixed transform: same record in, bit-identical
// vector out. Unseen categories fall into the zero block, never an error.
func encode(num []float64, cat []string, t EntityTransform) []float64 {
	out := make([]float64, 0, t.Dim())

	for c, stat := range t.Numeric {
		v := 0.0
		if c < len(num) {
			v = num[c]
		}
		out = append(out, (v-stat.Mean)/stat.Std)
	}

	for c, vocab := range t.Categorical {
		block := make([]float64, len(vocab.Values))
		if c < len(cat) {
			if idx, ok := vocab.lookup(cat[c]); ok {
				block[idx] = 1
			}
		}
		out = append(out, block...)
	}

	return out
}

func (v CategoricalVocab) lookup(value string) (int, bool) {
	if v.index != nil {
		idx, ok := v.index[value]
		return idx, ok
	}
	// index is rebuilt lazily after JSON round-trips
	for i, s := range v.Values {
		if s == value {
			return i, true
		}
	}
	return 0, false
}

func (t *TransformSet) EncodeCustomer(c domain.Customer) []float64 {
	return encode(customerNumeric(c), customerCategorical(c), t.Customer)
}

func (t *TransformSet) EncodePolicy(p domain.Policy) []float64 {
	return encode(policyNumeric(p), policyCategorical(p), t.Policy)
}

func (t *TransformSet) EncodeInteraction(i domain.InteractionContext) []float64 {
	return encode(interactionNumeric(i), nil, t.Interaction)
}
