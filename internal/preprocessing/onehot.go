package preprocessing

import "churnpredictor/internal/apperr"

// OneHotEncoder expands one categorical value into a fixed-width indicator block,
// one column per fitted category, in fitted order.
type OneHotEncoder struct {
	feature    string
	categories []string
	index      map[string]int
}

func NewOneHotEncoder(feature string, categories []string) (*OneHotEncoder, error) {
	index, err := closedSet(feature, categories)
	if err != nil {
		return nil, err
	}
	return &OneHotEncoder{feature: feature, categories: append([]string(nil), categories...), index: index}, nil
}

func (e *OneHotEncoder) Feature() string { return e.feature }

func (e *OneHotEncoder) Categories() []string { return append([]string(nil), e.categories...) }

func (e *OneHotEncoder) Width() int { return len(e.categories) }

// FeatureNames returns the output column names, "<feature>_<category>".
func (e *OneHotEncoder) FeatureNames() []string {
	out := make([]string, len(e.categories))
	for i, c := range e.categories {
		out[i] = e.feature + "_" + c
	}
	return out
}

// Transform returns a fresh indicator block for v. Categories outside the fitted
// list are rejected rather than encoded as all zeros.
func (e *OneHotEncoder) Transform(v string) ([]float64, error) {
	i, ok := e.index[v]
	if !ok {
		return nil, apperr.New(apperr.KindUnknownCategory, e.feature, "%q is not one of the fitted categories %v", v, e.categories)
	}
	out := make([]float64, len(e.categories))
	out[i] = 1
	return out, nil
}
