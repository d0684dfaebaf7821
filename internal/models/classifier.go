package models

import (
	"fmt"
	"math"
)

// Classifier is a pre-trained binary model. PredictProba returns one probability
// of the positive class per row. Implementations are read-only after Build and
// safe for concurrent use.
type Classifier interface {
	Name() string
	InputDim() int
	PredictProba(X [][]float64) ([]float64, error)
}

type Kind string

const (
	KindSequential       Kind = "sequential"
	KindDecisionTree     Kind = "decision_tree"
	KindForest           Kind = "forest"
	KindGradientBoosting Kind = "gradient_boosting"
)

// Spec is the serialized form of a classifier. Only the fields of its Kind are used.
type Spec struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	InputDim int    `json:"input_dim" yaml:"input_dim"`

	// sequential
	Layers []DenseLayer `json:"layers,omitempty" yaml:"layers,omitempty"`

	// decision_tree, forest
	Root  *DTNode   `json:"root,omitempty" yaml:"root,omitempty"`
	Trees []*DTNode `json:"trees,omitempty" yaml:"trees,omitempty"`

	// gradient_boosting
	Stumps       []Stump `json:"stumps,omitempty" yaml:"stumps,omitempty"`
	LearningRate float64 `json:"learning_rate,omitempty" yaml:"learning_rate,omitempty"`
	InitScore    float64 `json:"init_score,omitempty" yaml:"init_score,omitempty"`
}

// Build validates s and returns the classifier it describes.
func (s Spec) Build() (Classifier, error) {
	if s.InputDim <= 0 {
		return nil, fmt.Errorf("classifier input_dim must be positive, got %d", s.InputDim)
	}
	var (
		clf Classifier
		err error
	)
	switch s.Kind {
	case KindSequential:
		clf, err = newSequential(s.displayName("Sequential"), s.InputDim, s.Layers)
	case KindDecisionTree:
		clf, err = newDecisionTree(s.displayName("DecisionTree"), s.InputDim, s.Root)
	case KindForest:
		clf, err = newForest(s.displayName("Forest"), s.InputDim, s.Trees)
	case KindGradientBoosting:
		clf, err = newGradientBoosting(s.displayName("GradientBoosting"), s.InputDim, s.Stumps, s.LearningRate, s.InitScore)
	default:
		return nil, fmt.Errorf("unknown classifier kind %q", s.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s classifier: %w", s.Kind, err)
	}
	return clf, nil
}

func (s Spec) displayName(def string) string {
	if s.Name != "" {
		return s.Name
	}
	return def
}

func checkRows(X [][]float64, dim int) error {
	for i, x := range X {
		if len(x) != dim {
			return fmt.Errorf("row %d has %d features, classifier expects %d", i, len(x), dim)
		}
	}
	return nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1.0 + e)
}
