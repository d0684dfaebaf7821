package models

import "fmt"

type DTNode struct {
	Feature   int     `json:"feature,omitempty" yaml:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Left      *DTNode `json:"left,omitempty" yaml:"left,omitempty"`
	Right     *DTNode `json:"right,omitempty" yaml:"right,omitempty"`
	IsLeaf    bool    `json:"is_leaf,omitempty" yaml:"is_leaf,omitempty"`
	ProbaLeaf float64 `json:"proba_leaf,omitempty" yaml:"proba_leaf,omitempty"`
}

// DecisionTree routes a row left when x[Feature] <= Threshold and returns the
// positive-class frequency stored in the reached leaf.
type DecisionTree struct {
	name     string
	inputDim int
	root     *DTNode
}

func newDecisionTree(name string, inputDim int, root *DTNode) (*DecisionTree, error) {
	if err := checkTree(root, inputDim, 0); err != nil {
		return nil, err
	}
	return &DecisionTree{name: name, inputDim: inputDim, root: root}, nil
}

func (dt *DecisionTree) Name() string { return dt.name }

func (dt *DecisionTree) InputDim() int { return dt.inputDim }

func (dt *DecisionTree) PredictProba(X [][]float64) ([]float64, error) {
	if err := checkRows(X, dt.inputDim); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i := range X {
		out[i] = predictProbaOne(dt.root, X[i])
	}
	return out, nil
}

func predictProbaOne(n *DTNode, x []float64) float64 {
	for !n.IsLeaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.ProbaLeaf
}

const maxTreeDepth = 64

func checkTree(n *DTNode, inputDim, depth int) error {
	if n == nil {
		return fmt.Errorf("tree has a missing node at depth %d", depth)
	}
	if depth > maxTreeDepth {
		return fmt.Errorf("tree deeper than %d", maxTreeDepth)
	}
	if n.IsLeaf {
		if n.ProbaLeaf < 0 || n.ProbaLeaf > 1 || n.ProbaLeaf != n.ProbaLeaf {
			return fmt.Errorf("leaf probability %g outside [0,1]", n.ProbaLeaf)
		}
		return nil
	}
	if n.Feature < 0 || n.Feature >= inputDim {
		return fmt.Errorf("split on feature %d outside [0,%d)", n.Feature, inputDim)
	}
	if err := checkTree(n.Left, inputDim, depth+1); err != nil {
		return err
	}
	return checkTree(n.Right, inputDim, depth+1)
}
