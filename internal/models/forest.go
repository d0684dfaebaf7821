package models

import "fmt"

// Forest averages the leaf probabilities of its trees. It serves both random
// forest and bagged tree ensembles, which differ only in how they were fitted.
type Forest struct {
	name     string
	inputDim int
	trees    []*DTNode
}

func newForest(name string, inputDim int, trees []*DTNode) (*Forest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	for i, t := range trees {
		if err := checkTree(t, inputDim, 0); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &Forest{name: name, inputDim: inputDim, trees: trees}, nil
}

func (f *Forest) Name() string { return f.name }

func (f *Forest) InputDim() int { return f.inputDim }

func (f *Forest) PredictProba(X [][]float64) ([]float64, error) {
	if err := checkRows(X, f.inputDim); err != nil {
		return nil, err
	}
	n := len(X)
	out := make([]float64, n)
	for _, t := range f.trees {
		for i := 0; i < n; i++ {
			out[i] += predictProbaOne(t, X[i])
		}
	}
	m := float64(len(f.trees))
	for i := 0; i < n; i++ {
		out[i] /= m
	}
	return out, nil
}
