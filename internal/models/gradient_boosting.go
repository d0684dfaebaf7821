package models

import (
	"fmt"
	"math"
)

// Stump is a depth-one regression tree on the log-odds scale.
type Stump struct {
	Feature   int     `json:"feature" yaml:"feature"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	LeftVal   float64 `json:"left_val" yaml:"left_val"`
	RightVal  float64 `json:"right_val" yaml:"right_val"`
}

// GradientBoosting sums InitScore and the learning-rate-weighted stump outputs,
// then applies the sigmoid.
type GradientBoosting struct {
	name         string
	inputDim     int
	stumps       []Stump
	learningRate float64
	initScore    float64
}

func newGradientBoosting(name string, inputDim int, stumps []Stump, lr, init float64) (*GradientBoosting, error) {
	if len(stumps) == 0 {
		return nil, fmt.Errorf("gradient boosting has no stumps")
	}
	if lr <= 0 || math.IsNaN(lr) || math.IsInf(lr, 0) {
		return nil, fmt.Errorf("gradient boosting learning_rate must be positive, got %g", lr)
	}
	if math.IsNaN(init) || math.IsInf(init, 0) {
		return nil, fmt.Errorf("gradient boosting init_score is not finite")
	}
	for i, s := range stumps {
		if s.Feature < 0 || s.Feature >= inputDim {
			return nil, fmt.Errorf("stump %d splits on feature %d outside [0,%d)", i, s.Feature, inputDim)
		}
	}
	return &GradientBoosting{
		name:         name,
		inputDim:     inputDim,
		stumps:       append([]Stump(nil), stumps...),
		learningRate: lr,
		initScore:    init,
	}, nil
}

func (gb *GradientBoosting) Name() string { return gb.name }

func (gb *GradientBoosting) InputDim() int { return gb.inputDim }

func (gb *GradientBoosting) PredictProba(X [][]float64) ([]float64, error) {
	if err := checkRows(X, gb.inputDim); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i := range X {
		f := gb.initScore
		for _, t := range gb.stumps {
			inc := t.LeftVal
			if X[i][t.Feature] > t.Threshold {
				inc = t.RightVal
			}
			f += gb.learningRate * inc
		}
		out[i] = sigmoid(f)
	}
	return out, nil
}
