package models_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnpredictor/internal/models"
)

func logistic(z float64) float64 { return 1 / (1 + math.Exp(-z)) }

func TestSequential_ForwardPass(t *testing.T) {
	spec := models.Spec{
		Kind:     models.KindSequential,
		InputDim: 2,
		Layers: []models.DenseLayer{
			{Units: 2, Activation: "relu", Kernel: [][]float64{{1, -1}, {2, 0}}, Bias: []float64{0, 0.5}},
			{Units: 1, Activation: "sigmoid", Kernel: [][]float64{{0.5}, {-1}}, Bias: []float64{0.1}},
		},
	}
	clf, err := spec.Build()
	require.NoError(t, err)
	assert.Equal(t, "Sequential", clf.Name())
	assert.Equal(t, 2, clf.InputDim())

	// x=(1,1): hidden = relu(1+2, -1+0+0.5) = (3, 0); out = sigmoid(1.5 - 0 + 0.1)
	// x=(-1,0): hidden = relu(-1, 1.5) = (0, 1.5); out = sigmoid(0 - 1.5 + 0.1)
	ps, err := clf.PredictProba([][]float64{{1, 1}, {-1, 0}})
	require.NoError(t, err)
	assert.InDelta(t, logistic(1.6), ps[0], 1e-12)
	assert.InDelta(t, logistic(-1.4), ps[1], 1e-12)
}

func TestSequential_DoesNotModifyInput(t *testing.T) {
	spec := models.Spec{
		Kind:     models.KindSequential,
		InputDim: 1,
		Layers:   []models.DenseLayer{{Units: 1, Activation: "sigmoid", Kernel: [][]float64{{3}}, Bias: []float64{0}}},
	}
	clf, err := spec.Build()
	require.NoError(t, err)

	x := [][]float64{{2}}
	_, err = clf.PredictProba(x)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2}}, x)
}

func TestSequential_RejectsBadShapes(t *testing.T) {
	cases := map[string]models.Spec{
		"no layers": {Kind: models.KindSequential, InputDim: 2},
		"not sigmoid output": {Kind: models.KindSequential, InputDim: 1, Layers: []models.DenseLayer{
			{Units: 1, Activation: "linear", Kernel: [][]float64{{1}}, Bias: []float64{0}},
		}},
		"kernel rows": {Kind: models.KindSequential, InputDim: 2, Layers: []models.DenseLayer{
			{Units: 1, Activation: "sigmoid", Kernel: [][]float64{{1}}, Bias: []float64{0}},
		}},
		"bias length": {Kind: models.KindSequential, InputDim: 1, Layers: []models.DenseLayer{
			{Units: 1, Activation: "sigmoid", Kernel: [][]float64{{1}}, Bias: []float64{0, 1}},
		}},
		"activation": {Kind: models.KindSequential, InputDim: 1, Layers: []models.DenseLayer{
			{Units: 1, Activation: "swish", Kernel: [][]float64{{1}}, Bias: []float64{0}},
			{Units: 1, Activation: "sigmoid", Kernel: [][]float64{{1}}, Bias: []float64{0}},
		}},
		"unknown kind": {Kind: "svm", InputDim: 1},
		"zero dim":     {Kind: models.KindSequential},
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			clf, err := spec.Build()
			assert.Error(t, err)
			assert.Nil(t, clf)
		})
	}
}

func TestPredictProba_WrongWidth(t *testing.T) {
	spec := models.Spec{
		Kind:     models.KindSequential,
		InputDim: 2,
		Layers:   []models.DenseLayer{{Units: 1, Activation: "sigmoid", Kernel: [][]float64{{1}, {1}}, Bias: []float64{0}}},
	}
	clf, err := spec.Build()
	require.NoError(t, err)

	_, err = clf.PredictProba([][]float64{{1, 2, 3}})
	assert.ErrorContains(t, err, "expects 2")
}

func stump(feature int, thr, leftP, rightP float64) *models.DTNode {
	return &models.DTNode{
		Feature:   feature,
		Threshold: thr,
		Left:      &models.DTNode{IsLeaf: true, ProbaLeaf: leftP},
		Right:     &models.DTNode{IsLeaf: true, ProbaLeaf: rightP},
	}
}

func TestDecisionTree(t *testing.T) {
	spec := models.Spec{Kind: models.KindDecisionTree, Name: "churn-dt", InputDim: 3, Root: stump(1, 0.5, 0.1, 0.8)}
	clf, err := spec.Build()
	require.NoError(t, err)
	assert.Equal(t, "churn-dt", clf.Name())

	ps, err := clf.PredictProba([][]float64{{0, 0.5, 0}, {0, 0.51, 0}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.8}, ps)
}

func TestDecisionTree_RejectsBrokenTree(t *testing.T) {
	broken := stump(0, 0, 0.2, 0.3)
	broken.Right = nil
	_, err := models.Spec{Kind: models.KindDecisionTree, InputDim: 1, Root: broken}.Build()
	assert.ErrorContains(t, err, "missing node")

	_, err = models.Spec{Kind: models.KindDecisionTree, InputDim: 1, Root: stump(4, 0, 0.2, 0.3)}.Build()
	assert.ErrorContains(t, err, "feature 4")

	_, err = models.Spec{Kind: models.KindDecisionTree, InputDim: 1, Root: stump(0, 0, 0.2, 1.3)}.Build()
	assert.ErrorContains(t, err, "outside [0,1]")
}

func TestForest_AveragesTrees(t *testing.T) {
	spec := models.Spec{
		Kind:     models.KindForest,
		InputDim: 1,
		Trees:    []*models.DTNode{stump(0, 0, 0.2, 0.6), stump(0, 1, 0.4, 1.0)},
	}
	clf, err := spec.Build()
	require.NoError(t, err)

	ps, err := clf.PredictProba([][]float64{{-1}, {0.5}, {2}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.3, 0.5, 0.8}, ps, 1e-12)
}

func TestGradientBoosting(t *testing.T) {
	spec := models.Spec{
		Kind:         models.KindGradientBoosting,
		InputDim:     2,
		LearningRate: 0.5,
		InitScore:    -1,
		Stumps: []models.Stump{
			{Feature: 0, Threshold: 0, LeftVal: -1, RightVal: 2},
			{Feature: 1, Threshold: 10, LeftVal: 0.5, RightVal: -0.5},
		},
	}
	clf, err := spec.Build()
	require.NoError(t, err)

	ps, err := clf.PredictProba([][]float64{{1, 5}, {-1, 20}})
	require.NoError(t, err)
	assert.InDelta(t, logistic(-1+0.5*2+0.5*0.5), ps[0], 1e-12)
	assert.InDelta(t, logistic(-1+0.5*-1+0.5*-0.5), ps[1], 1e-12)
}

func TestGradientBoosting_RejectsBadParams(t *testing.T) {
	base := models.Spec{Kind: models.KindGradientBoosting, InputDim: 1, LearningRate: 0.1,
		Stumps: []models.Stump{{Feature: 0}}}

	noRate := base
	noRate.LearningRate = 0
	_, err := noRate.Build()
	assert.Error(t, err)

	badFeature := base
	badFeature.Stumps = []models.Stump{{Feature: 1}}
	_, err = badFeature.Build()
	assert.Error(t, err)

	_, err = base.Build()
	assert.NoError(t, err)
}
