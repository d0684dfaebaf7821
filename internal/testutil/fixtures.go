// Package testutil builds a small, self-consistent artifact set for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"churnpredictor/internal/artifacts"
	"churnpredictor/internal/features"
	"churnpredictor/internal/models"
	"churnpredictor/internal/preprocessing"
)

var (
	Geographies = []string{"France", "Germany", "Spain"}
	Genders     = []string{"Female", "Male"}

	ScalerMean  = []float64{650.5, 0.55, 38.9, 5.0, 76485.9, 1.53, 0.71, 0.52, 100090.2, 0.50, 0.25, 0.25}
	ScalerScale = []float64{96.6, 0.50, 10.5, 2.9, 62394.3, 0.58, 0.46, 0.50, 57507.6, 0.50, 0.43, 0.43}
)

// ClassifierSpec returns a 12-3-1 network with fixed weights.
func ClassifierSpec() models.Spec {
	return models.Spec{
		Kind:     models.KindSequential,
		Name:     "fixture-ann",
		InputDim: 12,
		Layers: []models.DenseLayer{
			{
				Units:      3,
				Activation: "relu",
				Kernel: [][]float64{
					{-0.2, 0, 0},
					{-0.3, 0, 0},
					{0.9, 0, 0.2},
					{0, 0, -0.1},
					{0.3, 0, 0},
					{0, 0.8, 0},
					{0, 0, 0},
					{-0.6, 0, 0},
					{0, 0, 0},
					{0, 0, -0.2},
					{0.5, 0, 0.3},
					{0, 0, -0.1},
				},
				Bias: []float64{0.1, 0, 0},
			},
			{
				Units:      1,
				Activation: "sigmoid",
				Kernel:     [][]float64{{1.2}, {0.7}, {0.5}},
				Bias:       []float64{-1.3},
			},
		},
	}
}

// Set returns the undecoded form of the fixture artifacts.
func Set() artifacts.Set {
	geoNames := make([]string, len(Geographies))
	for i, g := range Geographies {
		geoNames[i] = "Geography_" + g
	}
	return artifacts.Set{
		Classifier:       ClassifierSpec(),
		GenderEncoder:    artifacts.LabelEncoderFile{Feature: "Gender", Classes: append([]string(nil), Genders...)},
		GeographyEncoder: artifacts.OneHotEncoderFile{Feature: "Geography", Categories: append([]string(nil), Geographies...)},
		Scaler: artifacts.ScalerFile{
			FeatureNames: features.Columns(geoNames),
			Mean:         append([]float64(nil), ScalerMean...),
			Scale:        append([]float64(nil), ScalerScale...),
		},
	}
}

func GenderEncoder(t testing.TB) *preprocessing.LabelEncoder {
	t.Helper()
	enc, err := preprocessing.NewLabelEncoder("Gender", Genders)
	require.NoError(t, err)
	return enc
}

func GeographyEncoder(t testing.TB) *preprocessing.OneHotEncoder {
	t.Helper()
	enc, err := preprocessing.NewOneHotEncoder("Geography", Geographies)
	require.NoError(t, err)
	return enc
}

func Scaler(t testing.TB) *preprocessing.StandardScaler {
	t.Helper()
	s := Set().Scaler
	scaler, err := preprocessing.NewStandardScaler(s.FeatureNames, s.Mean, s.Scale)
	require.NoError(t, err)
	return scaler
}

func Assembler(t testing.TB) *features.Assembler {
	t.Helper()
	asm, err := features.NewAssembler(GenderEncoder(t), GeographyEncoder(t), Scaler(t))
	require.NoError(t, err)
	return asm
}

func Classifier(t testing.TB) models.Classifier {
	t.Helper()
	clf, err := ClassifierSpec().Build()
	require.NoError(t, err)
	return clf
}

func Bundle(t testing.TB) *artifacts.Bundle {
	t.Helper()
	b, err := Set().Build()
	require.NoError(t, err)
	return b
}

// WriteArtifacts saves the fixture set under dir with the given extension
// (".gob", ".json" or ".yaml") and returns the paths.
func WriteArtifacts(t testing.TB, dir, ext string) artifacts.Paths {
	t.Helper()
	paths := artifacts.Paths{
		Classifier:       filepath.Join(dir, "model"+ext),
		GenderEncoder:    filepath.Join(dir, "label_encoder_gender"+ext),
		GeographyEncoder: filepath.Join(dir, "onehot_encoder_geo"+ext),
		Scaler:           filepath.Join(dir, "scaler"+ext),
	}
	require.NoError(t, artifacts.Save(paths, Set()))
	return paths
}
