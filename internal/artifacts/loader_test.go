package artifacts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnpredictor/internal/apperr"
	"churnpredictor/internal/artifacts"
	"churnpredictor/internal/models"
	"churnpredictor/internal/testutil"
)

func TestLoad_AllFormats(t *testing.T) {
	for _, ext := range []string{".gob", ".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			paths := testutil.WriteArtifacts(t, t.TempDir(), ext)

			b, err := artifacts.Load(paths)
			require.NoError(t, err)

			assert.Equal(t, paths, b.Paths())
			assert.Equal(t, "fixture-ann", b.Classifier().Name())
			assert.Equal(t, testutil.Genders, b.GenderEncoder().Classes())
			assert.Equal(t, testutil.Geographies, b.GeographyEncoder().Categories())
			assert.Equal(t, 12, b.Assembler().Width())

			centred, err := b.Scaler().Transform(testutil.ScalerMean)
			require.NoError(t, err)
			assert.Equal(t, make([]float64, 12), centred)
		})
	}
}

func TestLoad_FormatsAgree(t *testing.T) {
	x := [][]float64{{0.1, -1, 0.5, 0, 2, 0.3, 1, -1, 0, 1, 0, 0}}
	var probs []float64
	for _, ext := range []string{".gob", ".json", ".yaml"} {
		b, err := artifacts.Load(testutil.WriteArtifacts(t, t.TempDir(), ext))
		require.NoError(t, err)
		ps, err := b.Classifier().PredictProba(x)
		require.NoError(t, err)
		probs = append(probs, ps[0])
	}
	assert.Equal(t, probs[0], probs[1])
	assert.Equal(t, probs[0], probs[2])
}

func TestLoad_ShippedArtifacts(t *testing.T) {
	dir := filepath.Join("..", "..", "artifacts")
	b, err := artifacts.Load(artifacts.Paths{
		Classifier:       filepath.Join(dir, "model.json"),
		GenderEncoder:    filepath.Join(dir, "label_encoder_gender.json"),
		GeographyEncoder: filepath.Join(dir, "onehot_encoder_geo.json"),
		Scaler:           filepath.Join(dir, "scaler.json"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"France", "Germany", "Spain"}, b.GeographyEncoder().Categories())
	assert.Equal(t, []string{"Female", "Male"}, b.GenderEncoder().Classes())
}

func TestLoad_MissingFile(t *testing.T) {
	paths := testutil.WriteArtifacts(t, t.TempDir(), ".json")
	require.NoError(t, os.Remove(paths.Scaler))

	_, err := artifacts.Load(paths)
	require.ErrorIs(t, err, apperr.ErrArtifactMissing)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EmptyPath(t *testing.T) {
	paths := testutil.WriteArtifacts(t, t.TempDir(), ".json")
	paths.Classifier = ""

	_, err := artifacts.Load(paths)
	assert.ErrorIs(t, err, apperr.ErrArtifactMissing)
}

func TestLoad_CorruptFile(t *testing.T) {
	paths := testutil.WriteArtifacts(t, t.TempDir(), ".gob")
	require.NoError(t, os.WriteFile(paths.Classifier, []byte("not a gob stream"), 0o644))

	_, err := artifacts.Load(paths)
	assert.ErrorIs(t, err, apperr.ErrArtifactIncompatible)
}

func TestLoad_WrongArtifactInSlot(t *testing.T) {
	paths := testutil.WriteArtifacts(t, t.TempDir(), ".json")
	paths.GenderEncoder = paths.Scaler

	_, err := artifacts.Load(paths)
	assert.ErrorIs(t, err, apperr.ErrArtifactIncompatible)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	paths := testutil.WriteArtifacts(t, t.TempDir(), ".json")
	paths.Classifier = filepath.Join(t.TempDir(), "model.h5")

	_, err := artifacts.Load(paths)
	assert.ErrorIs(t, err, apperr.ErrArtifactIncompatible)
}

func TestBuild_ClassifierWidthMismatch(t *testing.T) {
	set := testutil.Set()
	set.Classifier = models.Spec{
		Kind:     models.KindSequential,
		InputDim: 11,
		Layers: []models.DenseLayer{{
			Units: 1, Activation: "sigmoid",
			Kernel: make11x1(), Bias: []float64{0},
		}},
	}

	_, err := set.Build()
	require.ErrorIs(t, err, apperr.ErrArtifactIncompatible)
	assert.ErrorContains(t, err, "expects 11 inputs")
}

func TestBuild_ScalerWidthMismatch(t *testing.T) {
	set := testutil.Set()
	set.GeographyEncoder.Categories = append(set.GeographyEncoder.Categories, "Portugal")

	_, err := set.Build()
	assert.ErrorIs(t, err, apperr.ErrArtifactIncompatible)
}

func TestBuild_CollectsEveryInvalidPart(t *testing.T) {
	set := testutil.Set()
	set.GenderEncoder.Classes = nil
	set.Scaler.Scale = set.Scaler.Scale[:3]
	set.Classifier.Kind = "svm"

	_, err := set.Build()
	require.ErrorIs(t, err, apperr.ErrArtifactIncompatible)
	assert.ErrorContains(t, err, "gender encoder")
	assert.ErrorContains(t, err, "scaler")
	assert.ErrorContains(t, err, "classifier")
}

func TestSave_RejectsUnknownExtension(t *testing.T) {
	paths := testutil.WriteArtifacts(t, t.TempDir(), ".json")
	paths.Scaler = filepath.Join(t.TempDir(), "scaler.pkl")

	assert.Error(t, artifacts.Save(paths, testutil.Set()))
}

func make11x1() [][]float64 {
	k := make([][]float64, 11)
	for i := range k {
		k[i] = []float64{0.1}
	}
	return k
}
