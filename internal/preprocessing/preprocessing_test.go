package preprocessing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnpredictor/internal/apperr"
	"churnpredictor/internal/preprocessing"
)

func TestLabelEncoder_Transform(t *testing.T) {
	enc, err := preprocessing.NewLabelEncoder("Gender", []string{"Female", "Male"})
	require.NoError(t, err)

	code, err := enc.Transform("Female")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	code, err = enc.Transform("Male")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestLabelEncoder_UnknownClass(t *testing.T) {
	enc, err := preprocessing.NewLabelEncoder("Gender", []string{"Female", "Male"})
	require.NoError(t, err)

	for _, v := range []string{"female", "", "Other"} {
		_, err := enc.Transform(v)
		assert.ErrorIs(t, err, apperr.ErrUnknownCategory, v)
	}
}

func TestLabelEncoder_RejectsBadClassList(t *testing.T) {
	_, err := preprocessing.NewLabelEncoder("Gender", nil)
	assert.Error(t, err)
	_, err = preprocessing.NewLabelEncoder("Gender", []string{"Male", "Male"})
	assert.ErrorContains(t, err, "twice")
	_, err = preprocessing.NewLabelEncoder("", []string{"Male"})
	assert.Error(t, err)
}

func TestLabelEncoder_ClassesIsCopy(t *testing.T) {
	enc, err := preprocessing.NewLabelEncoder("Gender", []string{"Female", "Male"})
	require.NoError(t, err)

	classes := enc.Classes()
	classes[0] = "Mutated"
	code, err := enc.Transform("Female")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"Female", "Male"}, enc.Classes())
}

func TestOneHotEncoder(t *testing.T) {
	enc, err := preprocessing.NewOneHotEncoder("Geography", []string{"France", "Germany", "Spain"})
	require.NoError(t, err)

	assert.Equal(t, 3, enc.Width())
	assert.Equal(t, []string{"Geography_France", "Geography_Germany", "Geography_Spain"}, enc.FeatureNames())

	v, err := enc.Transform("Germany")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, v)

	v, err = enc.Transform("Italy")
	assert.ErrorIs(t, err, apperr.ErrUnknownCategory)
	assert.Nil(t, v)
}

func TestStandardScaler_Transform(t *testing.T) {
	s, err := preprocessing.NewStandardScaler([]string{"a", "b", "c"}, []float64{10, 0, 5}, []float64{2, 1, 0})
	require.NoError(t, err)

	x := []float64{14, -3, 7}
	out, err := s.Transform(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, -3, 2}, out)
	assert.Equal(t, []float64{14, -3, 7}, x, "input must not be modified")
}

func TestStandardScaler_WidthMismatch(t *testing.T) {
	s, err := preprocessing.NewStandardScaler(nil, []float64{0, 0}, []float64{1, 1})
	require.NoError(t, err)

	_, err = s.Transform([]float64{1, 2, 3})
	assert.ErrorIs(t, err, apperr.ErrArtifactIncompatible)
}

func TestStandardScaler_RejectsBadStatistics(t *testing.T) {
	_, err := preprocessing.NewStandardScaler(nil, []float64{0, 1}, []float64{1})
	assert.Error(t, err)
	_, err = preprocessing.NewStandardScaler(nil, []float64{math.NaN()}, []float64{1})
	assert.Error(t, err)
	_, err = preprocessing.NewStandardScaler(nil, []float64{0}, []float64{-1})
	assert.Error(t, err)
	_, err = preprocessing.NewStandardScaler([]string{"a"}, []float64{0, 1}, []float64{1, 1})
	assert.Error(t, err)
}
