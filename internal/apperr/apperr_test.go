package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"churnpredictor/internal/apperr"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := apperr.New(apperr.KindUnknownCategory, "Geography", "value %q not fitted", "Italy")

	assert.ErrorIs(t, err, apperr.ErrUnknownCategory)
	assert.NotErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Equal(t, `unknown_category [Geography]: value "Italy" not fitted`, err.Error())
}

func TestError_WrappedChain(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("loading scaler: %w", apperr.Wrap(apperr.KindArtifactIncompatible, cause, "decode %s", "scaler.gob"))

	assert.ErrorIs(t, err, apperr.ErrArtifactIncompatible)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperr.KindArtifactIncompatible, apperr.KindOf(err))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, apperr.Kind(""), apperr.KindOf(errors.New("boom")))
	assert.False(t, apperr.IsRequestScoped(errors.New("boom")))
}

func TestIsRequestScoped(t *testing.T) {
	assert.True(t, apperr.IsRequestScoped(apperr.New(apperr.KindInvalidInput, "Age", "out of range")))
	assert.True(t, apperr.IsRequestScoped(apperr.New(apperr.KindInferenceFailure, "", "nan")))
	assert.False(t, apperr.IsRequestScoped(apperr.New(apperr.KindArtifactMissing, "", "gone")))
}
