package preprocessing

import (
	"fmt"
	"math"

	"churnpredictor/internal/apperr"
)

// StandardScaler applies (x-mean)/scale per column with statistics frozen at fit time.
type StandardScaler struct {
	names []string
	mean  []float64
	scale []float64
}

// NewStandardScaler validates the fitted statistics. names may be empty when the
// scaler was fitted without column names. A zero scale leaves the centred column
// unscaled, matching how the statistics were produced.
func NewStandardScaler(names []string, mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, fmt.Errorf("scaler has no columns")
	}
	if len(scale) != len(mean) {
		return nil, fmt.Errorf("scaler has %d means but %d scales", len(mean), len(scale))
	}
	if len(names) != 0 && len(names) != len(mean) {
		return nil, fmt.Errorf("scaler has %d names but %d columns", len(names), len(mean))
	}
	s := &StandardScaler{
		names: append([]string(nil), names...),
		mean:  make([]float64, len(mean)),
		scale: make([]float64, len(scale)),
	}
	for i := range mean {
		if !finite(mean[i]) || !finite(scale[i]) {
			return nil, fmt.Errorf("scaler column %d has non-finite statistics", i)
		}
		if scale[i] < 0 {
			return nil, fmt.Errorf("scaler column %d has negative scale %g", i, scale[i])
		}
		s.mean[i] = mean[i]
		s.scale[i] = scale[i]
		if scale[i] == 0 {
			s.scale[i] = 1
		}
	}
	return s, nil
}

func (s *StandardScaler) Width() int { return len(s.mean) }

func (s *StandardScaler) FeatureNames() []string { return append([]string(nil), s.names...) }

// Transform returns a new scaled row; x is not modified.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.mean) {
		return nil, apperr.New(apperr.KindArtifactIncompatible, "", "scaler expects %d columns, got %d", len(s.mean), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
