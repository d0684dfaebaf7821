package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DenseLayer is one fully connected layer. Kernel is laid out [inputs][units].
type DenseLayer struct {
	Units      int         `json:"units" yaml:"units"`
	Activation string      `json:"activation" yaml:"activation"`
	Kernel     [][]float64 `json:"kernel" yaml:"kernel"`
	Bias       []float64   `json:"bias" yaml:"bias"`
}

type denseLayer struct {
	w   *mat.Dense
	b   *mat.VecDense
	act func(float64) float64
}

// Sequential is a stack of dense layers ending in a single sigmoid unit.
type Sequential struct {
	name     string
	inputDim int
	layers   []denseLayer
}

var activations = map[string]func(float64) float64{
	"linear":  func(z float64) float64 { return z },
	"relu":    func(z float64) float64 { return math.Max(0, z) },
	"sigmoid": sigmoid,
	"tanh":    math.Tanh,
}

func newSequential(name string, inputDim int, layers []DenseLayer) (*Sequential, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("sequential classifier has no layers")
	}
	last := layers[len(layers)-1]
	if last.Units != 1 || last.Activation != "sigmoid" {
		return nil, fmt.Errorf("sequential classifier must end in 1 sigmoid unit, got %d %s", last.Units, last.Activation)
	}
	seq := &Sequential{name: name, inputDim: inputDim, layers: make([]denseLayer, 0, len(layers))}
	in := inputDim
	for li, l := range layers {
		act, ok := activations[l.Activation]
		if !ok {
			return nil, fmt.Errorf("layer %d: unsupported activation %q", li, l.Activation)
		}
		if l.Units <= 0 {
			return nil, fmt.Errorf("layer %d: units must be positive", li)
		}
		if len(l.Kernel) != in {
			return nil, fmt.Errorf("layer %d: kernel has %d rows, want %d inputs", li, len(l.Kernel), in)
		}
		if len(l.Bias) != l.Units {
			return nil, fmt.Errorf("layer %d: bias has %d values, want %d units", li, len(l.Bias), l.Units)
		}
		flat := make([]float64, 0, in*l.Units)
		for r, row := range l.Kernel {
			if len(row) != l.Units {
				return nil, fmt.Errorf("layer %d: kernel row %d has %d values, want %d", li, r, len(row), l.Units)
			}
			flat = append(flat, row...)
		}
		seq.layers = append(seq.layers, denseLayer{
			w:   mat.NewDense(in, l.Units, flat),
			b:   mat.NewVecDense(l.Units, append([]float64(nil), l.Bias...)),
			act: act,
		})
		in = l.Units
	}
	return seq, nil
}

func (s *Sequential) Name() string { return s.name }

func (s *Sequential) InputDim() int { return s.inputDim }

func (s *Sequential) PredictProba(X [][]float64) ([]float64, error) {
	if err := checkRows(X, s.inputDim); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = s.forward(x)
	}
	return out, nil
}

func (s *Sequential) forward(x []float64) float64 {
	h := mat.NewVecDense(len(x), append([]float64(nil), x...))
	for _, l := range s.layers {
		var z mat.VecDense
		z.MulVec(l.w.T(), h)
		z.AddVec(&z, l.b)
		for j := 0; j < z.Len(); j++ {
			z.SetVec(j, l.act(z.AtVec(j)))
		}
		h = &z
	}
	return h.AtVec(0)
}
