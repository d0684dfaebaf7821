package inference

import (
	"fmt"
	"math"

	"churnpredictor/internal/apperr"
	"churnpredictor/internal/features"
	"churnpredictor/internal/models"
)

// Predictor runs the shared classifier on feature vectors. Any classifier error,
// panic or out-of-range output becomes an InferenceFailure for that call only.
type Predictor struct {
	clf models.Classifier
}

func NewPredictor(clf models.Classifier) *Predictor {
	return &Predictor{clf: clf}
}

func (p *Predictor) ModelName() string { return p.clf.Name() }

func (p *Predictor) Predict(v features.Vector) (Prediction, error) {
	preds, err := p.PredictBatch([]features.Vector{v})
	if err != nil {
		return Prediction{}, err
	}
	return preds[0], nil
}

func (p *Predictor) PredictBatch(vs []features.Vector) (preds []Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			preds = nil
			err = apperr.New(apperr.KindInferenceFailure, "", "classifier %s panicked: %v", p.clf.Name(), r)
		}
	}()

	X := make([][]float64, len(vs))
	for i, v := range vs {
		X[i] = v
	}
	probs, err := p.clf.PredictProba(X)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInferenceFailure, err, "classifier %s", p.clf.Name())
	}
	if len(probs) != len(vs) {
		return nil, apperr.New(apperr.KindInferenceFailure, "", "classifier %s returned %d outputs for %d rows", p.clf.Name(), len(probs), len(vs))
	}
	preds = make([]Prediction, len(probs))
	for i, prob := range probs {
		if err := checkProbability(prob); err != nil {
			return nil, apperr.Wrap(apperr.KindInferenceFailure, err, "classifier %s row %d", p.clf.Name(), i)
		}
		preds[i] = NewPrediction(prob)
	}
	return preds, nil
}

func checkProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("probability %v outside [0,1]", p)
	}
	return nil
}
