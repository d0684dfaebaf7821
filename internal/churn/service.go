// Package churn scores customer records against the loaded artifacts.
package churn

import (
	"go.uber.org/zap"

	"churnpredictor/internal/apperr"
	"churnpredictor/internal/artifacts"
	"churnpredictor/internal/data"
	"churnpredictor/internal/features"
	"churnpredictor/internal/inference"
	"churnpredictor/internal/metrics"
)

// Metadata describes the loaded artifacts to clients building input forms.
type Metadata struct {
	Model       string   `json:"model"`
	Columns     []string `json:"columns"`
	Geographies []string `json:"geographies"`
	Genders     []string `json:"genders"`
	Threshold   float64  `json:"threshold"`
}

// BatchItem holds either a prediction or the error that rejected that record.
type BatchItem struct {
	Prediction *inference.Prediction
	Err        error
}

// Service is safe for concurrent use: the bundle is read-only and every call
// builds its own feature vector.
type Service struct {
	bundle    *artifacts.Bundle
	assembler *features.Assembler
	predictor *inference.Predictor
	metrics   *metrics.Recorder
	logger    *zap.Logger
}

func NewService(bundle *artifacts.Bundle, rec *metrics.Recorder, logger *zap.Logger) *Service {
	return &Service{
		bundle:    bundle,
		assembler: bundle.Assembler(),
		predictor: inference.NewPredictor(bundle.Classifier()),
		metrics:   rec,
		logger:    logger,
	}
}

func (s *Service) Predict(rec data.CustomerRecord) (inference.Prediction, error) {
	vec, err := s.assembler.Vectorize(rec)
	if err != nil {
		s.reject(err)
		return inference.Prediction{}, err
	}
	pred, err := s.predictor.Predict(vec)
	if err != nil {
		s.reject(err)
		return inference.Prediction{}, err
	}
	s.metrics.ObservePrediction(string(pred.Label), pred.Probability)
	return pred, nil
}

// PredictBatch scores each record independently; one rejected record does not
// affect the others.
func (s *Service) PredictBatch(recs []data.CustomerRecord) []BatchItem {
	out := make([]BatchItem, len(recs))
	for i, rec := range recs {
		pred, err := s.Predict(rec)
		if err != nil {
			out[i] = BatchItem{Err: err}
			continue
		}
		out[i] = BatchItem{Prediction: &pred}
	}
	return out
}

func (s *Service) Metadata() Metadata {
	return Metadata{
		Model:       s.predictor.ModelName(),
		Columns:     s.assembler.Columns(),
		Geographies: s.bundle.GeographyEncoder().Categories(),
		Genders:     s.bundle.GenderEncoder().Classes(),
		Threshold:   inference.Threshold,
	}
}

func (s *Service) reject(err error) {
	kind := apperr.KindOf(err)
	s.metrics.ObserveRejection(string(kind))
	if kind == apperr.KindInferenceFailure || !apperr.IsRequestScoped(err) {
		s.logger.Error("inference failed", zap.String("model", s.predictor.ModelName()),
			zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	s.logger.Debug("prediction rejected", zap.String("kind", string(kind)), zap.Error(err))
}
