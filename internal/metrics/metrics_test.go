package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnpredictor/internal/metrics"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	r.ObservePrediction("high_risk", 0.8)
	r.ObservePrediction("high_risk", 0.9)
	r.ObservePrediction("low_risk", 0.1)
	r.ObserveRejection("unknown_category")
	r.ObserveRequest("POST", "/predict", 200, 3*time.Millisecond)

	n, err := promtest.GatherAndCount(reg, "churn_predictions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = promtest.GatherAndCount(reg, "churn_prediction_rejections_total", "churn_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New(prometheus.NewRegistry())
		metrics.New(prometheus.NewRegistry())
	})
}
