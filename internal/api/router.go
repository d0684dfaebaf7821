// Package api serves the prediction form and the JSON prediction endpoints.
package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"churnpredictor/internal/churn"
	"churnpredictor/internal/data"
	"churnpredictor/internal/inference"
	"churnpredictor/internal/metrics"
)

//go:generate mockgen -destination=mocks/mock_scorer.go -package=mocks churnpredictor/internal/api Scorer

// Scorer is the prediction backend the handlers call.
type Scorer interface {
	Predict(rec data.CustomerRecord) (inference.Prediction, error)
	PredictBatch(recs []data.CustomerRecord) []churn.BatchItem
	Metadata() churn.Metadata
}

type Options struct {
	// APIKey, when set, is required in the X-API-Key header of /predict and /batch.
	APIKey string
	Logger *zap.Logger
	// Metrics records request counts; MetricsHandler, when set, is served on /metrics.
	Metrics        *metrics.Recorder
	MetricsHandler http.Handler
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))

type server struct {
	scorer Scorer
	logger *zap.Logger
	apiKey string
}

func NewRouter(scorer Scorer, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &server{scorer: scorer, logger: logger, apiKey: opts.APIKey}

	r := gin.New()
	r.Use(recovery(logger), requestLogger(logger))
	if opts.Metrics != nil {
		r.Use(requestMetrics(opts.Metrics))
	}
	r.SetHTMLTemplate(templates)

	r.GET("/", s.handleForm)
	r.POST("/", s.handleFormSubmit)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/model", s.handleModel)
	if opts.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	api := r.Group("/")
	api.Use(s.apiKeyMiddleware)
	api.POST("/predict", s.handlePredict)
	api.POST("/batch", s.handleBatch)

	return r
}

func (s *server) handleModel(c *gin.Context) {
	c.JSON(http.StatusOK, s.scorer.Metadata())
}
