package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"churnpredictor/internal/apperr"
	"churnpredictor/internal/data"
	"churnpredictor/internal/inference"
)

const maxBatch = 1000

// predictRequest uses pointers so an absent field is a malformed request (400)
// while a present but out-of-domain value is an InvalidInput rejection (422).
type predictRequest struct {
	CreditScore     *int     `json:"credit_score" binding:"required"`
	Geography       *string  `json:"geography" binding:"required"`
	Gender          *string  `json:"gender" binding:"required"`
	Age             *int     `json:"age" binding:"required"`
	Tenure          *int     `json:"tenure" binding:"required"`
	Balance         *float64 `json:"balance" binding:"required"`
	NumOfProducts   *int     `json:"num_of_products" binding:"required"`
	HasCrCard       *bool    `json:"has_cr_card" binding:"required"`
	IsActiveMember  *bool    `json:"is_active_member" binding:"required"`
	EstimatedSalary *float64 `json:"estimated_salary" binding:"required"`
}

func (r predictRequest) record() data.CustomerRecord {
	return data.CustomerRecord{
		CreditScore:     *r.CreditScore,
		Geography:       *r.Geography,
		Gender:          *r.Gender,
		Age:             *r.Age,
		Tenure:          *r.Tenure,
		Balance:         *r.Balance,
		NumOfProducts:   *r.NumOfProducts,
		HasCrCard:       *r.HasCrCard,
		IsActiveMember:  *r.IsActiveMember,
		EstimatedSalary: *r.EstimatedSalary,
	}
}

type predictResponse struct {
	Probability float64         `json:"probability"`
	Label       inference.Label `json:"label"`
	Model       string          `json:"model"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type batchResult struct {
	Probability *float64        `json:"probability,omitempty"`
	Label       inference.Label `json:"label,omitempty"`
	Error       string          `json:"error,omitempty"`
	Message     string          `json:"message,omitempty"`
	Field       string          `json:"field,omitempty"`
}

func (s *server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	pred, err := s.scorer.Predict(req.record())
	if err != nil {
		c.JSON(statusFor(err), toErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, predictResponse{
		Probability: pred.Probability,
		Label:       pred.Label,
		Model:       s.scorer.Metadata().Model,
	})
}

func (s *server) handleBatch(c *gin.Context) {
	var items []predictRequest
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if len(items) > maxBatch {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "invalid_request", Message: "batch exceeds 1000 records"})
		return
	}
	recs := make([]data.CustomerRecord, len(items))
	for i, it := range items {
		recs[i] = it.record()
	}
	results := s.scorer.PredictBatch(recs)
	out := make([]batchResult, len(results))
	for i, r := range results {
		if r.Err != nil {
			e := toErrorResponse(r.Err)
			out[i] = batchResult{Error: e.Error, Message: e.Message, Field: e.Field}
			continue
		}
		p := r.Prediction.Probability
		out[i] = batchResult{Probability: &p, Label: r.Prediction.Label}
	}
	c.JSON(http.StatusOK, out)
}

func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput, apperr.KindUnknownCategory:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func toErrorResponse(err error) errorResponse {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return errorResponse{Error: string(ae.Kind), Message: err.Error(), Field: ae.Field}
	}
	return errorResponse{Error: "internal", Message: err.Error()}
}
