package data

import (
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"churnpredictor/internal/apperr"
)

// Domain bounds of the numeric attributes, inclusive.
const (
	MinCreditScore   = 300
	MaxCreditScore   = 850
	MinAge           = 18
	MaxAge           = 92
	MinTenure        = 0
	MaxTenure        = 10
	MinNumOfProducts = 1
	MaxNumOfProducts = 4
)

// CustomerRecord is one set of customer attributes submitted for scoring.
// Geography and Gender are checked against the fitted encoders, not here.
type CustomerRecord struct {
	CreditScore     int     `json:"credit_score" validate:"gte=300,lte=850"`
	Geography       string  `json:"geography"`
	Gender          string  `json:"gender"`
	Age             int     `json:"age" validate:"gte=18,lte=92"`
	Tenure          int     `json:"tenure" validate:"gte=0,lte=10"`
	Balance         float64 `json:"balance" validate:"gte=0"`
	NumOfProducts   int     `json:"num_of_products" validate:"gte=1,lte=4"`
	HasCrCard       bool    `json:"has_cr_card"`
	IsActiveMember  bool    `json:"is_active_member"`
	EstimatedSalary float64 `json:"estimated_salary" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every numeric field against its domain and returns an
// InvalidInput error naming the first offending field.
func (r CustomerRecord) Validate() error {
	if math.IsNaN(r.Balance) || math.IsInf(r.Balance, 0) {
		return apperr.New(apperr.KindInvalidInput, "Balance", "must be a finite number")
	}
	if math.IsNaN(r.EstimatedSalary) || math.IsInf(r.EstimatedSalary, 0) {
		return apperr.New(apperr.KindInvalidInput, "EstimatedSalary", "must be a finite number")
	}
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		fields := make([]string, 0, len(verrs))
		for _, e := range verrs {
			fields = append(fields, e.Field())
		}
		return apperr.New(apperr.KindInvalidInput, fe.Field(), "%v violates %s=%s (fields out of domain: %s)",
			fe.Value(), fe.Tag(), fe.Param(), strings.Join(fields, ", "))
	}
	return apperr.Wrap(apperr.KindInvalidInput, err, "validate customer record")
}

func BoolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
