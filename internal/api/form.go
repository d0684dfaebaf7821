package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churnpredictor/internal/apperr"
	"churnpredictor/internal/churn"
	"churnpredictor/internal/data"
)

type customerForm struct {
	Geography       string  `form:"geography"`
	Gender          string  `form:"gender"`
	Age             int     `form:"age"`
	Tenure          int     `form:"tenure"`
	Balance         float64 `form:"balance"`
	CreditScore     int     `form:"credit_score"`
	EstimatedSalary float64 `form:"estimated_salary"`
	NumOfProducts   int     `form:"num_of_products"`
	HasCrCard       string  `form:"has_cr_card"`
	IsActiveMember  string  `form:"is_active_member"`
}

func (f customerForm) record() (data.CustomerRecord, error) {
	hasCard, err := yesNo("HasCrCard", f.HasCrCard)
	if err != nil {
		return data.CustomerRecord{}, err
	}
	active, err := yesNo("IsActiveMember", f.IsActiveMember)
	if err != nil {
		return data.CustomerRecord{}, err
	}
	return data.CustomerRecord{
		CreditScore:     f.CreditScore,
		Geography:       f.Geography,
		Gender:          f.Gender,
		Age:             f.Age,
		Tenure:          f.Tenure,
		Balance:         f.Balance,
		NumOfProducts:   f.NumOfProducts,
		HasCrCard:       hasCard,
		IsActiveMember:  active,
		EstimatedSalary: f.EstimatedSalary,
	}, nil
}

// yesNo accepts exactly the two values the form's selects submit.
func yesNo(field, v string) (bool, error) {
	switch v {
	case "Yes":
		return true, nil
	case "No":
		return false, nil
	}
	return false, apperr.New(apperr.KindInvalidInput, field, "%q is not Yes or No", v)
}

type bounds struct {
	MinCreditScore, MaxCreditScore     int
	MinAge, MaxAge                     int
	MinTenure, MaxTenure               int
	MinNumOfProducts, MaxNumOfProducts int
}

var formBounds = bounds{
	MinCreditScore: data.MinCreditScore, MaxCreditScore: data.MaxCreditScore,
	MinAge: data.MinAge, MaxAge: data.MaxAge,
	MinTenure: data.MinTenure, MaxTenure: data.MaxTenure,
	MinNumOfProducts: data.MinNumOfProducts, MaxNumOfProducts: data.MaxNumOfProducts,
}

type resultView struct {
	HighRisk bool
	Percent  string
}

type formView struct {
	Meta   churn.Metadata
	Bounds bounds
	Form   customerForm
	Result *resultView
	Error  string
}

func (s *server) defaultForm(md churn.Metadata) customerForm {
	f := customerForm{Age: 30, Tenure: 2, CreditScore: 650, NumOfProducts: 1, HasCrCard: "No", IsActiveMember: "No"}
	if len(md.Geographies) > 0 {
		f.Geography = md.Geographies[0]
	}
	if len(md.Genders) > 0 {
		f.Gender = md.Genders[0]
	}
	return f
}

func (s *server) handleForm(c *gin.Context) {
	md := s.scorer.Metadata()
	c.HTML(http.StatusOK, "index.tmpl", formView{Meta: md, Bounds: formBounds, Form: s.defaultForm(md)})
}

func (s *server) handleFormSubmit(c *gin.Context) {
	md := s.scorer.Metadata()
	view := formView{Meta: md, Bounds: formBounds}

	var form customerForm
	if err := c.ShouldBind(&form); err != nil {
		view.Form = s.defaultForm(md)
		view.Error = "Could not read the form: " + err.Error()
		c.HTML(http.StatusBadRequest, "index.tmpl", view)
		return
	}
	view.Form = form

	rec, err := form.record()
	if err != nil {
		view.Error = err.Error()
		c.HTML(statusFor(err), "index.tmpl", view)
		return
	}
	pred, err := s.scorer.Predict(rec)
	if err != nil {
		view.Error = err.Error()
		c.HTML(statusFor(err), "index.tmpl", view)
		return
	}
	view.Result = &resultView{HighRisk: pred.HighRisk(), Percent: pred.Percent()}
	c.HTML(http.StatusOK, "index.tmpl", view)
}
