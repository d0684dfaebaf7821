package inference

import "fmt"

// Threshold separates the two labels: probabilities strictly above it are high risk.
const Threshold = 0.5

type Label string

const (
	LabelHighRisk Label = "high_risk"
	LabelLowRisk  Label = "low_risk"
)

func LabelFor(p float64) Label {
	if p > Threshold {
		return LabelHighRisk
	}
	return LabelLowRisk
}

type Prediction struct {
	Probability float64 `json:"probability"`
	Label       Label   `json:"label"`
}

func NewPrediction(p float64) Prediction {
	return Prediction{Probability: p, Label: LabelFor(p)}
}

func (p Prediction) HighRisk() bool { return p.Label == LabelHighRisk }

// Percent formats the probability as a percentage with two decimals, e.g. "37.25%".
func (p Prediction) Percent() string {
	return fmt.Sprintf("%.2f%%", p.Probability*100)
}
