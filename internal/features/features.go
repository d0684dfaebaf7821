package features

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"churnpredictor/internal/apperr"
	"churnpredictor/internal/data"
	"churnpredictor/internal/preprocessing"
)

// baseColumns is the order of the scalar columns the scaler and classifier were
// fitted on. The Geography one-hot block follows them. Callers get copies through
// Columns.
var baseColumns = [...]string{
	"CreditScore",
	"Gender",
	"Age",
	"Tenure",
	"Balance",
	"NumOfProducts",
	"HasCrCard",
	"IsActiveMember",
	"EstimatedSalary",
}

// NumBaseColumns is the number of scalar columns ahead of the one-hot block.
const NumBaseColumns = len(baseColumns)

// Columns returns a fresh slice with the full column order for the given one-hot
// output names. Columns(nil) gives the scalar columns alone.
func Columns(geographyNames []string) []string {
	out := make([]string, 0, NumBaseColumns+len(geographyNames))
	out = append(out, baseColumns[:]...)
	return append(out, geographyNames...)
}

// Vector is a scaled feature row ready for classification.
type Vector []float64

// Assembler turns customer records into feature vectors using frozen encoders
// and scaler. It holds no per-call state.
type Assembler struct {
	gender    *preprocessing.LabelEncoder
	geography *preprocessing.OneHotEncoder
	scaler    *preprocessing.StandardScaler
	columns   []string
}

// NewAssembler checks that the scaler was fitted on exactly the assembled column
// layout and reports every mismatch as one ArtifactIncompatible error.
func NewAssembler(gender *preprocessing.LabelEncoder, geography *preprocessing.OneHotEncoder, scaler *preprocessing.StandardScaler) (*Assembler, error) {
	columns := Columns(geography.FeatureNames())
	var errs error
	if gender.Feature() != baseColumns[1] {
		errs = multierr.Append(errs, fmt.Errorf("label encoder is fitted on %q, want %q", gender.Feature(), baseColumns[1]))
	}
	if geography.Feature() != "Geography" {
		errs = multierr.Append(errs, fmt.Errorf("one-hot encoder is fitted on %q, want %q", geography.Feature(), "Geography"))
	}
	if scaler.Width() != len(columns) {
		errs = multierr.Append(errs, fmt.Errorf("scaler has %d columns, assembled vector has %d", scaler.Width(), len(columns)))
	} else if names := scaler.FeatureNames(); len(names) > 0 && !slices.Equal(names, columns) {
		errs = multierr.Append(errs, fmt.Errorf("scaler column order %v does not match %v", names, columns))
	}
	if errs != nil {
		return nil, apperr.Wrap(apperr.KindArtifactIncompatible, errs, "feature schema")
	}
	return &Assembler{gender: gender, geography: geography, scaler: scaler, columns: columns}, nil
}

// Columns returns a copy of the column order.
func (a *Assembler) Columns() []string { return append([]string(nil), a.columns...) }

// Width is the length of every vector Vectorize returns.
func (a *Assembler) Width() int { return len(a.columns) }

// Raw validates and encodes rec into an unscaled row in column order.
func (a *Assembler) Raw(rec data.CustomerRecord) ([]float64, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	genderCode, err := a.gender.Transform(rec.Gender)
	if err != nil {
		return nil, err
	}
	geo, err := a.geography.Transform(rec.Geography)
	if err != nil {
		return nil, err
	}

	vec := make([]float64, 0, len(a.columns))
	vec = append(vec,
		float64(rec.CreditScore),
		float64(genderCode),
		float64(rec.Age),
		float64(rec.Tenure),
		rec.Balance,
		float64(rec.NumOfProducts),
		data.BoolToFloat(rec.HasCrCard),
		data.BoolToFloat(rec.IsActiveMember),
		rec.EstimatedSalary,
	)
	return append(vec, geo...), nil
}

// Vectorize returns the scaled feature vector for rec. On error no vector is returned.
func (a *Assembler) Vectorize(rec data.CustomerRecord) (Vector, error) {
	raw, err := a.Raw(rec)
	if err != nil {
		return nil, err
	}
	scaled, err := a.scaler.Transform(raw)
	if err != nil {
		return nil, err
	}
	return Vector(scaled), nil
}
