// Package artifacts loads the fitted classifier, encoders and scaler the
// predictor depends on, and checks that they agree with each other.
package artifacts

import (
	"churnpredictor/internal/features"
	"churnpredictor/internal/models"
	"churnpredictor/internal/preprocessing"
)

// Paths locates the four artifact files. The format of each file follows its
// extension: .gob, .json, .yaml or .yml.
type Paths struct {
	Classifier       string
	GenderEncoder    string
	GeographyEncoder string
	Scaler           string
}

type LabelEncoderFile struct {
	Feature string   `json:"feature" yaml:"feature"`
	Classes []string `json:"classes" yaml:"classes"`
}

type OneHotEncoderFile struct {
	Feature    string   `json:"feature" yaml:"feature"`
	Categories []string `json:"categories" yaml:"categories"`
}

type ScalerFile struct {
	FeatureNames []string  `json:"feature_names,omitempty" yaml:"feature_names,omitempty"`
	Mean         []float64 `json:"mean" yaml:"mean"`
	Scale        []float64 `json:"scale" yaml:"scale"`
}

// Set is the decoded, not yet validated, contents of the four files.
type Set struct {
	Classifier       models.Spec
	GenderEncoder    LabelEncoderFile
	GeographyEncoder OneHotEncoderFile
	Scaler           ScalerFile
}

// Bundle is the validated, read-only artifact state shared by all requests.
type Bundle struct {
	paths      Paths
	classifier models.Classifier
	gender     *preprocessing.LabelEncoder
	geography  *preprocessing.OneHotEncoder
	scaler     *preprocessing.StandardScaler
	assembler  *features.Assembler
}

func (b *Bundle) Paths() Paths                                   { return b.paths }
func (b *Bundle) Classifier() models.Classifier                  { return b.classifier }
func (b *Bundle) GenderEncoder() *preprocessing.LabelEncoder     { return b.gender }
func (b *Bundle) GeographyEncoder() *preprocessing.OneHotEncoder { return b.geography }
func (b *Bundle) Scaler() *preprocessing.StandardScaler          { return b.scaler }
func (b *Bundle) Assembler() *features.Assembler                 { return b.assembler }
