package artifacts

import (
	"fmt"
	"os"

	"go.uber.org/multierr"

	"churnpredictor/internal/apperr"
	"churnpredictor/internal/features"
	"churnpredictor/internal/preprocessing"
)

// Load reads, validates and cross-checks the four artifacts. A missing or
// unreadable file yields ErrArtifactMissing; anything undecodable, invalid or
// inconsistent with the other artifacts yields ErrArtifactIncompatible.
func Load(paths Paths) (*Bundle, error) {
	set, err := LoadSet(paths)
	if err != nil {
		return nil, err
	}
	b, err := set.Build()
	if err != nil {
		return nil, err
	}
	b.paths = paths
	return b, nil
}

// LoadSet decodes the four files without validating their contents.
func LoadSet(paths Paths) (Set, error) {
	var set Set
	files := []struct {
		name string
		path string
		dst  any
	}{
		{"classifier", paths.Classifier, &set.Classifier},
		{"gender encoder", paths.GenderEncoder, &set.GenderEncoder},
		{"geography encoder", paths.GeographyEncoder, &set.GeographyEncoder},
		{"scaler", paths.Scaler, &set.Scaler},
	}
	for _, f := range files {
		if err := readFile(f.name, f.path, f.dst); err != nil {
			return Set{}, err
		}
	}
	return set, nil
}

func readFile(name, path string, dst any) error {
	if path == "" {
		return apperr.New(apperr.KindArtifactMissing, name, "no path configured")
	}
	format, err := formatOf(path)
	if err != nil {
		return apperr.Wrap(apperr.KindArtifactIncompatible, err, "%s %s", name, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return &apperr.Error{Kind: apperr.KindArtifactMissing, Field: name, Msg: path, Err: err}
	}
	defer f.Close()
	if err := decode(f, format, dst); err != nil {
		return &apperr.Error{Kind: apperr.KindArtifactIncompatible, Field: name, Msg: "decode " + path, Err: err}
	}
	return nil
}

// Build validates each artifact and checks they describe the same column layout.
func (s Set) Build() (*Bundle, error) {
	var errs error
	gender, err := preprocessing.NewLabelEncoder(s.GenderEncoder.Feature, s.GenderEncoder.Classes)
	errs = multierr.Append(errs, wrapPart("gender encoder", err))
	geography, err := preprocessing.NewOneHotEncoder(s.GeographyEncoder.Feature, s.GeographyEncoder.Categories)
	errs = multierr.Append(errs, wrapPart("geography encoder", err))
	scaler, err := preprocessing.NewStandardScaler(s.Scaler.FeatureNames, s.Scaler.Mean, s.Scaler.Scale)
	errs = multierr.Append(errs, wrapPart("scaler", err))
	clf, err := s.Classifier.Build()
	errs = multierr.Append(errs, wrapPart("classifier", err))
	if errs != nil {
		return nil, apperr.Wrap(apperr.KindArtifactIncompatible, errs, "invalid artifacts")
	}

	asm, err := features.NewAssembler(gender, geography, scaler)
	if err != nil {
		return nil, err
	}
	if clf.InputDim() != asm.Width() {
		return nil, apperr.New(apperr.KindArtifactIncompatible, "classifier",
			"expects %d inputs, feature vector has %d columns", clf.InputDim(), asm.Width())
	}
	return &Bundle{
		classifier: clf,
		gender:     gender,
		geography:  geography,
		scaler:     scaler,
		assembler:  asm,
	}, nil
}

// Save writes each part of set to its path, in the format given by the extension.
func Save(paths Paths, set Set) error {
	parts := []struct {
		path string
		v    any
	}{
		{paths.Classifier, set.Classifier},
		{paths.GenderEncoder, set.GenderEncoder},
		{paths.GeographyEncoder, set.GeographyEncoder},
		{paths.Scaler, set.Scaler},
	}
	for _, p := range parts {
		if err := writeFile(p.path, p.v); err != nil {
			return err
		}
	}
	return nil
}

func wrapPart(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
