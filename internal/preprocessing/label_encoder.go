// Package preprocessing holds the fitted, frozen transforms applied to a
// customer record before classification. Values are immutable once built;
// accessors return copies.
package preprocessing

import (
	"fmt"

	"churnpredictor/internal/apperr"
)

// LabelEncoder maps a closed set of class strings to their index in the fitted class list.
type LabelEncoder struct {
	feature string
	classes []string
	index   map[string]int
}

func NewLabelEncoder(feature string, classes []string) (*LabelEncoder, error) {
	index, err := closedSet(feature, classes)
	if err != nil {
		return nil, err
	}
	return &LabelEncoder{feature: feature, classes: append([]string(nil), classes...), index: index}, nil
}

func (e *LabelEncoder) Feature() string { return e.feature }

func (e *LabelEncoder) Classes() []string { return append([]string(nil), e.classes...) }

// Transform returns the integer code of v or an UnknownCategory error.
func (e *LabelEncoder) Transform(v string) (int, error) {
	code, ok := e.index[v]
	if !ok {
		return 0, apperr.New(apperr.KindUnknownCategory, e.feature, "%q is not one of the fitted classes %v", v, e.classes)
	}
	return code, nil
}

func closedSet(feature string, values []string) (map[string]int, error) {
	if feature == "" {
		return nil, fmt.Errorf("encoder feature name is empty")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("encoder for %s has no fitted values", feature)
	}
	index := make(map[string]int, len(values))
	for i, v := range values {
		if v == "" {
			return nil, fmt.Errorf("encoder for %s has an empty value at position %d", feature, i)
		}
		if _, dup := index[v]; dup {
			return nil, fmt.Errorf("encoder for %s lists %q twice", feature, v)
		}
		index[v] = i
	}
	return index, nil
}
