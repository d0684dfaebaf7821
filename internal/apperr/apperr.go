// Package apperr defines the error kinds reported by the predictor.
//
// Startup kinds stop the process from serving. Request kinds reject a single
// prediction and are never replaced by a default value.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindArtifactMissing      Kind = "startup_artifact_missing"
	KindArtifactIncompatible Kind = "startup_artifact_incompatible"
	KindInvalidInput         Kind = "invalid_input"
	KindUnknownCategory      Kind = "unknown_category"
	KindInferenceFailure     Kind = "inference_failure"
)

// Error carries a Kind plus the offending field, if any.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
	Err   error
}

var (
	ErrArtifactMissing      = &Error{Kind: KindArtifactMissing}
	ErrArtifactIncompatible = &Error{Kind: KindArtifactIncompatible}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
	ErrUnknownCategory      = &Error{Kind: KindUnknownCategory}
	ErrInferenceFailure     = &Error{Kind: KindInferenceFailure}
)

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg += " [" + e.Field + "]"
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrUnknownCategory) works
// regardless of field or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsRequestScoped reports whether err rejects a single request rather than the process.
func IsRequestScoped(err error) bool {
	switch KindOf(err) {
	case KindInvalidInput, KindUnknownCategory, KindInferenceFailure:
		return true
	}
	return false
}
