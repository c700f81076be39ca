package quantumviz

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a render failure.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "InvalidInput"
	KindMissingData       ErrorKind = "MissingData"
	KindInvalidType       ErrorKind = "InvalidType"
	KindInvalidDimension  ErrorKind = "InvalidDimension"
	KindInvalidDataShape  ErrorKind = "InvalidDataShape"
	KindInvalidSeriesKey  ErrorKind = "InvalidSeriesKey"
	KindSeriesNotFound    ErrorKind = "SeriesNotFound"
	KindInvalidParamValue ErrorKind = "InvalidParamValue"
)

// Sentinels for errors.Is. A *RenderError matches the one of its kind.
var (
	ErrInvalidInput      = &RenderError{Kind: KindInvalidInput}
	ErrMissingData       = &RenderError{Kind: KindMissingData}
	ErrInvalidType       = &RenderError{Kind: KindInvalidType}
	ErrInvalidDimension  = &RenderError{Kind: KindInvalidDimension}
	ErrInvalidDataShape  = &RenderError{Kind: KindInvalidDataShape}
	ErrInvalidSeriesKey  = &RenderError{Kind: KindInvalidSeriesKey}
	ErrSeriesNotFound    = &RenderError{Kind: KindSeriesNotFound}
	ErrInvalidParamValue = &RenderError{Kind: KindInvalidParamValue}
)

// RenderError is a validation failure of a render request.
type RenderError struct {
	Kind    ErrorKind
	Message string
}

func (e *RenderError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any RenderError of the same kind.
func (e *RenderError) Is(target error) bool {
	var t *RenderError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func renderErr(kind ErrorKind, format string, args ...any) *RenderError {
	return &RenderError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
