package domain

import (
	"errors"
	"fmt"
)

// ErrKeyMissing is returned when a required input or output key is absent from the RunState.
var ErrKeyMissing = errors.New("key missing")

// ErrUnsupportedMetricType is returned when a metric value cannot be reduced to a scalar.
var ErrUnsupportedMetricType = errors.New("unsupported metric type")

// ErrMetricCountMismatch is returned when a multi-metric function returns a
// different number of results than it was given labels.
var ErrMetricCountMismatch = errors.New("metric count mismatch")

// KeyMissingError describes which mapping of the RunState lacked which key.
type KeyMissingError struct {
	Source string // "input" or "output"
	Key    string
}

func (e *KeyMissingError) Error() string {
	return fmt.Sprintf("%s key %q missing", e.Source, e.Key)
}

func (e *KeyMissingError) Unwrap() error { return ErrKeyMissing }

// UnsupportedMetricTypeError carries the value that failed scalar extraction.
type UnsupportedMetricTypeError struct {
	Value any
}

func (e *UnsupportedMetricTypeError) Error() string {
	return fmt.Sprintf("cannot extract scalar from %T", e.Value)
}

func (e *UnsupportedMetricTypeError) Unwrap() error { return ErrUnsupportedMetricType }

// MetricCountMismatchError reports the expected and actual number of results.
type MetricCountMismatchError struct {
	Want int
	Got  int
}

func (e *MetricCountMismatchError) Error() string {
	return fmt.Sprintf("metric function returned %d results for %d labels", e.Got, e.Want)
}

func (e *MetricCountMismatchError) Unwrap() error { return ErrMetricCountMismatch }
