package observer

import (
	"errors"
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
)

var (
	// ErrDuplicateName is returned when two dispatcher entries share a name.
	ErrDuplicateName = errors.New("duplicate observer name")

	// ErrInvalidEntry is returned for an entry with an empty name or a nil observer.
	ErrInvalidEntry = errors.New("invalid observer entry")

	// ErrNilMetricFunc is returned when a metric observer is built without a function.
	ErrNilMetricFunc = errors.New("metric function is nil")

	// ErrEmptyListArgs is returned when a multi-metric observer is built without labels.
	ErrEmptyListArgs = errors.New("list args must not be empty")
)

// HookError records which observer failed in which hook.
// It unwraps to the observer's own error.
type HookError struct {
	Observer string
	Hook     domain.Hook
	Err      error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("observer %q failed in %s: %v", e.Observer, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }
