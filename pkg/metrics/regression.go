package metrics

import (
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
)

// MeanSquaredError returns the mean of squared differences between outputs and targets.
func MeanSquaredError(targets, outputs any, _ domain.Params) (any, error) {
	want, err := toFloats(targets)
	if err != nil {
		return nil, fmt.Errorf("targets: %w", err)
	}
	got, err := toFloats(outputs)
	if err != nil {
		return nil, fmt.Errorf("outputs: %w", err)
	}
	if err := sameLength(len(want), len(got)); err != nil {
		return nil, err
	}

	var sum float64
	for i := range want {
		d := got[i] - want[i]
		sum += d * d
	}
	return sum / float64(len(want)), nil
}

// Passthrough reports the output itself, e.g. a loss the model already
// computed. Scalar extraction happens in the observer.
func Passthrough(_, outputs any, _ domain.Params) (any, error) {
	return outputs, nil
}
