package observer

import (
	"github.com/aretw0/cadence/pkg/domain"
)

// MetricKey composes the BatchMetrics key for one label of a multi-metric.
func MetricKey(prefix, arg string) string {
	return prefix + "_" + arg
}

// readBatch fetches the targets and outputs a metric observer works on.
func readBatch(s *domain.RunState, inputKey, outputKey string) (targets, outputs any, err error) {
	outputs, err = s.LookupOutput(outputKey)
	if err != nil {
		return nil, nil, err
	}
	targets, err = s.LookupInput(inputKey)
	if err != nil {
		return nil, nil, err
	}
	return targets, outputs, nil
}
