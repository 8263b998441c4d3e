package observer

import "github.com/aretw0/cadence/pkg/domain"

type metricConfig struct {
	inputKey  string
	outputKey string
	params    domain.Params
	truncate  bool
}

func newMetricConfig(opts []MetricOption) metricConfig {
	cfg := metricConfig{
		inputKey:  domain.DefaultInputKey,
		outputKey: domain.DefaultOutputKey,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// MetricOption configures a MetricObserver or MultiMetricObserver.
type MetricOption func(*metricConfig)

// WithInputKey sets the RunState.Input key holding the targets (default "targets").
func WithInputKey(key string) MetricOption {
	return func(c *metricConfig) {
		c.inputKey = key
	}
}

// WithOutputKey sets the RunState.Output key holding the outputs (default "logits").
func WithOutputKey(key string) MetricOption {
	return func(c *metricConfig) {
		c.outputKey = key
	}
}

// WithParams sets the named parameters forwarded to the metric function.
// The map is copied; later changes by the caller are not seen.
func WithParams(p domain.Params) MetricOption {
	return func(c *metricConfig) {
		c.params = p.Clone()
	}
}

// WithTruncate makes a MultiMetricObserver pair labels and results up to the
// shorter of the two instead of failing with ErrMetricCountMismatch.
// It has no effect on a MetricObserver.
func WithTruncate() MetricOption {
	return func(c *metricConfig) {
		c.truncate = true
	}
}
