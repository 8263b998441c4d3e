package observer

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// MetricFunc computes a single metric. It must be deterministic and must not
// mutate targets or outputs. The result may be a bare number or a boxed scalar;
// see domain.ExtractValue.
type MetricFunc func(targets, outputs any, params domain.Params) (any, error)

// MetricObserver computes one metric at batch end and stores it in
// RunState.BatchMetrics under its prefix.
type MetricObserver struct {
	Base
	prefix string
	fn     MetricFunc
	cfg    metricConfig
}

// NewMetric creates a MetricObserver writing to BatchMetrics[prefix].
func NewMetric(prefix string, fn MetricFunc, opts ...MetricOption) (*MetricObserver, error) {
	if fn == nil {
		return nil, ErrNilMetricFunc
	}
	return &MetricObserver{
		prefix: prefix,
		fn:     fn,
		cfg:    newMetricConfig(opts),
	}, nil
}

// Prefix returns the metric key this observer writes.
func (m *MetricObserver) Prefix() string { return m.prefix }

// OnBatchEnd computes the metric and writes it, overwriting any prior value.
// On any error BatchMetrics is left untouched.
func (m *MetricObserver) OnBatchEnd(_ context.Context, s *domain.RunState) error {
	targets, outputs, err := readBatch(s, m.cfg.inputKey, m.cfg.outputKey)
	if err != nil {
		return err
	}

	metric, err := m.fn(targets, outputs, m.cfg.params)
	if err != nil {
		return err
	}

	v, err := domain.ExtractValue(metric)
	if err != nil {
		return err
	}
	s.BatchMetrics.Set(m.prefix, v)
	return nil
}
