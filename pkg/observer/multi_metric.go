package observer

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// MultiMetricFunc computes one metric per label in listArgs and returns the
// results in the same order.
type MultiMetricFunc func(targets, outputs any, listArgs []string, params domain.Params) ([]any, error)

// MultiMetricObserver computes several metrics at batch end and stores each
// under MetricKey(prefix, label). Labels are paired with results by position;
// a repeated label keeps the last value written.
type MultiMetricObserver struct {
	Base
	prefix   string
	fn       MultiMetricFunc
	listArgs []string
	cfg      metricConfig
}

// NewMultiMetric creates a MultiMetricObserver. listArgs must not be empty.
func NewMultiMetric(prefix string, fn MultiMetricFunc, listArgs []string, opts ...MetricOption) (*MultiMetricObserver, error) {
	if fn == nil {
		return nil, ErrNilMetricFunc
	}
	if len(listArgs) == 0 {
		return nil, ErrEmptyListArgs
	}
	args := make([]string, len(listArgs))
	copy(args, listArgs)
	return &MultiMetricObserver{
		prefix:   prefix,
		fn:       fn,
		listArgs: args,
		cfg:      newMetricConfig(opts),
	}, nil
}

// Keys returns the BatchMetrics keys this observer writes, in write order.
func (m *MultiMetricObserver) Keys() []string {
	keys := make([]string, len(m.listArgs))
	for i, arg := range m.listArgs {
		keys[i] = MetricKey(m.prefix, arg)
	}
	return keys
}

// OnBatchEnd computes the metrics and writes them. Every value is extracted
// before the first write, so on any error BatchMetrics is left untouched.
func (m *MultiMetricObserver) OnBatchEnd(_ context.Context, s *domain.RunState) error {
	targets, outputs, err := readBatch(s, m.cfg.inputKey, m.cfg.outputKey)
	if err != nil {
		return err
	}

	args := make([]string, len(m.listArgs))
	copy(args, m.listArgs)
	metrics, err := m.fn(targets, outputs, args, m.cfg.params)
	if err != nil {
		return err
	}

	n := len(m.listArgs)
	if len(metrics) != n {
		if !m.cfg.truncate {
			return &domain.MetricCountMismatchError{Want: n, Got: len(metrics)}
		}
		n = min(n, len(metrics))
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := domain.ExtractValue(metrics[i])
		if err != nil {
			return err
		}
		values[i] = v
	}

	for i, v := range values {
		s.BatchMetrics.Set(MetricKey(m.prefix, m.listArgs[i]), v)
	}
	return nil
}
