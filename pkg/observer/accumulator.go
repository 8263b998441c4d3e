package observer

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// Accumulator averages every batch metric over a loader. At loader end the
// means are written to RunState.LoaderMetrics and RunState.EpochMetrics.
//
// It should be registered after the observers that produce batch metrics.
type Accumulator struct {
	Base
	order  []string
	sums   map[string]float64
	counts map[string]int
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	a := &Accumulator{}
	a.reset()
	return a
}

func (a *Accumulator) reset() {
	a.order = a.order[:0]
	a.sums = make(map[string]float64)
	a.counts = make(map[string]int)
}

func (a *Accumulator) OnLoaderStart(_ context.Context, s *domain.RunState) error {
	a.reset()
	s.ResetLoader()
	return nil
}

func (a *Accumulator) OnBatchEnd(_ context.Context, s *domain.RunState) error {
	s.BatchMetrics.Each(func(k string, v float64) {
		if _, seen := a.counts[k]; !seen {
			a.order = append(a.order, k)
		}
		a.sums[k] += v
		a.counts[k]++
	})
	return nil
}

func (a *Accumulator) OnLoaderEnd(_ context.Context, s *domain.RunState) error {
	s.ResetLoader()
	for _, k := range a.order {
		s.LoaderMetrics.Set(k, a.sums[k]/float64(a.counts[k]))
	}
	if s.EpochMetrics == nil {
		s.EpochMetrics = make(map[string]*domain.MetricSet)
	}
	s.EpochMetrics[s.Loader] = s.LoaderMetrics.Clone()
	return nil
}
