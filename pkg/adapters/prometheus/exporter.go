package prometheus

import (
	"context"
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cadence"

// Exporter is an observer that mirrors the RunState metrics into gauges.
//
//	cadence_batch_metric{metric,loader,mode}   last batch value
//	cadence_loader_metric{metric,loader,mode}  last loader aggregate
//	cadence_batches_total{loader,mode}         batches seen
//	cadence_epoch{mode}                        current epoch
type Exporter struct {
	observer.Base

	batch   *prometheus.GaugeVec
	loader  *prometheus.GaugeVec
	batches *prometheus.CounterVec
	epoch   *prometheus.GaugeVec
}

var _ observer.Observer = (*Exporter)(nil)

type options struct {
	registerer  prometheus.Registerer
	constLabels prometheus.Labels
}

// Option configures an Exporter.
type Option func(*options)

// WithRegisterer registers the collectors on r instead of the default registry.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}

// WithConstLabels attaches labels to every collector, e.g. {"job": "resnet"}.
func WithConstLabels(labels map[string]string) Option {
	return func(o *options) {
		o.constLabels = labels
	}
}

// New creates an Exporter and registers its collectors.
func New(opts ...Option) (*Exporter, error) {
	o := options{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Exporter{
		batch: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "batch_metric",
			Help:        "Metric value of the last batch.",
			ConstLabels: o.constLabels,
		}, []string{"metric", "loader", "mode"}),
		loader: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "loader_metric",
			Help:        "Aggregated metric value of the last completed loader.",
			ConstLabels: o.constLabels,
		}, []string{"metric", "loader", "mode"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "batches_total",
			Help:        "Total number of batches processed.",
			ConstLabels: o.constLabels,
		}, []string{"loader", "mode"}),
		epoch: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "epoch",
			Help:        "Current zero-based epoch.",
			ConstLabels: o.constLabels,
		}, []string{"mode"}),
	}

	collectors := []prometheus.Collector{e.batch, e.loader, e.batches, e.epoch}
	for i, c := range collectors {
		if err := o.registerer.Register(c); err != nil {
			for _, done := range collectors[:i] {
				o.registerer.Unregister(done)
			}
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return e, nil
}

func (e *Exporter) OnEpochStart(_ context.Context, s *domain.RunState) error {
	e.epoch.WithLabelValues(string(s.Mode)).Set(float64(s.Epoch))
	return nil
}

func (e *Exporter) OnBatchEnd(_ context.Context, s *domain.RunState) error {
	mode := string(s.Mode)
	s.BatchMetrics.Each(func(name string, v float64) {
		e.batch.WithLabelValues(name, s.Loader, mode).Set(v)
	})
	e.batches.WithLabelValues(s.Loader, mode).Inc()
	return nil
}

func (e *Exporter) OnLoaderEnd(_ context.Context, s *domain.RunState) error {
	mode := string(s.Mode)
	s.LoaderMetrics.Each(func(name string, v float64) {
		e.loader.WithLabelValues(name, s.Loader, mode).Set(v)
	})
	return nil
}
