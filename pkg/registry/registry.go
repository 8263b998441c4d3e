package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/cadence/pkg/metrics"
	"github.com/aretw0/cadence/pkg/observer"
)

// ErrMetricNotFound is returned when a metric name is not registered.
var ErrMetricNotFound = errors.New("metric not found")

// Kind distinguishes single-value metrics from labelled multi-value metrics.
type Kind string

const (
	KindSingle Kind = "single"
	KindMulti  Kind = "multi"
)

// Registry manages the metric functions available to configuration-driven pipelines.
type Registry struct {
	mu     sync.RWMutex
	single map[string]observer.MetricFunc
	multi  map[string]observer.MultiMetricFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		single: make(map[string]observer.MetricFunc),
		multi:  make(map[string]observer.MultiMetricFunc),
	}
}

// Default returns a registry holding the reference metrics of package metrics.
func Default() *Registry {
	r := NewRegistry()
	r.Register("accuracy", metrics.Accuracy)
	r.Register("binary_accuracy", metrics.BinaryAccuracy)
	r.Register("mse", metrics.MeanSquaredError)
	r.Register("output", metrics.Passthrough)
	r.RegisterMulti("topk_accuracy", metrics.TopKAccuracy)
	return r
}

// Register adds a single-value metric.
// If a metric with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn observer.MetricFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.multi, name)
	r.single[name] = fn
}

// RegisterMulti adds a multi-value metric.
// If a metric with the same name exists, it is overwritten.
func (r *Registry) RegisterMulti(name string, fn observer.MultiMetricFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.single, name)
	r.multi[name] = fn
}

// Metric looks up a single-value metric by name.
func (r *Registry) Metric(name string) (observer.MetricFunc, error) {
	r.mu.RLock()
	fn, ok := r.single[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMetricNotFound, name)
	}
	return fn, nil
}

// MultiMetric looks up a multi-value metric by name.
func (r *Registry) MultiMetric(name string) (observer.MultiMetricFunc, error) {
	r.mu.RLock()
	fn, ok := r.multi[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMetricNotFound, name)
	}
	return fn, nil
}

// Entry describes one registered metric.
type Entry struct {
	Name string
	Kind Kind
}

// List returns every registered metric sorted by name.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.single)+len(r.multi))
	for name := range r.single {
		out = append(out, Entry{Name: name, Kind: KindSingle})
	}
	for name := range r.multi {
		out = append(out, Entry{Name: name, Kind: KindMulti})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// KindOf reports whether name is registered and as which kind.
func (r *Registry) KindOf(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.single[name]; ok {
		return KindSingle, true
	}
	if _, ok := r.multi[name]; ok {
		return KindMulti, true
	}
	return "", false
}
