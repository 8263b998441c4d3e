package cadence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/aretw0/cadence/pkg/runner"
)

// Engine is the high-level entry point for the cadence library.
// It wires an ordered observer Dispatcher to a reference Runner.
type Engine struct {
	dispatcher *observer.Dispatcher
	runner     *runner.Runner

	entries []observer.Entry
	errs    []error
	logger  *slog.Logger
	runID   string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithObserver appends a named observer. Observers run in the order added.
func WithObserver(name string, o observer.Observer) Option {
	return func(e *Engine) {
		e.entries = append(e.entries, observer.Named(name, o))
	}
}

// WithMetric appends a MetricObserver writing fn's result under prefix.
func WithMetric(name, prefix string, fn observer.MetricFunc, opts ...observer.MetricOption) Option {
	return func(e *Engine) {
		m, err := observer.NewMetric(prefix, fn, opts...)
		if err != nil {
			e.errs = append(e.errs, err)
			return
		}
		e.entries = append(e.entries, observer.Named(name, m))
	}
}

// WithMultiMetric appends a MultiMetricObserver writing one "<prefix>_<arg>"
// key per list argument.
func WithMultiMetric(name, prefix string, fn observer.MultiMetricFunc, listArgs []string, opts ...observer.MetricOption) Option {
	return func(e *Engine) {
		m, err := observer.NewMultiMetric(prefix, fn, listArgs, opts...)
		if err != nil {
			e.errs = append(e.errs, err)
			return
		}
		e.entries = append(e.entries, observer.Named(name, m))
	}
}

// WithAveraging appends an Accumulator that turns batch metrics into
// per-loader means. Add it after the metric observers.
func WithAveraging() Option {
	return WithObserver("accumulator", observer.NewAccumulator())
}

// WithLogger sets a custom structured logger for the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRunID fixes the run identifier (default: a random UUID per run).
func WithRunID(id string) Option {
	return func(e *Engine) {
		e.runID = id
	}
}

// New initializes an Engine calling handler for every batch.
func New(handler runner.BatchHandler, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if err := errors.Join(eng.errs...); err != nil {
		return nil, err
	}

	d, err := observer.New(eng.entries...)
	if err != nil {
		return nil, err
	}
	eng.dispatcher = d

	var runnerOpts []runner.Option
	if eng.logger != nil {
		runnerOpts = append(runnerOpts, runner.WithLogger(eng.logger))
	}
	if eng.runID != "" {
		runnerOpts = append(runnerOpts, runner.WithRunID(eng.runID))
	}
	eng.runner = runner.New(d, handler, runnerOpts...)
	return eng, nil
}

// Dispatcher returns the underlying observer chain.
func (e *Engine) Dispatcher() *observer.Dispatcher {
	return e.dispatcher
}

// Train runs epochs passes over loaders in train mode.
func (e *Engine) Train(ctx context.Context, epochs int, loaders ...runner.Loader) (*domain.RunState, error) {
	return e.runner.Train(ctx, epochs, loaders...)
}

// Infer runs a single pass over loaders in infer mode.
func (e *Engine) Infer(ctx context.Context, loaders ...runner.Loader) (*domain.RunState, error) {
	return e.runner.Infer(ctx, loaders...)
}
