package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/google/uuid"
)

// BatchHandler runs the model on the current batch: it reads state.Input and
// populates state.Output.
type BatchHandler func(ctx context.Context, state *domain.RunState) error

// Runner drives a run through the lifecycle hooks.
type Runner struct {
	observer observer.Observer
	handler  BatchHandler
	logger   *slog.Logger
	runID    string
}

// New creates a Runner firing hooks on obs and calling handler for every batch.
func New(obs observer.Observer, handler BatchHandler, opts ...Option) *Runner {
	r := &Runner{
		observer: obs,
		handler:  handler,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = defaultLogger()
	}
	return r
}

// Train runs epochs passes over every loader in train mode.
// The returned state reflects the last hook that ran, also on error.
func (r *Runner) Train(ctx context.Context, epochs int, loaders ...Loader) (*domain.RunState, error) {
	if epochs <= 0 {
		return nil, fmt.Errorf("epochs must be positive, got %d", epochs)
	}
	return r.run(ctx, domain.ModeTrain, epochs, loaders)
}

// Infer runs a single pass over every loader in infer mode.
func (r *Runner) Infer(ctx context.Context, loaders ...Loader) (*domain.RunState, error) {
	return r.run(ctx, domain.ModeInfer, 1, loaders)
}

func (r *Runner) run(ctx context.Context, mode domain.Mode, epochs int, loaders []Loader) (*domain.RunState, error) {
	if r.observer == nil {
		return nil, fmt.Errorf("runner has no observer")
	}
	if len(loaders) == 0 {
		return nil, fmt.Errorf("at least one loader is required")
	}

	runID := r.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	state := domain.NewRunState(runID, mode)
	logger := r.logger.With("run_id", runID, "mode", mode)

	start, end := domain.ModeHooks(mode)
	logger.Info("run started", "epochs", epochs, "loaders", len(loaders))

	if err := r.fire(ctx, start, state); err != nil {
		return state, err
	}
	for epoch := 0; epoch < epochs; epoch++ {
		state.Epoch = epoch
		if err := r.runEpoch(ctx, state, loaders); err != nil {
			logger.Error("run aborted", "epoch", epoch, "loader", state.Loader, "step", state.Step, "err", err)
			return state, err
		}
	}
	if err := r.fire(ctx, end, state); err != nil {
		return state, err
	}

	logger.Info("run finished")
	return state, nil
}

func (r *Runner) runEpoch(ctx context.Context, state *domain.RunState, loaders []Loader) error {
	state.ResetEpoch()
	if err := r.fire(ctx, domain.HookEpochStart, state); err != nil {
		return err
	}
	for _, l := range loaders {
		if err := r.runLoader(ctx, state, l); err != nil {
			return err
		}
	}
	return r.fire(ctx, domain.HookEpochEnd, state)
}

func (r *Runner) runLoader(ctx context.Context, state *domain.RunState, l Loader) error {
	state.Loader = l.Name()
	state.Step = 0
	state.ResetLoader()
	if err := r.fire(ctx, domain.HookLoaderStart, state); err != nil {
		return err
	}

	for i := 0; i < l.Len(); i++ {
		state.Step = i
		state.ResetBatch()

		input, err := l.Batch(ctx, i)
		if err != nil {
			return fmt.Errorf("loader %q batch %d: %w", l.Name(), i, err)
		}
		for k, v := range input {
			state.Input[k] = v
		}

		if err := r.fire(ctx, domain.HookBatchStart, state); err != nil {
			return err
		}
		if r.handler != nil {
			if err := r.handler(ctx, state); err != nil {
				return fmt.Errorf("batch handler: %w", err)
			}
		}
		if err := r.fire(ctx, domain.HookBatchEnd, state); err != nil {
			return err
		}
	}

	return r.fire(ctx, domain.HookLoaderEnd, state)
}

// fire checks for cancellation, then invokes one hook.
func (r *Runner) fire(ctx context.Context, h domain.Hook, state *domain.RunState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return observer.Invoke(ctx, r.observer, h, state)
}
