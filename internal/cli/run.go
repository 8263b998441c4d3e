package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/cadence/internal/config"
	"github.com/aretw0/cadence/internal/presentation/tui"
	"github.com/aretw0/cadence/internal/synthetic"
	"github.com/aretw0/cadence/internal/validator"
	cadencehttp "github.com/aretw0/cadence/pkg/adapters/http"
	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/aretw0/cadence/pkg/registry"
	"github.com/aretw0/cadence/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	ConfigPath string
	Serve      string // listen address of the HTTP surface; empty disables it
	RunID      string
	LogLevel   string
	JSONLogs   bool
	Color      bool
	Markdown   bool // render the report through glamour
	Quiet      bool
	Version    string

	// Overrides, mainly for tests.
	Stdout   io.Writer
	Logger   *slog.Logger
	Registry *registry.Registry
}

// Load reads and validates the pipeline file at path.
func Load(path string, reg *registry.Registry) (*config.Pipeline, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidatePipeline(cfg, reg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the synthetic workload described by the pipeline file and
// returns the final RunState.
func Execute(ctx context.Context, opts RunOptions) (*domain.RunState, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = createLogger(opts.LogLevel, opts.JSONLogs)
	}

	cfg, err := Load(opts.ConfigPath, reg)
	if err != nil {
		return nil, err
	}

	render := tui.Plain
	if opts.Markdown {
		r, err := tui.NewRenderer(100)
		if err != nil {
			return nil, err
		}
		render = r
	}

	// A private registry keeps repeated runs in one process from colliding.
	metrics := prometheus.NewRegistry()
	pipeline, err := BuildPipeline(cfg, reg, Env{
		Out:        stdout,
		Logger:     logger,
		Render:     render,
		Registerer: metrics,
		Color:      opts.Color,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn("failed to close observers", "error", err)
		}
	}()

	state := pipeline.State
	var root observer.Observer = pipeline.Dispatcher
	if state == nil {
		rec := memory.NewRecorder()
		state = rec
		root, err = observer.New(
			observer.Named("pipeline", pipeline.Dispatcher),
			observer.Named("state", rec),
		)
		if err != nil {
			return nil, err
		}
	}

	if opts.Serve != "" {
		srv := &http.Server{
			Addr: opts.Serve,
			Handler: cadencehttp.NewHandler(
				cadencehttp.WithState(state),
				cadencehttp.WithHistory(pipeline.History),
				cadencehttp.WithGatherer(metrics),
				cadencehttp.WithVersion(opts.Version),
				cadencehttp.WithLogger(logger),
			),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving run state", "addr", opts.Serve)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	loaders := make([]runner.Loader, 0, len(cfg.Run.Loaders))
	for _, l := range cfg.Run.Loaders {
		loaders = append(loaders, synthetic.NewLoader(l.Name, l.Batches, l.BatchSize, cfg.Run.Classes, cfg.Run.Seed))
	}
	model := synthetic.Model{Classes: cfg.Run.Classes, Noise: cfg.Run.Noise, Seed: cfg.Run.Seed}

	runnerOpts := []runner.Option{runner.WithLogger(logger)}
	if opts.RunID != "" {
		runnerOpts = append(runnerOpts, runner.WithRunID(opts.RunID))
	}
	r := runner.New(root, model.Handler(), runnerOpts...)

	var final *domain.RunState
	if domain.Mode(cfg.Run.Mode) == domain.ModeInfer {
		final, err = r.Infer(ctx, loaders...)
	} else {
		final, err = r.Train(ctx, cfg.Run.Epochs, loaders...)
	}
	if err != nil {
		return final, fmt.Errorf("run failed: %w", err)
	}

	if !opts.Quiet {
		printSystemMessage(stdout, "Run %s finished (%s, %d epochs).", final.RunID, final.Mode, final.Epoch+1)
	}
	return final, nil
}
