package validator

import (
	"testing"

	"github.com/aretw0/cadence/internal/config"
	"github.com/aretw0/cadence/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPipeline() *config.Pipeline {
	return &config.Pipeline{
		Run: config.RunConfig{
			Mode: "train", Epochs: 2, Classes: 4,
			Loaders: []config.LoaderConfig{{Name: "train", Batches: 4, BatchSize: 8}},
		},
		Observers: []config.ObserverConfig{
			{Name: "acc", Type: config.TypeMetric, Metric: "accuracy", Prefix: "accuracy"},
			{Name: "topk", Type: config.TypeMultiMetric, Metric: "topk_accuracy", Prefix: "accuracy", ListArgs: []string{"01", "03"}},
			{Name: "avg", Type: config.TypeAccumulator},
			{Name: "redis", Type: config.TypeRedis, Options: map[string]any{"addr": "localhost:6379", "ttl": "1h"}},
		},
	}
}

func TestValidatePipeline_Valid(t *testing.T) {
	assert.NoError(t, ValidatePipeline(validPipeline(), registry.Default()))
}

func TestValidatePipeline_AggregatesProblems(t *testing.T) {
	p := validPipeline()
	p.Run.Epochs = 0
	p.Run.Loaders = append(p.Run.Loaders, config.LoaderConfig{Name: "train", Batches: 1, BatchSize: 1})
	p.Observers = append(p.Observers,
		config.ObserverConfig{Name: "acc", Type: config.TypeLogger},
		config.ObserverConfig{Name: "x", Type: "tensorboard"},
		config.ObserverConfig{Name: "m", Type: config.TypeMetric, Metric: "topk_accuracy", Prefix: "p"},
		config.ObserverConfig{Name: "mm", Type: config.TypeMultiMetric, Metric: "nope"},
		config.ObserverConfig{Name: "db", Type: config.TypeSQLite, Options: map[string]any{"file": "x.db"}},
		config.ObserverConfig{Name: "log2", Type: config.TypeLogger, Options: map[string]any{"level": "debug"}},
	)

	err := ValidatePipeline(p, registry.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPipeline)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	msg := err.Error()
	for _, want := range []string{
		"run.epochs must be positive",
		`run.loaders[1]: duplicate name "train"`,
		`observers[4]: duplicate name "acc"`,
		`observer x: unknown type "tensorboard"`,
		`observer m: metric "topk_accuracy" is multi, type metric needs single`,
		`observer mm: unknown metric "nope"`,
		"observer mm: prefix is required",
		"observer mm: list_args must not be empty",
		"observer db: options:",
		"observer log2: type logger takes no options",
	} {
		assert.Contains(t, msg, want)
	}
	assert.Len(t, verr.Problems, 10)
}

func TestValidatePipeline_NoLoaders(t *testing.T) {
	p := validPipeline()
	p.Run.Loaders = nil
	p.Run.Mode = "eval"
	err := ValidatePipeline(p, registry.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one loader")
	assert.Contains(t, err.Error(), `run.mode must be train or infer, got "eval"`)
}

func TestValidatePipeline_SinglePrometheusObserver(t *testing.T) {
	p := validPipeline()
	p.Observers = append(p.Observers,
		config.ObserverConfig{Name: "prom", Type: config.TypePrometheus},
		config.ObserverConfig{Name: "prom2", Type: config.TypePrometheus, Options: map[string]any{"const_labels": map[string]any{"job": "b"}}},
		config.ObserverConfig{Name: "prom3", Type: config.TypePrometheus},
	)

	err := ValidatePipeline(p, registry.Default())
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"observer prom2: only one prometheus observer is allowed, prom already exports",
		"observer prom3: only one prometheus observer is allowed, prom already exports",
	}, verr.Problems)
}
