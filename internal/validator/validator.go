package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/cadence/internal/config"
	"github.com/aretw0/cadence/pkg/registry"
)

// ErrInvalidPipeline is matched by every ValidationError.
var ErrInvalidPipeline = errors.New("invalid pipeline")

// ValidationError lists every problem found in a pipeline.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Problems), strings.Join(e.Problems, "\n- "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidPipeline }

// ValidatePipeline checks a loaded pipeline against the metrics known to reg.
// It reports all problems at once rather than stopping at the first.
func ValidatePipeline(p *config.Pipeline, reg *registry.Registry) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	// 1. Run section
	switch p.Run.Mode {
	case "train", "infer":
	default:
		add("run.mode must be train or infer, got %q", p.Run.Mode)
	}
	if p.Run.Epochs <= 0 {
		add("run.epochs must be positive, got %d", p.Run.Epochs)
	}
	if p.Run.Classes < 2 {
		add("run.classes must be at least 2, got %d", p.Run.Classes)
	}
	if len(p.Run.Loaders) == 0 {
		add("run.loaders: at least one loader is required")
	}
	loaders := make(map[string]bool)
	for i, l := range p.Run.Loaders {
		switch {
		case l.Name == "":
			add("run.loaders[%d]: name is required", i)
		case loaders[l.Name]:
			add("run.loaders[%d]: duplicate name %q", i, l.Name)
		}
		loaders[l.Name] = true
		if l.Batches <= 0 {
			add("loader %q: batches must be positive", l.Name)
		}
		if l.BatchSize <= 0 {
			add("loader %q: batch_size must be positive", l.Name)
		}
	}

	// 2. Observers
	names := make(map[string]bool)
	exporter := ""
	for i, o := range p.Observers {
		label := o.Name
		switch {
		case o.Name == "":
			add("observers[%d]: name is required", i)
			label = fmt.Sprintf("#%d", i)
		case names[o.Name]:
			add("observers[%d]: duplicate name %q", i, o.Name)
		}
		names[o.Name] = true

		if !slices.Contains(config.Types(), o.Type) {
			add("observer %s: unknown type %q", label, o.Type)
			continue
		}
		if o.Type == config.TypePrometheus {
			// Collectors share fixed names, so a second exporter cannot register.
			if exporter != "" {
				add("observer %s: only one prometheus observer is allowed, %s already exports", label, exporter)
			} else {
				exporter = label
			}
		}
		problems = append(problems, checkObserver(label, o, reg)...)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkObserver(label string, o config.ObserverConfig, reg *registry.Registry) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf("observer %s: "+format, append([]any{label}, args...)...))
	}

	switch o.Type {
	case config.TypeMetric, config.TypeMultiMetric:
		want := registry.KindSingle
		if o.Type == config.TypeMultiMetric {
			want = registry.KindMulti
		}
		if o.Metric == "" {
			add("metric is required")
		} else if kind, ok := reg.KindOf(o.Metric); !ok {
			add("unknown metric %q", o.Metric)
		} else if kind != want {
			add("metric %q is %s, type %s needs %s", o.Metric, kind, o.Type, want)
		}
		if o.Prefix == "" {
			add("prefix is required")
		}
		if o.Type == config.TypeMultiMetric && len(o.ListArgs) == 0 {
			add("list_args must not be empty")
		}
	default:
		if o.Metric != "" || len(o.ListArgs) > 0 {
			add("metric and list_args only apply to metric observers")
		}
	}

	var opts any
	switch o.Type {
	case config.TypeRedis:
		opts = &config.RedisOptions{}
	case config.TypeSQLite:
		opts = &config.SQLiteOptions{}
	case config.TypePrometheus:
		opts = &config.PrometheusOptions{}
	}
	switch {
	case opts != nil:
		if err := config.DecodeOptions(o.Options, opts); err != nil {
			add("options: %v", err)
		}
	case len(o.Options) > 0:
		add("type %s takes no options", o.Type)
	}
	return problems
}
