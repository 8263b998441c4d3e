package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/cadence/internal/config"
	"github.com/aretw0/cadence/pkg/adapters/memory"
	cadenceprom "github.com/aretw0/cadence/pkg/adapters/prometheus"
	"github.com/aretw0/cadence/pkg/adapters/redis"
	"github.com/aretw0/cadence/pkg/adapters/sqlite"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observability"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/registry"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
)

// Env carries the process-level dependencies observers are built with.
type Env struct {
	Out        io.Writer
	Logger     *slog.Logger
	Render     func(string) (string, error)
	Registerer prometheus.Registerer
	Color      bool
}

// Pipeline is a dispatcher built from configuration plus the resources its
// observers hold open.
type Pipeline struct {
	Dispatcher *observer.Dispatcher

	// History is the store of the first sqlite or redis observer, if any.
	History ports.HistoryStore
	// State is the first recorder observer, if any.
	State ports.StateSource

	closers []io.Closer
}

// Close releases every resource opened by the observers.
func (p *Pipeline) Close() error {
	var errs []error
	for _, c := range p.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// BuildPipeline instantiates the configured observers in order. The pipeline
// must have been validated; construction errors are still reported with the
// observer name.
func BuildPipeline(cfg *config.Pipeline, reg *registry.Registry, env Env) (*Pipeline, error) {
	p := &Pipeline{}
	entries := make([]observer.Entry, 0, len(cfg.Observers))
	for _, oc := range cfg.Observers {
		obs, err := p.build(oc, reg, env)
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("observer %s: %w", oc.Name, err)
		}
		entries = append(entries, observer.Named(oc.Name, obs))
	}

	d, err := observer.New(entries...)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	p.Dispatcher = d
	return p, nil
}

func metricOptions(oc config.ObserverConfig) []observer.MetricOption {
	var opts []observer.MetricOption
	if oc.InputKey != "" {
		opts = append(opts, observer.WithInputKey(oc.InputKey))
	}
	if oc.OutputKey != "" {
		opts = append(opts, observer.WithOutputKey(oc.OutputKey))
	}
	if len(oc.Params) > 0 {
		opts = append(opts, observer.WithParams(domain.Params(oc.Params)))
	}
	if oc.Truncate {
		opts = append(opts, observer.WithTruncate())
	}
	return opts
}

func (p *Pipeline) build(oc config.ObserverConfig, reg *registry.Registry, env Env) (observer.Observer, error) {
	switch oc.Type {
	case config.TypeMetric:
		fn, err := reg.Metric(oc.Metric)
		if err != nil {
			return nil, err
		}
		return observer.NewMetric(oc.Prefix, fn, metricOptions(oc)...)

	case config.TypeMultiMetric:
		fn, err := reg.MultiMetric(oc.Metric)
		if err != nil {
			return nil, err
		}
		return observer.NewMultiMetric(oc.Prefix, fn, oc.ListArgs, metricOptions(oc)...)

	case config.TypeAccumulator:
		return observer.NewAccumulator(), nil

	case config.TypeLogger:
		return observability.NewLogger(env.Logger), nil

	case config.TypeConsole:
		profile := termenv.Ascii
		if env.Color {
			profile = termenv.TrueColor
		}
		return observability.NewConsole(env.Out, termenv.WithProfile(profile)), nil

	case config.TypeReport:
		return observability.NewReport(env.Out, env.Render), nil

	case config.TypeRecorder:
		rec := memory.NewRecorder()
		if p.State == nil {
			p.State = rec
		}
		return rec, nil

	case config.TypePrometheus:
		var o config.PrometheusOptions
		if err := config.DecodeOptions(oc.Options, &o); err != nil {
			return nil, err
		}
		registerer := env.Registerer
		if registerer == nil {
			registerer = prometheus.DefaultRegisterer
		}
		return cadenceprom.New(cadenceprom.WithRegisterer(registerer), cadenceprom.WithConstLabels(o.ConstLabels))

	case config.TypeRedis:
		o := config.RedisOptions{Addr: "localhost:6379"}
		if err := config.DecodeOptions(oc.Options, &o); err != nil {
			return nil, err
		}
		var opts []redis.Option
		if o.Prefix != "" {
			opts = append(opts, redis.WithPrefix(o.Prefix))
		}
		if o.TTL > 0 {
			opts = append(opts, redis.WithTTL(o.TTL))
		}
		pub := redis.New(o.Addr, o.Password, o.DB, opts...)
		p.closers = append(p.closers, pub)
		if p.History == nil {
			p.History = pub
		}
		return pub, nil

	case config.TypeSQLite:
		o := config.SQLiteOptions{Path: "cadence.db"}
		if err := config.DecodeOptions(oc.Options, &o); err != nil {
			return nil, err
		}
		store, err := sqlite.Open(o.Path)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, store)
		if p.History == nil {
			p.History = store
		}
		return observability.NewHistoryWriter(store), nil
	}
	return nil, fmt.Errorf("unknown observer type %q", oc.Type)
}
