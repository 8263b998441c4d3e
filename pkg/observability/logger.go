package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
)

// Logger logs lifecycle transitions. Batch metrics go out at debug level,
// everything else at info.
type Logger struct {
	logger *slog.Logger
}

var _ observer.Observer = (*Logger)(nil)

// NewLogger creates a Logger writing to logger.
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func metricAttrs(m *domain.MetricSet) []any {
	attrs := make([]any, 0, m.Len())
	m.Each(func(k string, v float64) {
		attrs = append(attrs, slog.Float64(k, v))
	})
	return attrs
}

func (l *Logger) base(s *domain.RunState) *slog.Logger {
	return l.logger.With("run_id", s.RunID, "mode", s.Mode)
}

func (l *Logger) OnTrainStart(ctx context.Context, s *domain.RunState) error {
	l.base(s).InfoContext(ctx, "train started")
	return nil
}

func (l *Logger) OnTrainEnd(ctx context.Context, s *domain.RunState) error {
	l.base(s).InfoContext(ctx, "train finished", "epochs", s.Epoch+1)
	return nil
}

func (l *Logger) OnInferStart(ctx context.Context, s *domain.RunState) error {
	l.base(s).InfoContext(ctx, "infer started")
	return nil
}

func (l *Logger) OnInferEnd(ctx context.Context, s *domain.RunState) error {
	l.base(s).InfoContext(ctx, "infer finished")
	return nil
}

func (l *Logger) OnEpochStart(ctx context.Context, s *domain.RunState) error {
	l.base(s).InfoContext(ctx, "epoch started", "epoch", s.Epoch)
	return nil
}

func (l *Logger) OnEpochEnd(ctx context.Context, s *domain.RunState) error {
	l.base(s).InfoContext(ctx, "epoch finished", "epoch", s.Epoch, "loaders", len(s.EpochMetrics))
	return nil
}

func (l *Logger) OnLoaderStart(ctx context.Context, s *domain.RunState) error {
	l.base(s).DebugContext(ctx, "loader started", "epoch", s.Epoch, "loader", s.Loader)
	return nil
}

func (l *Logger) OnLoaderEnd(ctx context.Context, s *domain.RunState) error {
	l.base(s).InfoContext(ctx, "loader finished",
		"epoch", s.Epoch,
		"loader", s.Loader,
		slog.Group("metrics", metricAttrs(s.LoaderMetrics)...),
	)
	return nil
}

func (l *Logger) OnBatchStart(context.Context, *domain.RunState) error { return nil }

func (l *Logger) OnBatchEnd(ctx context.Context, s *domain.RunState) error {
	if !l.logger.Enabled(ctx, slog.LevelDebug) {
		return nil
	}
	l.base(s).DebugContext(ctx, "batch",
		"epoch", s.Epoch,
		"loader", s.Loader,
		"step", s.Step,
		slog.Group("metrics", metricAttrs(s.BatchMetrics)...),
	)
	return nil
}
