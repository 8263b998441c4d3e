/*
Package cadence is a lifecycle callback dispatch engine for iterative
training and inference loops.

A driver walks a fixed nesting of phases (mode, epoch, loader, batch) and fires
a hook at every transition. Observers registered in a Dispatcher react to those
hooks in registration order, reading the batch inputs and model outputs from a
shared RunState and writing scalar metrics back into it.

# Concept

  - RunState (pkg/domain) is the single mutable context passed to every hook.
  - Observer (pkg/observer) has ten hooks: train/infer start and end, epoch,
    loader and batch start and end. Embed observer.Base and override what you need.
  - MetricObserver wraps a metric function and writes one scalar under its prefix
    at batch end; MultiMetricObserver writes one "<prefix>_<arg>" key per label.
  - Dispatcher fans every hook out to its named observers in order and stops at
    the first error.

Sinks (pkg/observability, pkg/adapters/...) export the metrics to slog,
Prometheus, Redis, SQLite or an HTTP endpoint.

# Usage

	eng, err := cadence.New(model,
		cadence.WithMetric("accuracy", "accuracy", metrics.Accuracy),
		cadence.WithMultiMetric("topk", "accuracy", metrics.TopKAccuracy, []string{"01", "03"}),
		cadence.WithAveraging(),
	)
	if err != nil {
		log.Fatal(err)
	}

	state, err := eng.Train(ctx, 10, trainLoader, validLoader)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(state.EpochMetrics["valid"].Keys())
	// [accuracy accuracy_01 accuracy_03]
*/
package cadence
