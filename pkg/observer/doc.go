/*
Package observer implements the lifecycle dispatch engine.

An Observer reacts to the ten lifecycle hooks of a training or inference
run. A Dispatcher holds an ordered, named, immutable collection of observers
and fans every hook out to them in declaration order, synchronously, handing
each the same *domain.RunState so later observers see what earlier ones wrote.

# Key Components

  - Observer: the ten-hook capability contract.
  - Base / Funcs: explicit no-op defaults and a struct of optional hook funcs.
  - Dispatcher: ordered fan-out; stops at the first error.
  - MetricObserver / MultiMetricObserver: compute metrics at batch end into RunState.BatchMetrics.
  - Accumulator: averages batch metrics per loader.

# Usage

	acc, _ := observer.NewMetric("accuracy", metrics.Accuracy)
	d, err := observer.New(
		observer.Named("accuracy", acc),
		observer.Named("averager", observer.NewAccumulator()),
	)
	if err != nil {
		log.Fatal(err)
	}

	// inside the driver loop
	if err := d.OnBatchEnd(ctx, state); err != nil {
		return err
	}
*/
package observer
