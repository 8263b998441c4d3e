package cadence_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/metrics"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/aretw0/cadence/pkg/runner"
)

// fixedModel always ranks class 0 first, class 1 second and class 2 last.
func fixedModel(_ context.Context, s *domain.RunState) error {
	targets := s.Input["targets"].([]int)
	logits := make([][]float64, len(targets))
	for i := range logits {
		logits[i] = []float64{0.7, 0.2, 0.1}
	}
	s.Output["logits"] = logits
	return nil
}

// ExampleNew shows the collision-aware naming of a single and a multi metric
// sharing the "accuracy" prefix.
func ExampleNew() {
	valid := &runner.SliceLoader{
		LoaderName: "valid",
		Batches: []map[string]any{
			{"targets": []int{0, 1, 2, 0}},
		},
	}

	eng, err := cadence.New(fixedModel,
		cadence.WithMetric("accuracy", "accuracy", metrics.Accuracy),
		cadence.WithMultiMetric("topk", "accuracy", metrics.TopKAccuracy, []string{"01", "02"}),
		cadence.WithAveraging(),
		cadence.WithRunID("example"),
	)
	if err != nil {
		log.Fatal(err)
	}

	state, err := eng.Infer(context.Background(), valid)
	if err != nil {
		log.Fatal(err)
	}

	state.EpochMetrics["valid"].Each(func(k string, v float64) {
		fmt.Printf("%s=%.2f\n", k, v)
	})
	// Output:
	// accuracy=0.50
	// accuracy_01=0.50
	// accuracy_02=0.75
}

// ExampleWithObserver registers a custom observer built from plain functions.
func ExampleWithObserver() {
	batches := 0
	counter := observer.Funcs{
		BatchEnd: func(context.Context, *domain.RunState) error {
			batches++
			return nil
		},
		TrainEnd: func(_ context.Context, s *domain.RunState) error {
			fmt.Printf("run %s saw %d batches in %d epochs\n", s.RunID, batches, s.Epoch+1)
			return nil
		},
	}

	eng, err := cadence.New(nil, cadence.WithObserver("counter", counter), cadence.WithRunID("demo"))
	if err != nil {
		log.Fatal(err)
	}

	train := &runner.SliceLoader{LoaderName: "train", Batches: make([]map[string]any, 3)}
	if _, err := eng.Train(context.Background(), 2, train); err != nil {
		log.Fatal(err)
	}
	// Output:
	// run demo saw 6 batches in 2 epochs
}
