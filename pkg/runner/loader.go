package runner

import (
	"context"
	"fmt"
)

// Loader yields the batches of one named data split.
type Loader interface {
	Name() string
	Len() int
	// Batch returns the inputs of batch i, e.g. {"features": ..., "targets": ...}.
	Batch(ctx context.Context, i int) (map[string]any, error)
}

// SliceLoader is a Loader over precomputed batches.
type SliceLoader struct {
	LoaderName string
	Batches    []map[string]any
}

func (l *SliceLoader) Name() string { return l.LoaderName }

func (l *SliceLoader) Len() int { return len(l.Batches) }

func (l *SliceLoader) Batch(_ context.Context, i int) (map[string]any, error) {
	if i < 0 || i >= len(l.Batches) {
		return nil, fmt.Errorf("batch %d out of range [0,%d)", i, len(l.Batches))
	}
	return l.Batches[i], nil
}
