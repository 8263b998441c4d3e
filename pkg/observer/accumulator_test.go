package observer_test

import (
	"context"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_AveragesPerLoader(t *testing.T) {
	ctx := context.Background()
	a := observer.NewAccumulator()
	s := domain.NewRunState("run", domain.ModeTrain)
	s.Loader = "train"

	require.NoError(t, a.OnLoaderStart(ctx, s))
	for _, v := range []float64{0.5, 1.0} {
		s.ResetBatch()
		s.BatchMetrics.Set("acc", v)
		s.BatchMetrics.Set("loss", 2*v)
		require.NoError(t, a.OnBatchEnd(ctx, s))
	}
	s.ResetBatch()
	s.BatchMetrics.Set("extra", 3)
	require.NoError(t, a.OnBatchEnd(ctx, s))
	require.NoError(t, a.OnLoaderEnd(ctx, s))

	assert.Equal(t, []string{"acc", "loss", "extra"}, s.LoaderMetrics.Keys())
	assert.Equal(t, map[string]float64{"acc": 0.75, "loss": 1.5, "extra": 3}, s.LoaderMetrics.Map())
	require.Contains(t, s.EpochMetrics, "train")
	assert.Equal(t, s.LoaderMetrics.Map(), s.EpochMetrics["train"].Map())

	// A new loader starts from scratch.
	s.Loader = "valid"
	require.NoError(t, a.OnLoaderStart(ctx, s))
	assert.Equal(t, 0, s.LoaderMetrics.Len())
	s.ResetBatch()
	s.BatchMetrics.Set("acc", 0.25)
	require.NoError(t, a.OnBatchEnd(ctx, s))
	require.NoError(t, a.OnLoaderEnd(ctx, s))

	assert.Equal(t, map[string]float64{"acc": 0.25}, s.EpochMetrics["valid"].Map())
	assert.Equal(t, 0.75, s.EpochMetrics["train"].Map()["acc"])
}
