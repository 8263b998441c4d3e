package tests

import (
	"context"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/stretchr/testify/require"
)

// ObserverContractTest is a reusable test suite that verifies an observer survives a
// complete lifecycle (train then infer) with populated metrics.
// It returns the final train state for adapter-specific assertions.
func ObserverContractTest(t *testing.T, obs observer.Observer) *domain.RunState {
	t.Helper()
	ctx := context.Background()

	drive := func(t *testing.T, s *domain.RunState, loaders ...string) {
		start, end := domain.ModeHooks(s.Mode)
		require.NoError(t, observer.Invoke(ctx, obs, start, s))
		require.NoError(t, observer.Invoke(ctx, obs, domain.HookEpochStart, s))
		for _, name := range loaders {
			s.Loader = name
			s.ResetLoader()
			require.NoError(t, observer.Invoke(ctx, obs, domain.HookLoaderStart, s))
			for step := 0; step < 2; step++ {
				s.Step = step
				s.ResetBatch()
				require.NoError(t, observer.Invoke(ctx, obs, domain.HookBatchStart, s))
				s.BatchMetrics.Set("loss", float64(step+1))
				s.BatchMetrics.Set("accuracy", 0.5)
				require.NoError(t, observer.Invoke(ctx, obs, domain.HookBatchEnd, s))
			}
			s.LoaderMetrics.Set("loss", 1.5)
			s.LoaderMetrics.Set("accuracy", 0.5)
			s.EpochMetrics[name] = s.LoaderMetrics.Clone()
			require.NoError(t, observer.Invoke(ctx, obs, domain.HookLoaderEnd, s))
		}
		require.NoError(t, observer.Invoke(ctx, obs, domain.HookEpochEnd, s))
		require.NoError(t, observer.Invoke(ctx, obs, end, s))
	}

	var train *domain.RunState
	t.Run("Train", func(t *testing.T) {
		train = domain.NewRunState("contract-run", domain.ModeTrain)
		drive(t, train, "train", "valid")
	})
	t.Run("Infer", func(t *testing.T) {
		drive(t, domain.NewRunState("contract-run-infer", domain.ModeInfer), "test")
	})
	return train
}
