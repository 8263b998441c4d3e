package observer_test

import (
	"context"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase_AllHooksAreNoOps(t *testing.T) {
	ctx := context.Background()
	s := domain.NewRunState("run", domain.ModeTrain)
	s.Input["targets"] = []int{1}
	s.BatchMetrics.Set("acc", 0.5)

	for _, h := range domain.Hooks() {
		require.NoError(t, observer.Invoke(ctx, observer.Base{}, h, s), h)
	}

	assert.Equal(t, map[string]any{"targets": []int{1}}, s.Input)
	assert.Empty(t, s.Output)
	assert.Equal(t, map[string]float64{"acc": 0.5}, s.BatchMetrics.Map())
	assert.Equal(t, 0, s.LoaderMetrics.Len())
}

func TestFuncs_CallsOnlySetHooks(t *testing.T) {
	ctx := context.Background()
	s := domain.NewRunState("run", domain.ModeTrain)

	var called []domain.Hook
	f := observer.Funcs{
		EpochStart: func(context.Context, *domain.RunState) error {
			called = append(called, domain.HookEpochStart)
			return nil
		},
		BatchEnd: func(context.Context, *domain.RunState) error {
			called = append(called, domain.HookBatchEnd)
			return nil
		},
	}

	for _, h := range domain.Hooks() {
		require.NoError(t, observer.Invoke(ctx, f, h, s))
	}
	assert.Equal(t, []domain.Hook{domain.HookEpochStart, domain.HookBatchEnd}, called)
}

func TestInvoke_UnknownHook(t *testing.T) {
	err := observer.Invoke(context.Background(), observer.Base{}, domain.Hook("on_nothing"), domain.NewRunState("r", domain.ModeTrain))
	assert.Error(t, err)
}

func TestMetricKey(t *testing.T) {
	assert.Equal(t, "p_a", observer.MetricKey("p", "a"))
	assert.Equal(t, "accuracy_01", observer.MetricKey("accuracy", "01"))
}
