package memory_test

import (
	"sync"
	"testing"

	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/domain"
	contract "github.com/aretw0/cadence/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Contract(t *testing.T) {
	rec := memory.NewRecorder()
	contract.ObserverContractTest(t, rec)

	hooks := rec.Hooks()
	require.NotEmpty(t, hooks)
	assert.Equal(t, domain.HookTrainStart, hooks[0])
	assert.Equal(t, domain.HookInferEnd, hooks[len(hooks)-1])

	snap := rec.Snapshot()
	assert.Equal(t, "contract-run-infer", snap.RunID)
	assert.Equal(t, domain.HookInferEnd, snap.LastHook)
	assert.Equal(t, 6, snap.Batches)
	assert.Equal(t, []string{"loss", "accuracy"}, snap.LoaderMetrics.Keys())
}

func TestRecorder_SnapshotIsDetached(t *testing.T) {
	rec := memory.NewRecorder()
	s := domain.NewRunState("r", domain.ModeTrain)
	s.BatchMetrics.Set("loss", 1)
	require.NoError(t, rec.OnBatchEnd(t.Context(), s))

	s.BatchMetrics.Set("loss", 99)
	v, ok := rec.Snapshot().BatchMetrics.Get("loss")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	rec.Reset()
	assert.Empty(t, rec.Calls())
	assert.Empty(t, rec.Snapshot().RunID)
}

func TestRecorder_ConcurrentReads(t *testing.T) {
	rec := memory.NewRecorder()
	s := domain.NewRunState("r", domain.ModeTrain)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = rec.Snapshot()
			_ = rec.Calls()
		}
	}()
	for i := 0; i < 100; i++ {
		s.Step = i
		require.NoError(t, rec.OnBatchEnd(t.Context(), s))
	}
	wg.Wait()
	assert.Len(t, rec.Calls(), 100)
}
