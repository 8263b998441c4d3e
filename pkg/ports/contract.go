package ports

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunHistoryStoreContract runs a suite of tests to verify that a HistoryStore implementation
// adheres to the defined interface contract.
func RunHistoryStoreContract(t *testing.T, store HistoryStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Append and Query", func(t *testing.T) {
		records := []MetricRecord{
			{RunID: runID, Mode: "train", Epoch: 0, Loader: "train", Metric: "loss", Value: 0.5, Time: ts},
			{RunID: runID, Mode: "train", Epoch: 0, Loader: "train", Metric: "accuracy", Value: 0.75, Time: ts},
			{RunID: runID, Mode: "train", Epoch: 0, Loader: "valid", Metric: "loss", Value: 0.25, Time: ts},
		}
		require.NoError(t, store.Append(ctx, records...), "Append should not return error")

		got, err := store.Query(ctx, runID)
		require.NoError(t, err, "Query should not return error")
		require.Len(t, got, 3)
		for i := range records {
			assert.Equal(t, records[i].Metric, got[i].Metric)
			assert.Equal(t, records[i].Loader, got[i].Loader)
			assert.InDelta(t, records[i].Value, got[i].Value, 1e-12)
			assert.True(t, records[i].Time.Equal(got[i].Time), "timestamp should round-trip")
		}
	})

	t.Run("Append Nothing", func(t *testing.T) {
		assert.NoError(t, store.Append(ctx))
	})

	t.Run("Query Unknown Run", func(t *testing.T) {
		_, err := store.Query(ctx, "missing-"+runID)
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("Non-Finite Values", func(t *testing.T) {
		diverged := runID + "-diverged"
		require.NoError(t, store.Append(ctx,
			MetricRecord{RunID: diverged, Mode: "train", Loader: "train", Metric: "loss", Value: math.NaN(), Time: ts},
			MetricRecord{RunID: diverged, Mode: "train", Loader: "train", Metric: "grad", Value: math.Inf(1), Time: ts},
			MetricRecord{RunID: diverged, Mode: "train", Loader: "train", Metric: "logp", Value: math.Inf(-1), Time: ts},
		), "Append should accept NaN and infinities")

		got, err := store.Query(ctx, diverged)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, math.IsNaN(got[0].Value), "NaN should round-trip")
		assert.True(t, math.IsInf(got[1].Value, 1), "+Inf should round-trip")
		assert.True(t, math.IsInf(got[2].Value, -1), "-Inf should round-trip")
	})

	t.Run("Runs", func(t *testing.T) {
		other := runID + "-other"
		require.NoError(t, store.Append(ctx, MetricRecord{RunID: other, Mode: "infer", Loader: "test", Metric: "accuracy", Value: 1, Time: ts}))

		runs, err := store.Runs(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, runID)
		assert.Contains(t, runs, other)
	})
}
