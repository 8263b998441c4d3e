package synthetic

import (
	"context"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Deterministic(t *testing.T) {
	ctx := context.Background()
	a := NewLoader("train", 3, 8, 4, 42)
	b := NewLoader("train", 3, 8, 4, 42)
	c := NewLoader("valid", 3, 8, 4, 42)

	ba, err := a.Batch(ctx, 1)
	require.NoError(t, err)
	bb, err := b.Batch(ctx, 1)
	require.NoError(t, err)
	bc, err := c.Batch(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, ba, bb)
	assert.NotEqual(t, ba, bc)

	targets := ba[domain.DefaultInputKey].([]int)
	assert.Len(t, targets, 8)
	for _, y := range targets {
		assert.GreaterOrEqual(t, y, 0)
		assert.Less(t, y, 4)
	}

	_, err = a.Batch(ctx, 3)
	assert.Error(t, err)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, "train", a.Name())
}

func TestModel_Handler(t *testing.T) {
	s := domain.NewRunState("r", domain.ModeTrain)
	s.Loader = "train"
	s.Input[domain.DefaultInputKey] = []int{0, 1, 2}

	m := Model{Classes: 3, Noise: 0.1, Seed: 1}
	require.NoError(t, m.Handler()(context.Background(), s))

	logits := s.Output[domain.DefaultOutputKey].([][]float64)
	require.Len(t, logits, 3)
	for _, row := range logits {
		assert.Len(t, row, 3)
	}
	assert.Greater(t, s.Output["loss"].(float64), 0.0)
}

func TestModel_HandlerRejectsBadTargets(t *testing.T) {
	s := domain.NewRunState("r", domain.ModeTrain)
	err := Model{Classes: 3}.Handler()(context.Background(), s)
	assert.ErrorIs(t, err, domain.ErrKeyMissing)

	s.Input[domain.DefaultInputKey] = "oops"
	assert.Error(t, Model{Classes: 3}.Handler()(context.Background(), s))
}

func TestCrossEntropy(t *testing.T) {
	assert.InDelta(t, 0.6931, crossEntropy([]float64{0, 0}, 1), 1e-4)
}
