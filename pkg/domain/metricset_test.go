package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricSet_InsertionOrderAndOverwrite(t *testing.T) {
	m := domain.NewMetricSet()
	m.Set("loss", 1.5)
	m.Set("acc", 0.5)
	m.Set("loss", 0.25)

	assert.Equal(t, []string{"loss", "acc"}, m.Keys())
	v, ok := m.Get("loss")
	require.True(t, ok)
	assert.Equal(t, 0.25, v)
	assert.Equal(t, 2, m.Len())
}

func TestMetricSet_ZeroValueUsable(t *testing.T) {
	var m domain.MetricSet
	m.Set("a", 1)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestMetricSet_ResetAndClone(t *testing.T) {
	m := domain.NewMetricSet()
	m.Set("a", 1)
	c := m.Clone()
	m.Reset()

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, []string{"a"}, c.Keys())

	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestMetricSet_MarshalJSONKeepsOrder(t *testing.T) {
	m := domain.NewMetricSet()
	m.Set("z", 1)
	m.Set("a", 0.5)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":0.5}`, string(b))
}

func TestMetricSet_MarshalJSONNonFinite(t *testing.T) {
	m := domain.NewMetricSet()
	m.Set("loss", math.Inf(1))
	m.Set("accuracy", math.NaN())

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"loss":"+Inf","accuracy":"NaN"}`, string(b))
}

func TestMetricSet_NilReceiverReads(t *testing.T) {
	var m *domain.MetricSet
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("x")
	assert.False(t, ok)
	assert.Empty(t, m.Map())
}
