package metrics_test

import (
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	labels = []int{0, 1, 2, 1}
	scores = [][]float64{
		{0.9, 0.05, 0.05}, // hit
		{0.6, 0.3, 0.1},   // target ranked 2nd
		{0.1, 0.2, 0.7},   // hit
		{0.5, 0.1, 0.4},   // target ranked 3rd
	}
)

func TestAccuracy(t *testing.T) {
	v, err := metrics.Accuracy(labels, scores, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}

func TestAccuracy_Float32Scores(t *testing.T) {
	v, err := metrics.Accuracy([]int64{1}, [][]float32{{0.1, 0.9}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestTopKAccuracy(t *testing.T) {
	v, err := metrics.TopKAccuracy(labels, scores, []string{"01", "02", "03"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{0.5, 0.75, 1.0}, v)
}

func TestTopKAccuracy_InvalidK(t *testing.T) {
	_, err := metrics.TopKAccuracy(labels, scores, []string{"00"}, nil)
	assert.Error(t, err)
	_, err = metrics.TopKAccuracy(labels, scores, []string{"top"}, nil)
	assert.Error(t, err)
}

func TestClassification_InputErrors(t *testing.T) {
	_, err := metrics.Accuracy("labels", scores, nil)
	assert.Error(t, err)
	_, err = metrics.Accuracy(labels, []float64{1}, nil)
	assert.Error(t, err)
	_, err = metrics.Accuracy([]int{0}, scores, nil)
	assert.ErrorContains(t, err, "batch size mismatch")
	_, err = metrics.Accuracy([]int{5}, [][]float64{{1, 0}}, nil)
	assert.ErrorContains(t, err, "out of range")
	_, err = metrics.Accuracy([]int{}, [][]float64{}, nil)
	assert.ErrorContains(t, err, "empty batch")
}

func TestBinaryAccuracy_Threshold(t *testing.T) {
	targets := []float64{1, 0, 1, 0}
	probs := []float64{0.6, 0.4, 0.35, 0.2}

	v, err := metrics.BinaryAccuracy(targets, probs, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.75, v)

	v, err = metrics.BinaryAccuracy(targets, probs, domain.Params{"threshold": "0.3"})
	require.NoError(t, err)
	assert.Equal(t, 0.75, v)

	v, err = metrics.BinaryAccuracy(targets, probs, domain.Params{"threshold": 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	_, err = metrics.BinaryAccuracy(targets, probs, domain.Params{"threshold": []int{1}})
	assert.Error(t, err)
}

func TestMeanSquaredError(t *testing.T) {
	v, err := metrics.MeanSquaredError([]float64{1, 2, 3}, []float32{1, 2, 5}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, v, 1e-9)

	_, err = metrics.MeanSquaredError([]float64{1}, []string{"x"}, nil)
	assert.Error(t, err)
}

func TestPassthrough(t *testing.T) {
	v, err := metrics.Passthrough(labels, 0.25, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)
}
