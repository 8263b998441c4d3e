package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scalarTensor struct{ v float64 }

func (s scalarTensor) Item() float64 { return s.v }

type score float32

type pointerTensor struct{ v float64 }

func (p *pointerTensor) Item() float64 { return p.v }

func TestExtractValue_Accepted(t *testing.T) {
	half := 0.5
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float64", 0.75, 0.75},
		{"float32", float32(0.5), 0.5},
		{"int", 3, 3},
		{"int64", int64(-2), -2},
		{"uint8", uint8(7), 7},
		{"named float", score(0.25), 0.25},
		{"json number", json.Number("1.5"), 1.5},
		{"boxed scalar", scalarTensor{v: 0.9}, 0.9},
		{"single element slice", []float64{0.1}, 0.1},
		{"single element array", [1]int{4}, 4},
		{"nested single element", [][]float32{{2}}, 2},
		{"single boxed in slice", []domain.Itemer{scalarTensor{v: 3}}, 3},
		{"pointer", &half, 0.5},
		{"boxed pointer", &pointerTensor{v: 0.2}, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ExtractValue(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestExtractValue_Rejected(t *testing.T) {
	var nilPtr *float64
	var nilTensor *pointerTensor
	inputs := map[string]any{
		"nil":            nil,
		"string":         "0.5",
		"bool":           true,
		"empty slice":    []float64{},
		"two elements":   []float64{1, 2},
		"map":            map[string]float64{"a": 1},
		"struct":         struct{ V float64 }{1},
		"nil pointer":    nilPtr,
		"nil boxed":      nilTensor,
		"nil in slice":   []domain.Itemer{nilTensor},
		"bad number":     json.Number("abc"),
		"slice of words": []string{"x"},
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = domain.ExtractValue(in) })
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrUnsupportedMetricType))

			var typed *domain.UnsupportedMetricTypeError
			assert.True(t, errors.As(err, &typed))
		})
	}
}
