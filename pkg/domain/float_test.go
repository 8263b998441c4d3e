package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.25, `0.25`},
		{-3, `-3`},
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(domain.Float(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestFloat_UnmarshalJSON(t *testing.T) {
	var f domain.Float

	require.NoError(t, json.Unmarshal([]byte(`0.5`), &f))
	assert.Equal(t, 0.5, float64(f))

	require.NoError(t, json.Unmarshal([]byte(`"+Inf"`), &f))
	assert.True(t, math.IsInf(float64(f), 1))

	require.NoError(t, json.Unmarshal([]byte(`"-Inf"`), &f))
	assert.True(t, math.IsInf(float64(f), -1))

	require.NoError(t, json.Unmarshal([]byte(`"NaN"`), &f))
	assert.True(t, math.IsNaN(float64(f)))

	f = 1
	require.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.True(t, math.IsNaN(float64(f)))

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &f))
}
