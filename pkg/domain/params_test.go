package domain_test

import (
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thresholdParams struct {
	Threshold float64 `mapstructure:"threshold"`
	Classes   []int   `mapstructure:"classes"`
}

func TestParams_Decode(t *testing.T) {
	p := domain.Params{"threshold": "0.3", "classes": []any{1, 2}}

	var out thresholdParams
	require.NoError(t, p.Decode(&out))
	assert.Equal(t, 0.3, out.Threshold)
	assert.Equal(t, []int{1, 2}, out.Classes)
}

func TestParams_DecodeKeepsDefaultsOnNil(t *testing.T) {
	var p domain.Params
	out := thresholdParams{Threshold: 0.5}
	require.NoError(t, p.Decode(&out))
	assert.Equal(t, 0.5, out.Threshold)
}

func TestParams_DecodeInvalid(t *testing.T) {
	p := domain.Params{"threshold": []int{1}}
	var out thresholdParams
	assert.Error(t, p.Decode(&out))
}

func TestParams_Clone(t *testing.T) {
	p := domain.Params{"a": 1}
	c := p.Clone()
	c["a"] = 2
	assert.Equal(t, 1, p["a"])
	assert.Nil(t, domain.Params{}.Clone())
}
