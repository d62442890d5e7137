// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package autoaugment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand returns queued Float64 values (zero once exhausted) and
// counts draws. Intn always selects 0.
type scriptedRand struct {
	floats []float64
	draws  int
}

func (r *scriptedRand) Float64() float64 {
	var v float64
	if r.draws < len(r.floats) {
		v = r.floats[r.draws]
	}
	r.draws++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	r.draws++
	return 0
}

func TestBuildRejectsBadDefs(t *testing.T) {
	_, err := Build([]SubPolicyDef{{{"Posterise", 0.4, 8}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Posterise"`)
	assert.Contains(t, err.Error(), "sub-policy #0")
	assert.Contains(t, err.Error(), "ShearX", "unknown-op errors list the known operations")

	_, err = Build([]SubPolicyDef{{{"Rotate", 1.2, 8}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probability")

	_, err = Build([]SubPolicyDef{{{"Rotate", 0.5, 11}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level")

	policy, err := Build([]SubPolicyDef{
		{{"Equalize", 0.5, 0}},
		{{"Rotate", 0.5, -1}},
	})
	require.Error(t, err, "level below range")
	assert.Nil(t, policy, "no partial table on failure")
}

func TestKnownOps(t *testing.T) {
	assert.Equal(t, []string{
		"AutoContrast", "Brightness", "Color", "Contrast", "Equalize",
		"Invert", "Posterize", "Rotate", "Sharpness", "ShearX", "ShearY",
		"Solarize", "TranslateX", "TranslateY",
	}, KnownOps())
}
