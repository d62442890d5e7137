// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package transforms

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand returns queued values and counts every draw, so tests can
// assert exactly how much randomness a code path consumes. Exhausted queues
// yield zero.
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

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestOpNames(t *testing.T) {
	names := OpNames()
	require.Len(t, names, 14)
	for _, name := range names {
		op, err := ParseOp(name)
		require.NoError(t, err)
		assert.Equal(t, name, op.String())
	}

	_, err := ParseOp("shearx")
	require.Error(t, err, "parsing is case-sensitive")
	assert.Contains(t, err.Error(), `"shearx"`)
	assert.Equal(t, "Op(99)", Op(99).String())
}

func TestCheckProb(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.3, 0.7, 0.0, 0.999}}
	assert.True(t, CheckProb(rng, 0.5))
	assert.False(t, CheckProb(rng, 0.5))
	assert.False(t, CheckProb(rng, 0), "p=0 never fires")
	assert.True(t, CheckProb(rng, 1), "p=1 always fires")
	assert.Equal(t, 4, rng.draws, "every check consumes exactly one draw")
}

func TestWithProbabilityPanics(t *testing.T) {
	assert.Panics(t, func() { NewRotate(1).WithProbability(-0.1) })
	assert.Panics(t, func() { NewPosterize(4).WithProbability(1.1) })
	assert.Panics(t, func() { NewContrast(1).WithProbability(2) })
	assert.NotPanics(t, func() { NewRotate(1).WithProbability(0).WithProbability(1) })
}

func TestApplyGate(t *testing.T) {
	img := solid(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	tr := NewInvert().WithProbability(0.5)

	rng := &scriptedRand{floats: []float64{0.9}}
	out, step, err := ApplyWithDiagnostic(tr, rng, img)
	require.NoError(t, err)
	assert.False(t, step.Applied)
	assert.Empty(t, step.Detail)
	assert.Equal(t, Params{}, step.Params)
	assert.Same(t, img, out, "a skipped step passes the image through")
	assert.Equal(t, 1, rng.draws, "only the gate draw")

	rng = &scriptedRand{floats: []float64{0.2}}
	out, step, err = ApplyWithDiagnostic(tr, rng, img)
	require.NoError(t, err)
	assert.True(t, step.Applied)
	assert.Equal(t, "inverted all channels", step.Detail)
	assert.Equal(t, color.NRGBA{R: 245, G: 235, B: 225, A: 255}, out.(*image.NRGBA).NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, img.NRGBAAt(0, 0), "input never modified")
}

func TestApplyDrawOrder(t *testing.T) {
	img := solid(4, 4, color.NRGBA{R: 200, A: 255})
	tr := NewRotate(90).WithProbability(0.5)

	// The mirror draw precedes the gate draw, and a skipped step still
	// records its sampled params.
	rng := &scriptedRand{floats: []float64{0.7, 0.9}}
	out, step, err := ApplyWithDiagnostic(tr, rng, img)
	require.NoError(t, err)
	assert.Equal(t, 2, rng.draws)
	assert.False(t, step.Applied)
	assert.Equal(t, Params{Name: "rotate", Value: 90}, step.Params)
	assert.Same(t, img, out)

	rng = &scriptedRand{floats: []float64{0.3, 0.1}}
	_, step, err = ApplyWithDiagnostic(tr, rng, img)
	require.NoError(t, err)
	assert.True(t, step.Applied)
	assert.Equal(t, -90.0, step.Params.Value, "mirror draw below 0.5 flips the sign")
	assert.Equal(t, "rotated by -90 degrees", step.Detail)
}

func TestApplyWrapsTransformErrors(t *testing.T) {
	img := solid(2, 2, color.NRGBA{A: 255})
	out, err := Apply(NewPosterize(9), &scriptedRand{floats: []float64{0.0}}, img)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "applying Posterize")
	assert.Contains(t, err.Error(), "bits")
}

func TestApplyDefaultRand(t *testing.T) {
	img := solid(2, 2, color.NRGBA{R: 5, G: 5, B: 5, A: 255})
	out, err := Apply(NewEqualize(), nil, img)
	require.NoError(t, err)
	require.NotNil(t, out)
}

func TestStepString(t *testing.T) {
	img := solid(2, 2, color.NRGBA{R: 100, A: 255})

	_, step, err := ApplyWithDiagnostic(NewRotate(27).WithMirror(false),
		&scriptedRand{floats: []float64{0.0}}, img)
	require.NoError(t, err)
	assert.Equal(t, "Rotate applied with rotate=27: rotated by 27 degrees", step.String())

	_, step, err = ApplyWithDiagnostic(NewInvert().WithProbability(0),
		&scriptedRand{floats: []float64{0.5}}, img)
	require.NoError(t, err)
	assert.Equal(t, "Invert skipped", step.String())
}
