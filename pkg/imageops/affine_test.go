// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package imageops

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	marker     = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	background = gray(50)
	empty      = color.NRGBA{}
)

// markerImage is a background-filled w x h image with a single marker pixel.
func markerImage(w, h, x, y int) *image.NRGBA {
	img := solid(w, h, background)
	img.SetNRGBA(x, y, marker)
	return img
}

func TestTranslate(t *testing.T) {
	img := markerImage(4, 4, 3, 1)
	before := slices.Clone(img.Pix)

	out, err := Translate(img, 2, 0, Nearest)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds(), "canvas size must be preserved")
	assert.Equal(t, marker, out.NRGBAAt(1, 1), "content must shift left by tx pixels")
	assert.Equal(t, background, out.NRGBAAt(0, 0))
	assert.Equal(t, empty, out.NRGBAAt(2, 1), "uncovered pixels must be transparent black")
	assert.Equal(t, empty, out.NRGBAAt(3, 3))
	assert.Equal(t, before, img.Pix, "input image must not be modified")

	out, err = Translate(img, 0, -2, Nearest)
	require.NoError(t, err)
	assert.Equal(t, marker, out.NRGBAAt(3, 3), "negative ty must shift content down")
	assert.Equal(t, empty, out.NRGBAAt(0, 0))
}

func TestShear(t *testing.T) {
	img := markerImage(6, 4, 4, 2)

	out, err := Shear(img, 0.5, 0, Nearest)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 6, 4), out.Bounds())
	assert.Equal(t, marker, out.NRGBAAt(3, 2), "row 2 must sample the source 0.5*2.5 pixels to the right")
	assert.Equal(t, background, out.NRGBAAt(4, 2))
	assert.Equal(t, background, out.NRGBAAt(0, 0), "row 0 must stay in place")
	assert.Equal(t, empty, out.NRGBAAt(5, 3), "sheared-in region must be transparent")

	_, err = Shear(img, 1, 1, Nearest)
	require.Error(t, err, "sx*sy == 1 collapses the plane and cannot be rendered")
}

func TestRotate(t *testing.T) {
	img := markerImage(4, 4, 3, 0)
	before := slices.Clone(img.Pix)

	out, err := Rotate(img, 90, Nearest)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds(), "rotation must keep the canvas")
	assert.Equal(t, marker, out.NRGBAAt(0, 0), "90 degrees counterclockwise moves the top-right corner to the top-left")
	assert.Equal(t, background, out.NRGBAAt(3, 0))
	assert.Equal(t, before, img.Pix, "input image must not be modified")

	out, err = Rotate(img, 0, Nearest)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, out.Pix, "rotation by 0 degrees must be the identity")
}

func TestRotatePreservesAlpha(t *testing.T) {
	img := solid(5, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 200})
	out, err := Rotate(img, 45, Nearest)
	require.NoError(t, err)
	center := out.NRGBAAt(2, 2)
	assert.Equal(t, uint8(200), center.A, "covered pixels must keep the source alpha")
}

func TestInterpolators(t *testing.T) {
	img := markerImage(8, 8, 4, 4)
	before := slices.Clone(img.Pix)
	for _, interp := range []Interpolation{Nearest, Bilinear, CatmullRom} {
		out, err := Rotate(img, 30, interp)
		require.NoErrorf(t, err, "Rotate with %s", interp)
		assert.Equalf(t, image.Rect(0, 0, 8, 8), out.Bounds(), "Rotate with %s", interp)
		assert.Equalf(t, before, img.Pix, "Rotate with %s must not modify its input", interp)
	}
}

func TestInterpolationString(t *testing.T) {
	assert.Equal(t, "Nearest", Nearest.String())
	assert.Equal(t, "Bilinear", Bilinear.String())
	assert.Equal(t, "CatmullRom", CatmullRom.String())
	assert.Equal(t, "Interpolation(7)", Interpolation(7).String())
}
