// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package imageops

import (
	"fmt"
	"image"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"k8s.io/klog/v2"
)

// Interpolation selects how source pixels are sampled by the affine warps.
type Interpolation int

const (
	// Nearest takes the nearest source pixel. It is the fastest and the
	// default, matching how augmentation policies are usually evaluated.
	Nearest Interpolation = iota
	// Bilinear blends the four surrounding source pixels.
	Bilinear
	// CatmullRom uses a Catmull-Rom cubic kernel, the smoothest (and
	// slowest) of the three.
	CatmullRom
)

func (i Interpolation) String() string {
	switch i {
	case Nearest:
		return "Nearest"
	case Bilinear:
		return "Bilinear"
	case CatmullRom:
		return "CatmullRom"
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

func (i Interpolation) interpolator() draw.Interpolator {
	switch i {
	case Nearest:
		return draw.NearestNeighbor
	case Bilinear:
		return draw.ApproxBiLinear
	case CatmullRom:
		return draw.CatmullRom
	}
	klog.Errorf("invalid Interpolation(%d), falling back to nearest-neighbor", int(i))
	return draw.NearestNeighbor
}

// warpAffine renders img through the inverse affine map given by coeffs:
// the output pixel at (x, y) is sampled from the source position
// (a*x + b*y + c, d*x + e*y + f), with coeffs holding (a, b, c, d, e, f).
// The output canvas has the dimensions of the input, and output pixels whose
// source position falls outside the image stay transparent black.
func warpAffine(img image.Image, coeffs [6]float64, interp Interpolation) (*image.NRGBA, error) {
	a, b, c, d, e, f := coeffs[0], coeffs[1], coeffs[2], coeffs[3], coeffs[4], coeffs[5]
	det := a*e - b*d
	if math.Abs(det) < 1e-12 {
		return nil, errors.Errorf("affine transform %v is degenerate and cannot be rendered", coeffs)
	}
	src := toNRGBA(img)
	dst := image.NewNRGBA(src.Bounds())
	// The interpolators take the source-to-destination matrix and invert it
	// themselves, so hand them the inverse of the map above.
	srcToDst := f64.Aff3{
		e / det, -b / det, (b*f - c*e) / det,
		-d / det, a / det, (c*d - a*f) / det,
	}
	interp.interpolator().Transform(dst, srcToDst, src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Shear skews the image: every output row y samples the source sx*y pixels to
// the right, and every output column x samples the source sy*x pixels down.
// Positive sx therefore slides rows further down the image further left, and
// positive sy slides columns further right further up. The canvas keeps its
// size; uncovered pixels are transparent black.
//
// Shearing both axes at once with sx*sy == 1 collapses the image plane and
// returns an error.
func Shear(img image.Image, sx, sy float64, interp Interpolation) (*image.NRGBA, error) {
	return warpAffine(img, [6]float64{1, sx, 0, sy, 1, 0}, interp)
}

// Translate shifts the visible content left by tx pixels and up by ty pixels
// (negative values shift right and down). The canvas keeps its size;
// uncovered pixels are transparent black.
func Translate(img image.Image, tx, ty float64, interp Interpolation) (*image.NRGBA, error) {
	return warpAffine(img, [6]float64{1, 0, tx, 0, 1, ty}, interp)
}

// Rotate turns the image counterclockwise by the given angle in degrees
// around the image center. The canvas keeps its size, so corners may rotate
// out of view; uncovered pixels are transparent black.
func Rotate(img image.Image, degrees float64, interp Interpolation) (*image.NRGBA, error) {
	size := img.Bounds().Size()
	cx, cy := float64(size.X)/2, float64(size.Y)/2
	sin, cos := math.Sincos(-degrees * math.Pi / 180)
	coeffs := [6]float64{cos, sin, 0, -sin, cos, 0}
	coeffs[2] = cos*(-cx) + sin*(-cy) + cx
	coeffs[5] = -sin*(-cx) + cos*(-cy) + cy
	return warpAffine(img, coeffs, interp)
}
