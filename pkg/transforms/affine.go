// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package transforms

import (
	"fmt"
	"image"

	"github.com/gomlx/augment/pkg/imageops"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Affine is a stochastic geometric transform: ShearX, ShearY, TranslateX,
// TranslateY or Rotate. It is created by the corresponding New* constructor
// and configured with the With* methods, which return the Affine itself so
// calls can be chained:
//
//	t := transforms.NewRotate(15).WithProbability(0.7).WithMirror(false)
//
// By default an Affine fires always (p=1), mirrors its magnitude (a sign
// flip with probability 0.5 drawn at Sample time) and resamples with
// imageops.Nearest.
type Affine struct {
	op        Op
	paramName string
	magnitude float64
	p         float64
	mirror    bool
	interp    imageops.Interpolation
}

func newAffine(op Op, paramName string, magnitude float64) *Affine {
	return &Affine{
		op:        op,
		paramName: paramName,
		magnitude: magnitude,
		p:         1,
		mirror:    true,
		interp:    imageops.Nearest,
	}
}

// NewShearX returns a transform that shears horizontally, shifting each row
// by magnitude*y pixels.
func NewShearX(magnitude float64) *Affine {
	return newAffine(OpShearX, "shear_x", magnitude)
}

// NewShearY returns a transform that shears vertically, shifting each column
// by magnitude*x pixels.
func NewShearY(magnitude float64) *Affine {
	return newAffine(OpShearY, "shear_y", magnitude)
}

// NewTranslateX returns a transform that shifts the image horizontally by
// magnitude pixels.
func NewTranslateX(magnitude float64) *Affine {
	return newAffine(OpTranslateX, "translate_x", magnitude)
}

// NewTranslateY returns a transform that shifts the image vertically by
// magnitude pixels.
func NewTranslateY(magnitude float64) *Affine {
	return newAffine(OpTranslateY, "translate_y", magnitude)
}

// NewRotate returns a transform that rotates the image counter-clockwise by
// magnitude degrees around its center, keeping the canvas size.
func NewRotate(magnitude float64) *Affine {
	return newAffine(OpRotate, "rotate", magnitude)
}

// WithProbability sets the chance that an application fires. It panics if p
// is outside [0.0, 1.0]. It returns t to allow chaining.
func (t *Affine) WithProbability(p float64) *Affine {
	if p < 0 || p > 1 {
		exceptions.Panicf("transforms: probability must be in [0.0, 1.0], got %g", p)
	}
	t.p = p
	return t
}

// WithMirror sets whether Sample flips the sign of the magnitude with
// probability 0.5. It returns t to allow chaining.
func (t *Affine) WithMirror(mirror bool) *Affine {
	t.mirror = mirror
	return t
}

// WithInterpolation sets the resampling method used when warping. It returns
// t to allow chaining.
func (t *Affine) WithInterpolation(interp imageops.Interpolation) *Affine {
	t.interp = interp
	return t
}

// Op implements Transform.
func (t *Affine) Op() Op { return t.op }

// Probability implements Transform.
func (t *Affine) Probability() float64 { return t.p }

// Sample implements Transform. With mirror enabled it consumes one draw to
// decide the sign of the magnitude; otherwise it consumes none.
func (t *Affine) Sample(rng Rand) Params {
	value := t.magnitude
	if t.mirror && CheckProb(rng, 0.5) {
		value = -value
	}
	return Params{Name: t.paramName, Value: value}
}

// Apply implements Transform.
func (t *Affine) Apply(img image.Image, params Params) (image.Image, error) {
	if img == nil {
		return nil, errors.Errorf("cannot apply %s to a nil image", t.op)
	}
	switch t.op {
	case OpShearX:
		return imageops.Shear(img, params.Value, 0, t.interp)
	case OpShearY:
		return imageops.Shear(img, 0, params.Value, t.interp)
	case OpTranslateX:
		return imageops.Translate(img, params.Value, 0, t.interp)
	case OpTranslateY:
		return imageops.Translate(img, 0, params.Value, t.interp)
	case OpRotate:
		return imageops.Rotate(img, params.Value, t.interp)
	}
	return nil, errors.Errorf("transform %s is not an affine operation", t.op)
}

// Diagnostic implements Transform.
func (t *Affine) Diagnostic(params Params) string {
	switch t.op {
	case OpShearX:
		return fmt.Sprintf("sheared horizontally by %v", params.Value)
	case OpShearY:
		return fmt.Sprintf("sheared vertically by %v", params.Value)
	case OpTranslateX:
		return fmt.Sprintf("translated horizontally by %vpx", params.Value)
	case OpTranslateY:
		return fmt.Sprintf("translated vertically by %vpx", params.Value)
	case OpRotate:
		return fmt.Sprintf("rotated by %v degrees", params.Value)
	}
	return fmt.Sprintf("%s with %s=%v", t.op, params.Name, params.Value)
}

// String implements Transform (and fmt.Stringer).
func (t *Affine) String() string {
	return fmt.Sprintf("%s(%s=%v, p=%v, mirror=%t, %s)",
		t.op, t.paramName, t.magnitude, t.p, t.mirror, t.interp)
}
