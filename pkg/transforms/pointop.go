// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package transforms

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gomlx/augment/pkg/imageops"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// PointOp is a stochastic per-channel look-up-table transform: Posterize,
// Solarize, Invert, AutoContrast or Equalize. Posterize and Solarize carry a
// fixed parameter (bit count, threshold); the other three are parameterless.
// Sample consumes no randomness for any of them.
type PointOp struct {
	op        Op
	paramName string
	value     float64
	p         float64
}

func newPointOp(op Op, paramName string, value float64) *PointOp {
	return &PointOp{op: op, paramName: paramName, value: value, p: 1}
}

// NewPosterize returns a transform that keeps only the top bits of each
// R/G/B channel value. bits must be in [1, 8]; Apply rejects values outside
// that range.
func NewPosterize(bits int) *PointOp {
	return newPointOp(OpPosterize, "bits", float64(bits))
}

// NewSolarize returns a transform that inverts every R/G/B channel value at
// or above threshold. threshold must be in [0, 256]; 256 leaves all values
// untouched.
func NewSolarize(threshold int) *PointOp {
	return newPointOp(OpSolarize, "threshold", float64(threshold))
}

// NewInvert returns a transform that inverts all R/G/B channel values.
func NewInvert() *PointOp {
	return newPointOp(OpInvert, "", 0)
}

// NewAutoContrast returns a transform that remaps each channel so its
// darkest value becomes 0 and its brightest becomes 255.
func NewAutoContrast() *PointOp {
	return newPointOp(OpAutoContrast, "", 0)
}

// NewEqualize returns a transform that equalizes each channel's histogram.
func NewEqualize() *PointOp {
	return newPointOp(OpEqualize, "", 0)
}

// WithProbability sets the chance that an application fires. It panics if p
// is outside [0.0, 1.0]. It returns t to allow chaining.
func (t *PointOp) WithProbability(p float64) *PointOp {
	if p < 0 || p > 1 {
		exceptions.Panicf("transforms: probability must be in [0.0, 1.0], got %g", p)
	}
	t.p = p
	return t
}

// Op implements Transform.
func (t *PointOp) Op() Op { return t.op }

// Probability implements Transform.
func (t *PointOp) Probability() float64 { return t.p }

// Sample implements Transform. Point operations have fixed parameters, so no
// randomness is consumed.
func (t *PointOp) Sample(rng Rand) Params {
	if t.paramName == "" {
		return Params{}
	}
	return Params{Name: t.paramName, Value: t.value}
}

// Apply implements Transform.
func (t *PointOp) Apply(img image.Image, params Params) (image.Image, error) {
	if img == nil {
		return nil, errors.Errorf("cannot apply %s to a nil image", t.op)
	}
	switch t.op {
	case OpPosterize:
		bits := int(params.Value)
		if float64(bits) != params.Value || bits < 1 || bits > 8 {
			return nil, errors.Errorf("posterize bits must be an integer in [1, 8], got %v", params.Value)
		}
		return imageops.Posterize(img, bits), nil
	case OpSolarize:
		threshold := int(params.Value)
		if float64(threshold) != params.Value || threshold < 0 || threshold > 256 {
			return nil, errors.Errorf("solarize threshold must be an integer in [0, 256], got %v", params.Value)
		}
		return imageops.Solarize(img, threshold), nil
	case OpInvert:
		return imaging.Invert(img), nil
	case OpAutoContrast:
		return imageops.AutoContrast(img), nil
	case OpEqualize:
		return imageops.Equalize(img), nil
	}
	return nil, errors.Errorf("transform %s is not a point operation", t.op)
}

// Diagnostic implements Transform.
func (t *PointOp) Diagnostic(params Params) string {
	switch t.op {
	case OpPosterize:
		return fmt.Sprintf("posterized to %d bits", int(params.Value))
	case OpSolarize:
		return fmt.Sprintf("inverted values >= %d", int(params.Value))
	case OpInvert:
		return "inverted all channels"
	case OpAutoContrast:
		return "stretched per-channel contrast to full range"
	case OpEqualize:
		return "equalized per-channel histograms"
	}
	return t.op.String()
}

// String implements Transform (and fmt.Stringer).
func (t *PointOp) String() string {
	if t.paramName == "" {
		return fmt.Sprintf("%s(p=%v)", t.op, t.p)
	}
	return fmt.Sprintf("%s(%s=%v, p=%v)", t.op, t.paramName, t.value, t.p)
}
