// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package transforms

import (
	"fmt"
	"image"

	"github.com/gomlx/augment/pkg/imageops"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Enhance is a stochastic enhancement transform: Saturation (canonical name
// "Color"), Contrast, Brightness or Sharpness. Each blends the image against
// a degenerate rendition of itself with a fixed factor: 0 yields the
// degenerate image, 1 the original, larger factors extrapolate past it.
// Sample consumes no randomness.
type Enhance struct {
	op        Op
	paramName string
	factor    float64
	p         float64
}

func newEnhance(op Op, paramName string, factor float64) *Enhance {
	return &Enhance{op: op, paramName: paramName, factor: factor, p: 1}
}

// NewSaturation returns a transform that blends against the grayscale
// rendition of the image. Its canonical operation name is "Color".
func NewSaturation(factor float64) *Enhance {
	return newEnhance(OpColor, "saturation", factor)
}

// NewContrast returns a transform that blends against a solid image of the
// mean luminosity.
func NewContrast(factor float64) *Enhance {
	return newEnhance(OpContrast, "contrast", factor)
}

// NewBrightness returns a transform that blends against black.
func NewBrightness(factor float64) *Enhance {
	return newEnhance(OpBrightness, "brightness", factor)
}

// NewSharpness returns a transform that blends against a smoothed rendition
// of the image.
func NewSharpness(factor float64) *Enhance {
	return newEnhance(OpSharpness, "sharpness", factor)
}

// WithProbability sets the chance that an application fires. It panics if p
// is outside [0.0, 1.0]. It returns t to allow chaining.
func (t *Enhance) WithProbability(p float64) *Enhance {
	if p < 0 || p > 1 {
		exceptions.Panicf("transforms: probability must be in [0.0, 1.0], got %g", p)
	}
	t.p = p
	return t
}

// Op implements Transform.
func (t *Enhance) Op() Op { return t.op }

// Probability implements Transform.
func (t *Enhance) Probability() float64 { return t.p }

// Sample implements Transform. Enhancements have a fixed factor, so no
// randomness is consumed.
func (t *Enhance) Sample(rng Rand) Params {
	return Params{Name: t.paramName, Value: t.factor}
}

// Apply implements Transform.
func (t *Enhance) Apply(img image.Image, params Params) (image.Image, error) {
	if img == nil {
		return nil, errors.Errorf("cannot apply %s to a nil image", t.op)
	}
	switch t.op {
	case OpColor:
		return imageops.EnhanceSaturation(img, params.Value), nil
	case OpContrast:
		return imageops.EnhanceContrast(img, params.Value), nil
	case OpBrightness:
		return imageops.EnhanceBrightness(img, params.Value), nil
	case OpSharpness:
		return imageops.EnhanceSharpness(img, params.Value), nil
	}
	return nil, errors.Errorf("transform %s is not an enhancement operation", t.op)
}

// Diagnostic implements Transform.
func (t *Enhance) Diagnostic(params Params) string {
	return fmt.Sprintf("adjusted %s by factor %v", t.paramName, params.Value)
}

// String implements Transform (and fmt.Stringer).
func (t *Enhance) String() string {
	return fmt.Sprintf("%s(%s=%v, p=%v)", t.op, t.paramName, t.factor, t.p)
}
