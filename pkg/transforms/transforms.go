// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package transforms provides the stochastic image transforms that
// augmentation policies are assembled from.
//
// Every transform couples a pixel operation from pkg/imageops with the two
// pieces of randomness a policy step needs: a parameter draw (Sample) and a
// firing gate (its Probability, consulted by Apply and ApplyWithDiagnostic).
// The set of transforms is closed and covers three families:
//
//   - Affine: ShearX, ShearY, TranslateX, TranslateY and Rotate, with an
//     optional random sign flip of their magnitude ("mirror").
//   - PointOp: Posterize, Solarize, Invert, AutoContrast and Equalize,
//     per-channel look-up-table operations.
//   - Enhance: Saturation (canonical name "Color"), Contrast, Brightness
//     and Sharpness, blends against a degenerate rendition of the image.
//
// Transforms never modify their input image.
package transforms

import (
	"fmt"
	"image"
	"math/rand"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Op identifies one of the canonical operations. The names returned by
// String (and accepted, case-sensitively, by ParseOp) are the ones
// augmentation policy tables are written in.
type Op int

const (
	OpShearX Op = iota
	OpShearY
	OpTranslateX
	OpTranslateY
	OpRotate
	OpSolarize
	OpPosterize
	OpContrast
	OpColor
	OpBrightness
	OpSharpness
	OpInvert
	OpAutoContrast
	OpEqualize
)

// opNames follows the Op constant order above.
var opNames = [...]string{
	"ShearX", "ShearY", "TranslateX", "TranslateY", "Rotate",
	"Solarize", "Posterize", "Contrast", "Color", "Brightness",
	"Sharpness", "Invert", "AutoContrast", "Equalize",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// OpNames returns the canonical operation names, in Op order.
func OpNames() []string {
	return slices.Clone(opNames[:])
}

// ParseOp returns the operation with the given canonical name. Matching is
// case-sensitive: "ShearX" parses, "shearx" does not.
func ParseOp(name string) (Op, error) {
	for op, opName := range opNames {
		if name == opName {
			return Op(op), nil
		}
	}
	return 0, errors.Errorf("unknown operation %q, known operations are: %s",
		name, strings.Join(OpNames(), ", "))
}

// Rand is the source of randomness transforms draw from. *math/rand.Rand
// implements it.
type Rand interface {
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
	// Intn returns a uniform int in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// lockedRand delegates to the process-wide math/rand source, which serializes
// access internally.
type lockedRand struct{}

func (lockedRand) Float64() float64 { return rand.Float64() }
func (lockedRand) Intn(n int) int   { return rand.Intn(n) }

// DefaultRand returns the package default source of randomness, backed by
// the process-wide math/rand generator. It is safe for concurrent use but
// not seedable; inject a *rand.Rand where reproducibility matters.
func DefaultRand() Rand { return lockedRand{} }

// CheckProb draws once from rng and reports whether an event with
// probability p fires. p <= 0 never fires and p >= 1 always fires, but the
// draw is consumed regardless.
func CheckProb(rng Rand, p float64) bool {
	return rng.Float64() < p
}

// Params holds the parameter drawn by Transform.Sample for one application.
// Parameterless transforms (Invert, AutoContrast, Equalize) return the zero
// Params.
type Params struct {
	// Name identifies the parameter, e.g. "shear_x" or "threshold".
	Name string
	// Value is the drawn value: a shear ratio, a pixel offset, an angle in
	// degrees, a threshold, a bit count or an enhancement factor, depending
	// on the transform.
	Value float64
}

// Transform is one stochastic image transform. Implementations are
// configured once (magnitude, probability, family-specific options) and then
// applied any number of times, normally through Apply or ApplyWithDiagnostic.
type Transform interface {
	// Op returns the canonical operation this transform implements.
	Op() Op
	// Probability returns the chance in [0.0, 1.0] that an application
	// fires.
	Probability() float64
	// Sample draws the parameters of one application. Some transforms
	// consume randomness here (the affine mirror), others none; either way
	// Sample is called exactly once per application, before the firing
	// gate is drawn.
	Sample(rng Rand) Params
	// Apply runs the pixel operation with previously sampled parameters.
	// It validates params and never modifies img.
	Apply(img image.Image, params Params) (image.Image, error)
	// Diagnostic describes what one application with params does to an
	// image, e.g. "rotated by 27 degrees" or "inverted values >= 128".
	Diagnostic(params Params) string
	// String describes the transform and its configuration, e.g.
	// "ShearX(shear_x=0.15, p=0.6, mirror=true, Nearest)".
	String() string
}

// Step records one transform execution: what was drawn, whether the
// transform fired and, if it did, what it reported doing.
type Step struct {
	Transform Transform
	Params    Params
	// Applied is true when the probability gate fired and the transform ran.
	Applied bool
	// Detail is the transform's diagnostic of the application. Empty when
	// the step was skipped.
	Detail string
}

func (s Step) String() string {
	state := "skipped"
	if s.Applied {
		state = "applied"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", s.Transform.Op(), state)
	if s.Params.Name != "" {
		fmt.Fprintf(&b, " with %s=%v", s.Params.Name, s.Params.Value)
	}
	if s.Detail != "" {
		fmt.Fprintf(&b, ": %s", s.Detail)
	}
	return b.String()
}

// Apply executes one application of t: it samples the parameters, draws the
// firing gate and, when the gate fires, runs the transform on img. When the
// gate does not fire, img is returned as is.
//
// The parameter draw always precedes the gate draw, so a seeded rng yields
// the same parameters whether or not the gate fires. A nil rng uses
// DefaultRand.
func Apply(t Transform, rng Rand, img image.Image) (image.Image, error) {
	out, _, err := ApplyWithDiagnostic(t, rng, img)
	return out, err
}

// ApplyWithDiagnostic is Apply plus a Step record of the application. It
// draws exactly like Apply: given the same rng state both produce the same
// image, and the gate is drawn only once. A skipped step still records the
// sampled params.
func ApplyWithDiagnostic(t Transform, rng Rand, img image.Image) (image.Image, Step, error) {
	if rng == nil {
		rng = DefaultRand()
	}
	step := Step{Transform: t, Params: t.Sample(rng)}
	if !CheckProb(rng, t.Probability()) {
		return img, step, nil
	}
	out, err := t.Apply(img, step.Params)
	if err != nil {
		return nil, step, errors.WithMessagef(err, "applying %s", t.Op())
	}
	step.Applied = true
	step.Detail = t.Diagnostic(step.Params)
	return out, step, nil
}
