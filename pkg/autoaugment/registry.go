// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package autoaugment

import (
	"slices"

	"github.com/gomlx/augment/pkg/transforms"
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/maps"
)

// opRule couples one operation's transform constructor with its magnitude
// rescaling rule. rescale is nil for parameterless operations, whose build
// functions ignore the magnitude.
type opRule struct {
	rescale func(level float64) float64
	build   func(magnitude, p float64) transforms.Transform
}

// enhanceRescale is shared by the four enhancement operations: the +0.1
// floor keeps a level of 0 from producing a fully degenerate image.
func enhanceRescale(level float64) float64 {
	return RescaleFloat(level, 1.8) + 0.1
}

// registry fixes how each operation name in a policy table becomes a
// configured transform. The rescale rules are part of what the canonical
// tables mean, so there is no registration API and nothing is configurable.
var registry = map[transforms.Op]opRule{
	transforms.OpShearX: {
		rescale: func(level float64) float64 { return RescaleFloat(level, 0.3) },
		build:   func(m, p float64) transforms.Transform { return transforms.NewShearX(m).WithProbability(p) },
	},
	transforms.OpShearY: {
		rescale: func(level float64) float64 { return RescaleFloat(level, 0.3) },
		build:   func(m, p float64) transforms.Transform { return transforms.NewShearY(m).WithProbability(p) },
	},
	transforms.OpTranslateX: {
		rescale: func(level float64) float64 { return float64(RescaleInt(level, 10)) },
		build:   func(m, p float64) transforms.Transform { return transforms.NewTranslateX(m).WithProbability(p) },
	},
	transforms.OpTranslateY: {
		rescale: func(level float64) float64 { return float64(RescaleInt(level, 10)) },
		build:   func(m, p float64) transforms.Transform { return transforms.NewTranslateY(m).WithProbability(p) },
	},
	transforms.OpRotate: {
		rescale: func(level float64) float64 { return float64(RescaleInt(level, 30)) },
		build:   func(m, p float64) transforms.Transform { return transforms.NewRotate(m).WithProbability(p) },
	},
	transforms.OpSolarize: {
		rescale: func(level float64) float64 { return float64(256 - RescaleInt(level, 256)) },
		build:   func(m, p float64) transforms.Transform { return transforms.NewSolarize(int(m)).WithProbability(p) },
	},
	transforms.OpPosterize: {
		rescale: func(level float64) float64 { return float64(4 - RescaleInt(level, 4)) },
		build:   func(m, p float64) transforms.Transform { return transforms.NewPosterize(int(m)).WithProbability(p) },
	},
	transforms.OpContrast: {
		rescale: enhanceRescale,
		build:   func(m, p float64) transforms.Transform { return transforms.NewContrast(m).WithProbability(p) },
	},
	transforms.OpColor: {
		rescale: enhanceRescale,
		build:   func(m, p float64) transforms.Transform { return transforms.NewSaturation(m).WithProbability(p) },
	},
	transforms.OpBrightness: {
		rescale: enhanceRescale,
		build:   func(m, p float64) transforms.Transform { return transforms.NewBrightness(m).WithProbability(p) },
	},
	transforms.OpSharpness: {
		rescale: enhanceRescale,
		build:   func(m, p float64) transforms.Transform { return transforms.NewSharpness(m).WithProbability(p) },
	},
	transforms.OpInvert: {
		build: func(_, p float64) transforms.Transform { return transforms.NewInvert().WithProbability(p) },
	},
	transforms.OpAutoContrast: {
		build: func(_, p float64) transforms.Transform { return transforms.NewAutoContrast().WithProbability(p) },
	},
	transforms.OpEqualize: {
		build: func(_, p float64) transforms.Transform { return transforms.NewEqualize().WithProbability(p) },
	},
}

// KnownOps returns the operation names policy tables may reference, sorted
// alphabetically.
func KnownOps() []string {
	ops := maps.Keys(registry)
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.String())
	}
	slices.Sort(names)
	return names
}

// ruleFor returns the registry entry of op. The registry covers every
// operation, so a miss means it went out of sync with the operation set.
func ruleFor(op transforms.Op) opRule {
	rule, ok := registry[op]
	if !ok {
		exceptions.Panicf("autoaugment: operation %s has no registry entry", op)
	}
	return rule
}
