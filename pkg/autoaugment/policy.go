// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package autoaugment

import (
	"strings"

	"github.com/gomlx/augment/pkg/transforms"
	"github.com/pkg/errors"
)

// StepDef is one (operation, probability, level) triple of a policy
// definition, as written in the canonical tables and in TOML policy files.
type StepDef struct {
	// Op is the canonical operation name, case-sensitive ("ShearX",
	// "Posterize", ...).
	Op string `toml:"op"`
	// P is the probability in [0, 1] that the step fires.
	P float64 `toml:"p"`
	// Level is the discretized magnitude in [0, LevelMax] the operation's
	// rescale rule turns into a concrete parameter.
	Level float64 `toml:"level"`
}

// SubPolicyDef is an ordered list of step definitions executed together.
type SubPolicyDef []StepDef

// SubPolicy is a built sub-policy: configured transforms applied in order,
// each through its own independent probability gate.
type SubPolicy []transforms.Transform

func (sp SubPolicy) String() string {
	parts := make([]string, len(sp))
	for i, t := range sp {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Policy is a built policy table. Executing it applies one sub-policy,
// drawn uniformly at random, per image. A Policy is never modified after
// Build and is safe to share read-only across goroutines.
type Policy []SubPolicy

func (p Policy) String() string {
	parts := make([]string, len(p))
	for i, sp := range p {
		parts[i] = sp.String()
	}
	return strings.Join(parts, "\n")
}

// Build resolves a policy definition into a Policy. Every operation name is
// looked up case-sensitively, levels are rescaled into concrete transform
// parameters per the operation's rule, and each transform gets its step's
// probability.
//
// An unknown operation name, a probability outside [0, 1] or a level
// outside [0, LevelMax] fails the whole build: no partial table is ever
// returned.
func Build(defs []SubPolicyDef) (Policy, error) {
	policy := make(Policy, 0, len(defs))
	for i, subDef := range defs {
		sub := make(SubPolicy, 0, len(subDef))
		for j, stepDef := range subDef {
			op, err := transforms.ParseOp(stepDef.Op)
			if err != nil {
				return nil, errors.WithMessagef(err, "sub-policy #%d, step #%d", i, j)
			}
			if stepDef.P < 0 || stepDef.P > 1 {
				return nil, errors.Errorf(
					"sub-policy #%d, step #%d (%s): probability must be in [0.0, 1.0], got %v",
					i, j, stepDef.Op, stepDef.P)
			}
			if stepDef.Level < 0 || stepDef.Level > LevelMax {
				return nil, errors.Errorf(
					"sub-policy #%d, step #%d (%s): level must be in [0, %d], got %v",
					i, j, stepDef.Op, LevelMax, stepDef.Level)
			}
			rule := ruleFor(op)
			var magnitude float64
			if rule.rescale != nil {
				magnitude = rule.rescale(stepDef.Level)
			}
			sub = append(sub, rule.build(magnitude, stepDef.P))
		}
		policy = append(policy, sub)
	}
	return policy, nil
}
