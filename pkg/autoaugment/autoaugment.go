// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package autoaugment builds and executes AutoAugment image augmentation
// policies, after "AutoAugment: Learning Augmentation Policies from Data"
// (https://arxiv.org/abs/1805.09501).
//
// A policy is a table of sub-policies, each an ordered pair of stochastic
// transforms with an application probability and a discretized magnitude
// "level". Augmenting an image draws one sub-policy uniformly at random and
// runs its steps in order, each step firing independently with its own
// probability. The canonical table found for CIFAR-10 ships built in:
//
//	aug := autoaugment.New(autoaugment.CIFAR10())
//	out, err := aug.Augment(img)
//
// Custom tables are built from definitions (Build) or loaded from TOML
// policy files (LoadPolicyFile). AugmentWithTrace additionally reports
// every decision an augmentation made, for debugging policies.
package autoaugment

import (
	"fmt"
	"image"
	"strings"

	"github.com/gomlx/augment/pkg/transforms"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Augmenter applies a Policy to images. It keeps no state between calls:
// every call draws afresh, and the same input may yield a different output
// each time. An Augmenter with the default random source is safe for
// concurrent use.
type Augmenter struct {
	policy Policy
	rng    transforms.Rand
}

// New returns an Augmenter that applies policy using the package default
// random source.
func New(policy Policy) *Augmenter {
	return &Augmenter{policy: policy, rng: transforms.DefaultRand()}
}

// WithRand sets the random source used for sub-policy selection, parameter
// sampling and probability gates. Pass a seeded *rand.Rand for reproducible
// augmentation; such an Augmenter is no longer safe for concurrent use
// unless the source is. It returns a to allow chaining.
func (a *Augmenter) WithRand(rng transforms.Rand) *Augmenter {
	a.rng = rng
	return a
}

// Trace records every decision one augmentation made.
type Trace struct {
	// ID identifies the augmentation call, for correlating log lines.
	ID string
	// SubPolicy is the index of the drawn sub-policy in the policy table.
	SubPolicy int
	// Steps records each transform execution in order: the sampled
	// parameters, whether the gate fired and the transform's diagnostic.
	Steps []transforms.Step
}

func (tr Trace) String() string {
	parts := make([]string, len(tr.Steps))
	for i, step := range tr.Steps {
		parts[i] = step.String()
	}
	return fmt.Sprintf("augmentation %s: sub-policy #%d: %s",
		tr.ID, tr.SubPolicy, strings.Join(parts, "; "))
}

// Augment applies one uniformly drawn sub-policy to img and returns the
// resulting image. Steps whose gate does not fire pass the image through
// unchanged; a step that fails aborts the call with its error, with no
// rollback of earlier steps.
func (a *Augmenter) Augment(img image.Image) (image.Image, error) {
	out, _, err := a.augment(img, false)
	return out, err
}

// AugmentWithTrace is Augment plus a Trace of every decision made. It
// consumes the random source exactly like Augment: under the same source
// state both produce the same image, and gates are never re-drawn for the
// trace. On error the returned trace covers the steps run so far.
func (a *Augmenter) AugmentWithTrace(img image.Image) (image.Image, Trace, error) {
	return a.augment(img, true)
}

func (a *Augmenter) augment(img image.Image, traced bool) (image.Image, Trace, error) {
	var trace Trace
	if img == nil {
		return nil, trace, errors.Errorf("cannot augment a nil image")
	}
	if len(a.policy) == 0 {
		return nil, trace, errors.Errorf("cannot augment with an empty policy")
	}
	trace.SubPolicy = a.rng.Intn(len(a.policy))
	sub := a.policy[trace.SubPolicy]
	if traced {
		trace.ID = uuid.NewString()
		trace.Steps = make([]transforms.Step, 0, len(sub))
	}
	out := img
	for _, t := range sub {
		var step transforms.Step
		var err error
		out, step, err = transforms.ApplyWithDiagnostic(t, a.rng, out)
		if err != nil {
			return nil, trace, err
		}
		if traced {
			trace.Steps = append(trace.Steps, step)
		}
	}
	return out, trace, nil
}
