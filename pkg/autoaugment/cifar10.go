// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package autoaugment

import "github.com/gomlx/exceptions"

// CIFAR10Table returns the definition of the policy found by the
// AutoAugment search on CIFAR-10, as published: 25 sub-policies of 2 steps
// each. Callers normally want the built form, CIFAR10.
func CIFAR10Table() []SubPolicyDef {
	return []SubPolicyDef{
		{{"Posterize", 0.4, 8}, {"Rotate", 0.6, 9}},
		{{"Solarize", 0.6, 5}, {"AutoContrast", 0.6, 5}},
		{{"Equalize", 0.8, 8}, {"Equalize", 0.6, 3}},
		{{"Posterize", 0.6, 7}, {"Posterize", 0.6, 6}},
		{{"Equalize", 0.4, 7}, {"Solarize", 0.2, 4}},
		{{"Equalize", 0.4, 4}, {"Rotate", 0.8, 8}},
		{{"Solarize", 0.6, 3}, {"Equalize", 0.6, 7}},
		{{"Posterize", 0.8, 5}, {"Equalize", 1.0, 2}},
		{{"Rotate", 0.2, 3}, {"Solarize", 0.6, 8}},
		{{"Equalize", 0.6, 8}, {"Posterize", 0.4, 6}},
		{{"Rotate", 0.8, 8}, {"Color", 0.4, 0}},
		{{"Rotate", 0.4, 9}, {"Equalize", 0.6, 2}},
		{{"Equalize", 0.0, 7}, {"Equalize", 0.8, 8}},
		{{"Invert", 0.6, 4}, {"Equalize", 1.0, 8}},
		{{"Color", 0.6, 4}, {"Contrast", 1.0, 8}},
		{{"Rotate", 0.8, 8}, {"Color", 1.0, 0}},
		{{"Color", 0.8, 8}, {"Solarize", 0.8, 7}},
		{{"Sharpness", 0.4, 7}, {"Invert", 0.6, 8}},
		{{"ShearX", 0.6, 5}, {"Equalize", 1.0, 9}},
		{{"Color", 0.4, 0}, {"Equalize", 0.6, 3}},
		{{"Equalize", 0.4, 7}, {"Solarize", 0.2, 4}},
		{{"Solarize", 0.6, 5}, {"AutoContrast", 0.6, 5}},
		{{"Invert", 0.6, 4}, {"Equalize", 1.0, 8}},
		{{"Color", 0.6, 4}, {"Contrast", 1.0, 8}},
		{{"Equalize", 0.8, 8}, {"Equalize", 0.6, 3}},
	}
}

// CIFAR10 returns the built canonical CIFAR-10 policy. It panics if the
// compiled-in table fails to build, which would be a defect in this
// package.
func CIFAR10() Policy {
	policy, err := Build(CIFAR10Table())
	if err != nil {
		exceptions.Panicf("autoaugment: building the compiled-in CIFAR-10 policy: %+v", err)
	}
	return policy
}
