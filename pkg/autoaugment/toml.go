// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package autoaugment

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// policyFile is the TOML schema of a policy definition:
//
//	[[subpolicy]]
//	  [[subpolicy.step]]
//	  op = "Posterize"
//	  p = 0.4
//	  level = 8
//	  [[subpolicy.step]]
//	  op = "Rotate"
//	  p = 0.6
//	  level = 9
type policyFile struct {
	SubPolicies []policyFileSub `toml:"subpolicy"`
}

type policyFileSub struct {
	Steps []StepDef `toml:"step"`
}

func (f *policyFile) defs() []SubPolicyDef {
	defs := make([]SubPolicyDef, 0, len(f.SubPolicies))
	for _, sub := range f.SubPolicies {
		defs = append(defs, SubPolicyDef(sub.Steps))
	}
	return defs
}

// LoadPolicyFile reads a TOML policy definition from path and builds it.
func LoadPolicyFile(path string) (Policy, error) {
	var file policyFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, errors.Wrapf(err, "decoding policy file %s", path)
	}
	policy, err := Build(file.defs())
	if err != nil {
		return nil, errors.WithMessagef(err, "building policy from %s", path)
	}
	return policy, nil
}

// ParsePolicy decodes a TOML policy definition from r and builds it.
func ParsePolicy(r io.Reader) (Policy, error) {
	var file policyFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decoding policy")
	}
	return Build(file.defs())
}
