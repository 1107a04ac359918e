// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// Blend describes the color blend equation.
type Blend struct {
	Src gputypes.BlendFactor
	Dst gputypes.BlendFactor
	Op  gputypes.BlendOperation
}

// StateBlock is the depth, alpha-test and blend state that the overlay
// renderer saves, relaxes and restores around a draw.
type StateBlock struct {
	DepthTest    bool
	DepthCompare gputypes.CompareFunction

	AlphaTest    bool
	AlphaCompare gputypes.CompareFunction
	AlphaRef     uint8

	BlendEnable bool
	Blend       Blend
}

// DefaultStateBlock returns the device defaults: depth test on with
// less-or-equal, no alpha test, blending off.
func DefaultStateBlock() StateBlock {
	return StateBlock{
		DepthTest:    true,
		DepthCompare: gputypes.CompareFunctionLessEqual,
		AlphaCompare: gputypes.CompareFunctionAlways,
		Blend: Blend{
			Src: gputypes.BlendFactorOne,
			Dst: gputypes.BlendFactorZero,
			Op:  gputypes.BlendOperationAdd,
		},
	}
}
