// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package overlay draws world-space labels over the geometry that would
// otherwise hide them.
package overlay

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/aspect/config"
	"github.com/gogpu/aspect/render"
)

// XRayAlphaRef is the alpha-test reference of the x-ray pass. Fragments
// more transparent than this are discarded.
const XRayAlphaRef = 0x0f

// Relax returns s changed so that a draw with the given technique is not
// hidden by depth.
//
// Technique 1 ignores the depth buffer. Technique 2 draws only where the
// label is occluded, blended with inverted alpha over the normally drawn
// label, giving a see-through silhouette.
func Relax(s render.StateBlock, technique int) render.StateBlock {
	if technique <= config.OnTopAlways {
		s.DepthTest = true
		s.DepthCompare = gputypes.CompareFunctionAlways
		return s
	}

	s.DepthTest = true
	s.DepthCompare = gputypes.CompareFunctionGreater

	s.BlendEnable = true
	s.Blend.Src = gputypes.BlendFactorOneMinusSrcAlpha
	s.Blend.Dst = gputypes.BlendFactorSrcAlpha

	s.AlphaTest = true
	s.AlphaCompare = gputypes.CompareFunctionGreaterEqual
	s.AlphaRef = XRayAlphaRef
	return s
}

// Renderer issues draws with relaxed depth state and restores the
// host's state afterwards.
type Renderer struct {
	draws int
}

// Draws returns the number of draws issued on top.
func (r *Renderer) Draws() int {
	return r.draws
}

// Draw issues draw on top of the scene using technique. Technique 2 first
// issues draw normally, then again with the x-ray state. The saved state is
// restored even when a draw fails.
func (r *Renderer) Draw(dev render.Device, technique int, draw func() error) (err error) {
	if technique == config.OnTopOff {
		return draw()
	}
	if technique > config.OnTopAlways {
		if err := draw(); err != nil {
			return err
		}
	}

	saved, err := dev.RenderState()
	if err != nil {
		return fmt.Errorf("overlay: save state: %w", err)
	}
	if err := dev.SetRenderState(Relax(saved, technique)); err != nil {
		return fmt.Errorf("overlay: relax state: %w", err)
	}
	defer func() {
		if rerr := dev.SetRenderState(saved); rerr != nil {
			err = errors.Join(err, fmt.Errorf("overlay: restore state: %w", rerr))
		}
	}()

	r.draws++
	return draw()
}
