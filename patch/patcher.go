// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package patch

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/aspect/classify"
	"github.com/gogpu/aspect/config"
	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/transform"
)

// ScissorPolicy selects how scissor rectangles set by the host are handled.
type ScissorPolicy uint8

const (
	// ScissorPass forwards rectangles unchanged.
	ScissorPass ScissorPolicy = iota
	// ScissorDeny disables the scissor test and forwards an empty rectangle.
	ScissorDeny
	// ScissorRemap moves rectangles into the centered 16:9 region.
	ScissorRemap
)

func (p ScissorPolicy) String() string {
	switch p {
	case ScissorPass:
		return "pass"
	case ScissorDeny:
		return "deny"
	case ScissorRemap:
		return "remap"
	}
	return "scissor(?)"
}

// PolicyFor returns the scissor policy selected by s.
func PolicyFor(s config.RenderSettings) ScissorPolicy {
	switch {
	case !s.AllowScissor:
		return ScissorDeny
	case s.RemapScissor:
		return ScissorRemap
	}
	return ScissorPass
}

// Patcher tracks the viewport set by the host and applies temporary
// viewport and scissor changes around individual draws.
//
// The viewport the host set is never lost: every temporary viewport is
// restored before Bracket returns, even when the draw fails.
type Patcher struct {
	viewport render.Viewport
	params   transform.Params
	policy   ScissorPolicy

	// Scissoring is set while the host has a non-empty scissor rectangle.
	Scissoring bool

	brackets int
}

// New creates a patcher with identity parameters and ScissorPass.
func New() *Patcher {
	return &Patcher{params: transform.Identity(0, 0)}
}

// SetParams replaces the correction parameters.
func (p *Patcher) SetParams(params transform.Params) {
	p.params = params
}

// SetPolicy replaces the scissor policy.
func (p *Patcher) SetPolicy(policy ScissorPolicy) {
	p.policy = policy
}

// Policy returns the scissor policy.
func (p *Patcher) Policy() ScissorPolicy {
	return p.policy
}

// Viewport returns the viewport most recently set by the host.
func (p *Patcher) Viewport() render.Viewport {
	return p.viewport
}

// Brackets returns how many draws were wrapped in a temporary viewport.
func (p *Patcher) Brackets() int {
	return p.brackets
}

// SetViewport records vp and forwards it to dev.
func (p *Patcher) SetViewport(dev render.Device, vp render.Viewport) error {
	p.viewport = vp
	return dev.SetViewport(vp)
}

// MinimapViewport derives the viewport for a minimap draw from the tracked
// viewport.
//
// Blips and the minimap background are narrowed into the 16:9 region when
// centering is on and pushed down so their authored height is kept. The
// full-screen map is stretched vertically instead. A blip marked
// KeepVertical is not moved down.
func (p *Patcher) MinimapViewport(plan classify.DrawPlan) render.Viewport {
	vp := p.viewport
	x := p.params.ScaleX
	if x == 0 {
		x = 1
	}
	fullHeight := float64(p.viewport.Height)

	narrow := func() {
		vp.Width = uint32(math.Round(float64(vp.Width) / x))
		vp.X = uint32(math.Max(0, math.Round(float64(vp.X)+p.params.OffsetX)))
	}
	lower := func() {
		vp.Y = uint32(math.Round(float64(vp.Y) + (fullHeight-float64(vp.Height)/x)/2))
	}

	switch plan.Minimap {
	case classify.MinimapBlip:
		if plan.CenterHorizontal && !plan.MainMap {
			narrow()
		}
		if !plan.KeepVertical {
			lower()
		}
	case classify.MinimapBackground:
		if plan.CenterHorizontal {
			narrow()
		}
		lower()
	case classify.MinimapFull:
		vp.Height = uint32(math.Round(float64(vp.Height) * x))
	}
	return vp
}

// Bracket issues draw with the viewport plan calls for. Minimap draws get
// a temporary viewport that is restored afterwards; other draws are issued
// unchanged.
func (p *Patcher) Bracket(dev render.Device, plan classify.DrawPlan, draw func() error) (err error) {
	if plan.Minimap == classify.MinimapNone {
		return draw()
	}

	if err := dev.SetViewport(p.MinimapViewport(plan)); err != nil {
		return fmt.Errorf("patch: minimap viewport: %w", err)
	}
	p.brackets++
	defer func() {
		if rerr := dev.SetViewport(p.viewport); rerr != nil {
			err = errors.Join(err, fmt.Errorf("patch: restore viewport: %w", rerr))
		}
	}()
	return draw()
}

// SetScissorRect applies the scissor policy to r and forwards the result.
func (p *Patcher) SetScissorRect(dev render.Device, r render.Rect) error {
	p.Scissoring = !r.Empty()

	switch p.policy {
	case ScissorDeny:
		if err := dev.SetScissorTest(false); err != nil {
			return fmt.Errorf("patch: disable scissor: %w", err)
		}
		return dev.SetScissorRect(render.Rect{})
	case ScissorRemap:
		return dev.SetScissorRect(p.RemapRect(r))
	}
	return dev.SetScissorRect(r)
}

// RemapRect moves r horizontally into the centered 16:9 region of the
// tracked viewport. Rectangles on displays no wider than 16:9 are
// unchanged.
func (p *Patcher) RemapRect(r render.Rect) render.Rect {
	if !transform.IsWider(uint32(p.params.NativeWidth), uint32(p.params.NativeHeight)) {
		return r
	}
	extent := float64(p.viewport.X) + float64(p.viewport.Width)
	lo, hi := p.params.RemapSpan(float64(r.Left), float64(r.Right), extent)
	r.Left = int32(math.Round(lo))
	r.Right = int32(math.Round(hi))
	return r
}
