// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package aspect

import (
	"github.com/gogpu/aspect/config"
	"github.com/gogpu/aspect/input"
	"github.com/gogpu/aspect/patch"
	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/shader"
	"github.com/gogpu/aspect/transform"
)

// FramePhase is the frame lifecycle state.
type FramePhase uint8

const (
	// FrameActive is between the end of one swap and the start of the next.
	FrameActive FramePhase = iota
	// FrameIdle is inside the host's present call.
	FrameIdle
)

func (p FramePhase) String() string {
	if p == FrameIdle {
		return "idle"
	}
	return "active"
}

// Phase returns the current frame phase.
func (e *Engine) Phase() FramePhase {
	return e.phase
}

// OnFrame registers fn to run at the start of every frame, after the frame
// state has been reset and the settings refreshed.
func (e *Engine) OnFrame(fn func()) {
	e.frameFuncs = append(e.frameFuncs, fn)
}

// ScenesThisFrame returns how many scenes the negotiated device has ended
// since the frame began.
func (e *Engine) ScenesThisFrame() int {
	return e.scenes
}

// BeginSwap is called when the host starts presenting.
func (e *Engine) BeginSwap() {
	e.phase = FrameIdle
}

// EndSwap is called after the host has presented; the next frame begins.
func (e *Engine) EndSwap() {
	e.phase = FrameActive
	e.beginFrame()
}

func (e *Engine) beginFrame() {
	e.classifier.Reset()
	e.frames++
	e.scenes = 0
	e.traced = e.live.ConsumeTraceFrame()
	e.refresh()

	for _, fn := range e.frameFuncs {
		fn()
	}
	if e.traced {
		Logger().Debug("aspect: tracing frame", "frame", e.frames, "params", e.Params())
	}
}

// refresh takes a settings snapshot and recomputes everything derived from
// it and from the back buffer.
func (e *Engine) refresh() {
	s := e.live.Snapshot()
	e.settings = s

	params := transform.Compute(e.backBufferWidth, e.backBufferHeight, transform.Options{
		Enabled:        s.Render.AspectCorrection,
		AutoOffset:     s.Scaling.AutoCalc,
		ManualOffsetX:  s.Scaling.HUDXOffset,
		PointerOffsetY: s.Scaling.MouseYOffset,
	})
	pointer := input.PointerParams(params, s.Render.CenterUI)
	e.params.Store(&params)
	e.pointer.Store(&pointer)

	e.patcher.SetParams(params)
	e.patcher.SetPolicy(patch.PolicyFor(s.Render))

	env := e.classifier.Env()
	env.Settings = s
	env.Params = params
	env.BackBufferWidth = e.backBufferWidth
	env.BackBufferHeight = e.backBufferHeight
	env.Negotiated = e.negotiated
	env.TempOnTop = e.live.TempOnTop.Load()
	e.classifier.SetEnv(env)

	e.trackMainMap(s.Debug)
}

// trackMainMap keeps the configured main-map shaders tracked.
func (e *Engine) trackMainMap(d config.DebugSettings) {
	want := [2]shader.Fingerprint{shader.Fingerprint(d.MainMapBegin), shader.Fingerprint(d.MainMapEnd)}
	roles := [2]shader.Role{shader.RoleMainMapBegin, shader.RoleMainMapEnd}
	for i := range want {
		if want[i] == e.mainMap[i] {
			continue
		}
		if e.mainMap[i] != shader.Unknown {
			e.shaders.Untrack(e.mainMap[i])
		}
		e.mainMap[i] = want[i]
		if want[i] == shader.Unknown {
			continue
		}
		e.shaders.Track(shader.Known{
			Label:       roles[i].String(),
			Stage:       render.StagePixel,
			Fingerprint: want[i],
			Role:        roles[i],
		})
	}
}
