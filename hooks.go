// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package aspect

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/trace"
)

// ErrNotInstalled is returned by Interceptors for targets they cannot hook.
var ErrNotInstalled = errors.New("aspect: hook not installed")

// Target names a host function the engine intercepts.
type Target uint8

const (
	TargetSetVertexShader Target = iota + 1
	TargetSetPixelShader
	TargetVertexConstants
	TargetPixelConstants
	TargetSetViewport
	TargetSetScissorRect
	TargetDraw
	TargetDrawIndexed
	TargetEndScene
	TargetBeginSwap
	TargetEndSwap
	TargetPresent
)

var targetNames = [...]string{
	TargetSetVertexShader: "set-vertex-shader",
	TargetSetPixelShader:  "set-pixel-shader",
	TargetVertexConstants: "vertex-constants",
	TargetPixelConstants:  "pixel-constants",
	TargetSetViewport:     "set-viewport",
	TargetSetScissorRect:  "set-scissor-rect",
	TargetDraw:            "draw",
	TargetDrawIndexed:     "draw-indexed",
	TargetEndScene:        "end-scene",
	TargetBeginSwap:       "begin-swap",
	TargetEndSwap:         "end-swap",
	TargetPresent:         "present",
}

func (t Target) String() string {
	if int(t) < len(targetNames) && targetNames[t] != "" {
		return targetNames[t]
	}
	return fmt.Sprintf("Target(%d)", uint8(t))
}

// Targets returns every interception target in installation order.
func Targets() []Target {
	return []Target{
		TargetPresent,
		TargetBeginSwap, TargetEndSwap,
		TargetSetVertexShader, TargetSetPixelShader,
		TargetVertexConstants, TargetPixelConstants,
		TargetSetViewport, TargetSetScissorRect,
		TargetDraw, TargetDrawIndexed,
		TargetEndScene,
	}
}

// Detour signatures passed to Interceptor.Intercept, one per target
// family. The device argument is the device the host called; the engine
// reaches the original functions through it.
type (
	ShaderDetour    func(dev render.Device, s render.Shader) error
	ConstantsDetour func(dev render.Device, start int, data []float32) error
	ViewportDetour  func(dev render.Device, vp render.Viewport) error
	ScissorDetour   func(dev render.Device, r render.Rect) error
	DrawDetour      func(dev render.Device, call render.DrawCall) error
	EndSceneDetour  func(dev render.Device) error
	SwapDetour      func()
	PresentDetour   func(dev render.Device, pp render.PresentParameters) bool
)

// Interceptor installs detours on host functions. Intercept returns the
// original function, which the engine keeps but does not call: the device
// adapters reach the originals themselves.
type Interceptor interface {
	Intercept(target Target, detour any) (original any, err error)
}

// detour returns the detour function for t, routing through sink.
func detour(t Target, sink trace.Sink) any {
	switch t {
	case TargetSetVertexShader:
		return ShaderDetour(sink.SetVertexShader)
	case TargetSetPixelShader:
		return ShaderDetour(sink.SetPixelShader)
	case TargetVertexConstants:
		return ConstantsDetour(sink.SetVertexShaderConstantF)
	case TargetPixelConstants:
		return ConstantsDetour(sink.SetPixelShaderConstantF)
	case TargetSetViewport:
		return ViewportDetour(sink.SetViewport)
	case TargetSetScissorRect:
		return ScissorDetour(sink.SetScissorRect)
	case TargetDraw, TargetDrawIndexed:
		return DrawDetour(sink.Draw)
	case TargetEndScene:
		return EndSceneDetour(sink.EndScene)
	case TargetBeginSwap:
		return SwapDetour(sink.BeginSwap)
	case TargetEndSwap:
		return SwapDetour(sink.EndSwap)
	case TargetPresent:
		return PresentDetour(sink.NegotiatePresent)
	}
	return nil
}

// Install hooks every target through ic and reports which succeeded.
// Partial installs are tolerated: a feature whose hook is missing simply
// never sees calls. Install may be called again to retry failed targets;
// already installed targets are skipped.
func (e *Engine) Install(ic Interceptor) map[Target]bool {
	sink := e.Sink()
	report := make(map[Target]bool, len(Targets()))

	e.hooksMu.Lock()
	defer e.hooksMu.Unlock()

	for _, t := range Targets() {
		if _, ok := e.originals[t]; ok {
			report[t] = true
			continue
		}
		orig, err := ic.Intercept(t, detour(t, sink))
		if err != nil {
			Logger().Warn("aspect: hook failed", "target", t, "err", err)
			report[t] = false
			continue
		}
		e.originals[t] = orig
		report[t] = true
	}
	Logger().Info("aspect: hooks installed", "installed", len(e.originals), "targets", len(report))
	return report
}

// Original returns the original function returned when t was installed.
func (e *Engine) Original(t Target) (any, bool) {
	e.hooksMu.RLock()
	defer e.hooksMu.RUnlock()
	orig, ok := e.originals[t]
	return orig, ok
}

// Installed returns the installed targets, sorted.
func (e *Engine) Installed() []Target {
	e.hooksMu.RLock()
	defer e.hooksMu.RUnlock()

	targets := make([]Target, 0, len(e.originals))
	for t := range e.originals {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}
